// Package storage uploads product, vendor and blog images to object
// storage and returns their public URLs.
//
// Two drivers are available:
//   - "local": local filesystem, served back by the API (default)
//   - "r2": Cloudflare R2 via the S3-compatible API
//
// The driver is selected by the STORAGE_DRIVER config key.
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/vendora/vendora/config"
)

// Uploader stores an image and returns the URL it will be served from.
type Uploader interface {
	// Upload writes the content of r under a key derived from filename
	// and returns the public URL of the stored object.
	Upload(ctx context.Context, r io.Reader, filename, contentType string) (string, error)

	// Delete removes the object previously returned as url. Unknown URLs
	// are ignored.
	Delete(ctx context.Context, url string) error
}

// New builds the Uploader configured by STORAGE_DRIVER.
func New() (Uploader, error) {
	switch driver := config.StorageDriver(); driver {
	case "r2":
		return newR2Uploader()
	case "local":
		return newLocalUploader(), nil
	default:
		return nil, fmt.Errorf("storage: unknown driver %q", driver)
	}
}

// objectKey builds the storage key for an upload: a random UUID prefix
// keeps repeated uploads of the same filename from colliding.
func objectKey(filename string) string {
	name := strings.ReplaceAll(filename, " ", "_")
	// Strip any path the client sneaked into the filename.
	if i := strings.LastIndexAny(name, "/\\"); i >= 0 {
		name = name[i+1:]
	}
	if name == "" {
		name = "file"
	}
	return "products/" + uuid.NewString() + "-" + name
}
