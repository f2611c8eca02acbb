// Package controllers translates HTTP requests into service calls and
// service results into the JSON response envelope. Ownership decisions
// live in app/authz; business rules live in app/services.
package controllers

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/vendora/vendora/pkg/logger"
	"github.com/vendora/vendora/pkg/metrics"
	"github.com/vendora/vendora/pkg/response"
	"github.com/vendora/vendora/pkg/storage"
)

// maxUploadBytes caps multipart request bodies that carry image files.
const maxUploadBytes = 10 << 20 // 10 MB

// uploadFile streams one multipart file to object storage and returns its
// public URL. Uploads are sequential and cancel with the request context.
func uploadFile(ctx context.Context, up storage.Uploader, fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload %s: %w", fh.Filename, err)
	}
	defer f.Close()

	start := time.Now()
	url, err := up.Upload(ctx, f, fh.Filename, fh.Header.Get("Content-Type"))
	metrics.ObserveUpload(err == nil, start)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", fh.Filename, err)
	}
	return url, nil
}

// discardUploads removes files stored for a request that failed after
// some uploads had already succeeded. Best effort: a failed delete is
// logged and skipped.
func discardUploads(ctx context.Context, up storage.Uploader, urls []string) {
	for _, u := range urls {
		if err := up.Delete(ctx, u); err != nil {
			logger.WithCtx(ctx).Warn("orphan upload cleanup failed", "url", u, "error", err)
		}
	}
}

// parseUpload parses a multipart body under the size cap. Returns false
// after writing the 400 itself.
func parseUpload(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid multipart request")
		return false
	}
	return true
}

// formFiles returns the uploaded files for a form field in client order.
func formFiles(r *http.Request, field string) []*multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	return r.MultipartForm.File[field]
}
