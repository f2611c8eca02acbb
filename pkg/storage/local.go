package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vendora/vendora/config"
)

// localUploader writes objects under a root directory on disk. Intended
// for development; the API serves the directory back at the configured
// base URL.
type localUploader struct {
	root    string
	baseURL string
}

func newLocalUploader() *localUploader {
	root := config.StorageLocalRoot()
	if !filepath.IsAbs(root) {
		cwd, _ := os.Getwd()
		root = filepath.Join(cwd, root)
	}
	return &localUploader{
		root:    root,
		baseURL: strings.TrimRight(config.StorageLocalURL(), "/"),
	}
}

func (u *localUploader) Upload(ctx context.Context, r io.Reader, filename, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	key := objectKey(filename)
	full := filepath.Join(u.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("storage: mkdir: %w", err)
	}

	f, err := os.Create(full)
	if err != nil {
		return "", fmt.Errorf("storage: create %s: %w", key, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(full)
		return "", fmt.Errorf("storage: write %s: %w", key, err)
	}
	return u.baseURL + "/" + key, nil
}

func (u *localUploader) Delete(_ context.Context, url string) error {
	key, ok := strings.CutPrefix(url, u.baseURL+"/")
	if !ok {
		return nil
	}
	err := os.Remove(filepath.Join(u.root, filepath.FromSlash(key)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: delete %s: %w", key, err)
	}
	return nil
}
