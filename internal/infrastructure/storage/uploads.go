// Package storage implements the avatar upload sink: one file per
// profile-update request, written under a local directory and served
// back under a fixed public prefix.
package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"time"
)

type DiskUploader struct {
	dir          string
	publicPrefix string
}

// NewDiskUploader ensures dir exists and returns an uploader whose
// saved files are addressable as publicPrefix/<name>.
func NewDiskUploader(dir, publicPrefix string) (*DiskUploader, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskUploader{dir: dir, publicPrefix: publicPrefix}, nil
}

// Save writes one uploaded file to disk and returns the server-relative
// path callers persist verbatim as the avatar reference. Names are
// prefixed with a millisecond timestamp so repeated uploads of the same
// file never collide.
func (u *DiskUploader) Save(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filepath.Base(file.Filename))
	dst, err := os.Create(filepath.Join(u.dir, name))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}

	return path.Join(u.publicPrefix, name), nil
}

// Dir returns the on-disk directory, used to mount the static route.
func (u *DiskUploader) Dir() string { return u.dir }
