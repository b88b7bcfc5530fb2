package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"
)

// Storage accepts binary payloads and returns stable reference URLs. The
// application core never manipulates binary content directly.
type Storage interface {
	Upload(ctx context.Context, filename string, r io.Reader) (string, error)
}

// DiskStorage stores uploads on the local filesystem and serves them under a
// fixed URL prefix.
type DiskStorage struct {
	dir       string
	urlPrefix string
}

// NewDiskStorage creates the upload directory if needed. urlPrefix is the
// public path the files are served from, e.g. "/uploads".
func NewDiskStorage(dir, urlPrefix string) (*DiskStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}

	return &DiskStorage{dir: dir, urlPrefix: urlPrefix}, nil
}

// Dir returns the directory uploads are written to.
func (s *DiskStorage) Dir() string {
	return s.dir
}

// Upload writes the payload under a generated name, keeping the original
// file extension, and returns the URL it will be served from.
func (s *DiskStorage) Upload(_ context.Context, filename string, r io.Reader) (string, error) {
	name := uuid.NewString() + filepath.Ext(filename)

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", err
	}

	return path.Join(s.urlPrefix, name), nil
}
