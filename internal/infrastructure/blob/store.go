// Package blob stores evidence images and resolves their public URLs.
package blob

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Store is the object storage collaborator used by the ban directory.
type Store interface {
	Upload(ctx context.Context, bucket, objectPath string, data []byte, contentType string) error
	PublicURL(bucket, objectPath string) (string, error)
}

var ErrInvalidPath = errors.New("invalid object path")

// FileStore keeps objects under root/<bucket>/<path> and serves them from
// baseURL + publicPath, which the HTTP router maps back onto root/<bucket>.
type FileStore struct {
	root       string
	baseURL    string
	publicPath string
}

func NewFileStore(root, baseURL, publicPath string) *FileStore {
	return &FileStore{
		root:       root,
		baseURL:    strings.TrimRight(baseURL, "/"),
		publicPath: "/" + strings.Trim(publicPath, "/"),
	}
}

// BucketDir is the directory holding bucket's objects.
func (s *FileStore) BucketDir(bucket string) string {
	return filepath.Join(s.root, bucket)
}

func (s *FileStore) resolve(bucket, objectPath string) (string, error) {
	clean := path.Clean("/" + objectPath)
	if bucket == "" || strings.ContainsAny(bucket, `/\`) || clean == "/" || strings.Contains(objectPath, "..") {
		return "", fmt.Errorf("%w: %s/%s", ErrInvalidPath, bucket, objectPath)
	}
	return filepath.Join(s.BucketDir(bucket), filepath.FromSlash(strings.TrimPrefix(clean, "/"))), nil
}

// Upload writes data atomically through a temp file in the target directory.
func (s *FileStore) Upload(ctx context.Context, bucket, objectPath string, data []byte, _ string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dst, err := s.resolve(bucket, objectPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("failed to create object directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".upload-*")
	if err != nil {
		return fmt.Errorf("failed to create temp object: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write object: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close object: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return fmt.Errorf("failed to move object into place: %w", err)
	}
	return nil
}

// PublicURL does not check that the object exists.
func (s *FileStore) PublicURL(bucket, objectPath string) (string, error) {
	if _, err := s.resolve(bucket, objectPath); err != nil {
		return "", err
	}
	return url.JoinPath(s.baseURL+s.publicPath, strings.Split(path.Clean(objectPath), "/")...)
}
