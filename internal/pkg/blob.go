package pkg

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrBlobNotFound     = errors.New("blob not found")
	ErrUnsupportedImage = errors.New("unsupported image type")
	ErrInvalidBlobName  = errors.New("invalid blob name")
)

var imageExt = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
}

// BlobStore keeps uploaded images as flat uuid-named files under one
// directory. Names are opaque to callers and safe to put in URLs.
type BlobStore struct {
	dir string
}

func NewBlobStore(dir string) (*BlobStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &BlobStore{dir: dir}, nil
}

// Save stores the blob and returns its generated name.
func (s *BlobStore) Save(r io.Reader, contentType string) (string, error) {
	ext, ok := imageExt[contentType]
	if !ok {
		return "", ErrUnsupportedImage
	}
	name := uuid.New().String() + ext
	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	return name, f.Close()
}

func (s *BlobStore) Open(name string) (io.ReadCloser, error) {
	path, err := s.Path(name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrBlobNotFound
	}
	return f, err
}

// Path validates the name and returns the on-disk location.
func (s *BlobStore) Path(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return "", ErrInvalidBlobName
	}
	return filepath.Join(s.dir, name), nil
}
