// Package files stores uploaded attachments (record documents, car photos)
// on disk under a configured root.
package files

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MaxUploadSize bounds a single uploaded file.
const MaxUploadSize = 20 << 20

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// ErrUnsupportedType indicates a file extension outside the allowed set.
var ErrUnsupportedType = errors.New("files: unsupported file type")

// ErrTooLarge indicates the upload exceeds MaxUploadSize.
var ErrTooLarge = errors.New("files: file too large")

// Store saves uploads under root/subdir with uuid-prefixed names.
type Store struct {
	root string
}

// NewStore creates the root directory when missing.
func NewStore(root string) (*Store, error) {
	if root == "" {
		return nil, errors.New("files: root required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("files: create root: %w", err)
	}
	return &Store{root: root}, nil
}

// Save persists one multipart part and returns its relative ref.
func (s *Store) Save(header *multipart.FileHeader, subdir string) (string, error) {
	if header.Size > MaxUploadSize {
		return "", ErrTooLarge
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, ext)
	}

	src, err := header.Open()
	if err != nil {
		return "", err
	}
	defer func() { _ = src.Close() }()

	dir := filepath.Join(s.root, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	name := uuid.NewString() + ext
	ref := filepath.Join(subdir, name)
	dst, err := os.Create(filepath.Join(s.root, ref))
	if err != nil {
		return "", err
	}
	defer func() { _ = dst.Close() }()

	if _, err := io.Copy(dst, src); err != nil {
		_ = os.Remove(filepath.Join(s.root, ref))
		return "", err
	}
	return ref, nil
}

// Remove deletes a stored file. A missing file is not an error; the record
// delete must still proceed.
func (s *Store) Remove(ref string) error {
	if ref == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.root, ref))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Path resolves a ref to an absolute path for serving.
func (s *Store) Path(ref string) string {
	return filepath.Join(s.root, ref)
}
