// Package upload stores customer profile images on disk and cleans them up
// when the owning record goes away or the surrounding request fails.
package upload

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// DefaultProfileImage is the reference stored when no image was uploaded.
// It is never deleted.
const DefaultProfileImage = "/public/images/default-profile.jpg"

// MaxImageSize is the upload ceiling (5 MB).
const MaxImageSize = 5 << 20

// PublicPrefix is the URL prefix under which stored images are served.
const PublicPrefix = "/uploads"

var (
	ErrTooLarge        = errors.New("image exceeds the 5 MB limit")
	ErrUnsupportedType = errors.New("images only (JPEG, PNG, WEBP)")
)

var allowedExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

var allowedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// Store writes uploads below a base directory that is served read-only
// under PublicPrefix.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the base directory, for wiring the static file route.
func (s *Store) Dir() string { return s.dir }

// SaveProfileImage validates and persists one uploaded image and returns its
// public /uploads path. The file type is checked both by extension and by
// sniffing the leading bytes.
func (s *Store) SaveProfileImage(fh *multipart.FileHeader) (string, error) {
	if fh.Size > MaxImageSize {
		return "", ErrTooLarge
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExts[ext] {
		return "", ErrUnsupportedType
	}

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(src, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", err
	}
	if !allowedContentTypes[http.DetectContentType(head[:n])] {
		return "", ErrUnsupportedType
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	destDir := filepath.Join(s.dir, "profiles")
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", err
	}

	name := uuid.NewString() + ext
	dest, err := os.Create(filepath.Join(destDir, name))
	if err != nil {
		return "", err
	}
	defer dest.Close()

	if _, err := io.Copy(dest, src); err != nil {
		os.Remove(dest.Name())
		return "", err
	}
	return path.Join(PublicPrefix, "profiles", name), nil
}

// Remove deletes a previously stored image, best effort. The default image
// and anything outside the uploads tree are left alone.
func (s *Store) Remove(public string) {
	if public == "" || public == DefaultProfileImage {
		return
	}
	rel, ok := strings.CutPrefix(public, PublicPrefix+"/")
	if !ok || strings.Contains(rel, "..") {
		return
	}
	os.Remove(filepath.Join(s.dir, filepath.FromSlash(rel)))
}

// Exists reports whether a stored image is still retrievable.
func (s *Store) Exists(public string) bool {
	rel, ok := strings.CutPrefix(public, PublicPrefix+"/")
	if !ok {
		return false
	}
	_, err := os.Stat(filepath.Join(s.dir, filepath.FromSlash(rel)))
	return err == nil
}
