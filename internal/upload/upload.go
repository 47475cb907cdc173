// Package upload validates and stores blog post images on disk.
package upload

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/josephleon/leonweb/internal/config"
)

// URLPrefix is the public path the upload directory is served under.
const URLPrefix = "/uploads"

var (
	// ErrDisallowedType is returned when the extension or the sniffed content type is not allowed.
	ErrDisallowedType = errors.New("file type is not allowed")
	// ErrTooLarge is returned when the file exceeds the configured max size.
	ErrTooLarge = errors.New("file is too large")
	// ErrEmptyFile is returned for zero byte uploads.
	ErrEmptyFile = errors.New("file is empty")
)

// mimeByExt maps the extensions that can be allowed to the content type the file must sniff as.
// Configured extensions missing here are never accepted.
var mimeByExt = map[string]string{ //nolint:gochecknoglobals
	".gif":  "image/gif",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".bmp":  "image/bmp",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
}

// Store writes validated uploads into a directory.
type Store struct {
	dir     string
	maxSize int64
	allowed map[string]bool
}

// New creates the upload directory if needed and returns the store.
func New(cfg config.Upload) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o750); err != nil { //nolint:mnd
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}

	allowed := make(map[string]bool, len(cfg.AllowedExtensions))
	for _, ext := range cfg.AllowedExtensions {
		ext = strings.ToLower(ext)
		if _, ok := mimeByExt[ext]; !ok {
			log.Warn().Str("extension", ext).Msg("ignoring upload extension without a known image type")

			continue
		}

		allowed[ext] = true
	}

	return &Store{dir: cfg.Dir, maxSize: cfg.MaxSize, allowed: allowed}, nil
}

// Dir returns the directory files are stored in.
func (s *Store) Dir() string {
	return s.dir
}

// Allowed lists the accepted extensions, sorted.
func (s *Store) Allowed() []string {
	out := make([]string, 0, len(s.allowed))
	for ext := range s.allowed {
		out = append(out, ext)
	}

	slices.Sort(out)

	return out
}

// Save validates the uploaded file and stores it under a random name.
// It returns the public URL of the stored file.
func (s *Store) Save(fh *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !s.allowed[ext] {
		return "", ErrDisallowedType
	}

	if fh.Size == 0 {
		return "", ErrEmptyFile
	}

	if s.maxSize > 0 && fh.Size > s.maxSize {
		return "", ErrTooLarge
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	detected, err := mimetype.DetectReader(src)
	if err != nil {
		return "", fmt.Errorf("failed to sniff upload: %w", err)
	}

	if !contentMatches(ext, detected) {
		return "", ErrDisallowedType
	}

	if _, err = src.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("failed to rewind upload: %w", err)
	}

	name := uuid.NewString() + ext

	dst, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640) //nolint:mnd
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}

	if _, err = io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = os.Remove(dst.Name())

		return "", fmt.Errorf("failed to write file: %w", err)
	}

	if err = dst.Close(); err != nil {
		return "", fmt.Errorf("failed to close file: %w", err)
	}

	return path.Join(URLPrefix, name), nil
}

// Remove deletes a file previously returned by Save. URLs outside the upload
// prefix are ignored.
func (s *Store) Remove(url string) error {
	if !strings.HasPrefix(url, URLPrefix+"/") {
		return nil
	}

	name := path.Base(url)
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	return nil
}

func contentMatches(ext string, detected *mimetype.MIME) bool {
	want, ok := mimeByExt[ext]

	return ok && detected.Is(want)
}
