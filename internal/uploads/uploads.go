// Package uploads stores blog images submitted as base64 data URLs.
package uploads

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/FaranAlam/faran-portfolio/internal/models"
)

// MaxImageBytes caps the decoded size of one image.
const MaxImageBytes = 5 << 20

var extensions = map[string]string{
	"image/jpeg": "jpg",
	"image/jpg":  "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
}

type Store struct {
	Dir       string
	URLPrefix string
	now       func() time.Time
}

func New(dir string) *Store {
	return &Store{Dir: dir, URLPrefix: "/uploads/", now: time.Now}
}

// Init creates the upload directory.
func (s *Store) Init() error {
	return os.MkdirAll(s.Dir, 0o755)
}

// IsDataURL reports whether v looks like an inline image payload.
func IsDataURL(v string) bool {
	return strings.HasPrefix(v, "data:")
}

// SaveDataURL decodes a data:image/...;base64 URL, writes it under Dir and
// returns the public path. Malformed or oversized input is a validation error.
func (s *Store) SaveDataURL(dataURL string) (string, error) {
	meta, payload, ok := strings.Cut(strings.TrimPrefix(dataURL, "data:"), ",")
	if !ok || !IsDataURL(dataURL) {
		return "", models.NewValidationError("image: invalid data URL")
	}
	mime, encoding, _ := strings.Cut(meta, ";")
	ext, ok := extensions[strings.ToLower(mime)]
	if !ok {
		return "", models.NewValidationError("image: only jpeg, png, gif and webp images are allowed")
	}
	if encoding != "base64" {
		return "", models.NewValidationError("image: data URL must be base64 encoded")
	}
	if base64.StdEncoding.DecodedLen(len(payload)) > MaxImageBytes+3 {
		return "", models.NewValidationError("image: image must be 5MB or smaller")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", models.NewValidationError("image: invalid base64 payload")
	}
	if len(data) > MaxImageBytes {
		return "", models.NewValidationError("image: image must be 5MB or smaller")
	}

	if err := s.Init(); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	name := "blog-" + strconv.FormatInt(s.now().UnixMilli(), 10) + "-" + random + "." + ext
	if err := os.WriteFile(filepath.Join(s.Dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return s.URLPrefix + name, nil
}

// Owns reports whether publicPath points at a file this store wrote.
func (s *Store) Owns(publicPath string) bool {
	if !strings.HasPrefix(publicPath, s.URLPrefix) {
		return false
	}
	name := strings.TrimPrefix(publicPath, s.URLPrefix)
	return name != "" && name == path.Base(name) && name != "." && name != ".."
}

// Remove deletes an uploaded file. Paths the store does not own are ignored,
// and so is a file that is already gone.
func (s *Store) Remove(publicPath string) error {
	if !s.Owns(publicPath) {
		return nil
	}
	err := os.Remove(filepath.Join(s.Dir, strings.TrimPrefix(publicPath, s.URLPrefix)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
