package forms

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/target/shop-admin/internal/ports"
)

// UploadDir is where chosen files are staged until submit. Empty means os.TempDir.
var UploadDir = ""

// ImageField is an image input that takes either a chosen file or a URL,
// never both. A chosen file is staged in a temp file whose path doubles as the
// preview reference; Release deletes it.
type ImageField struct {
	// Field is the multipart part name the file is sent under.
	Field   string
	URL     string
	File    *ports.Upload
	Preview string

	release func()
}

// NewImageField returns a field sent as field, starting from url.
func NewImageField(field, url string) ImageField {
	return ImageField{Field: field, URL: strings.TrimSpace(url)}
}

// SetFile stages r as the field's file. It releases any earlier file and clears the URL.
func (f *ImageField) SetFile(filename, contentType string, r io.Reader) error {
	if r == nil {
		return errors.New("image: nil reader")
	}
	pattern := "upload-" + uuid.NewString() + "-*" + filepath.Ext(filename)
	tmp, err := os.CreateTemp(UploadDir, pattern)
	if err != nil {
		return fmt.Errorf("stage upload: %w", err)
	}
	path := tmp.Name()
	if _, err := io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		_ = os.Remove(path)
		return fmt.Errorf("stage upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("stage upload: %w", err)
	}

	f.Release()
	f.URL = ""
	f.File = &ports.Upload{
		Field:       f.Field,
		Filename:    filepath.Base(filename),
		ContentType: contentType,
		Path:        path,
	}
	f.Preview = path
	f.release = func() { _ = os.Remove(path) }
	return nil
}

// SetURL sets the URL, releasing and clearing any staged file.
func (f *ImageField) SetURL(url string) {
	f.Release()
	f.URL = strings.TrimSpace(url)
}

// Release deletes the staged file, if any.
func (f *ImageField) Release() {
	if f.release != nil {
		f.release()
		f.release = nil
	}
	f.File = nil
	f.Preview = ""
}

// HasFile reports whether a file is staged.
func (f ImageField) HasFile() bool { return f.File != nil }

// Value is the URL sent in the payload; it is blank when a file replaces it.
func (f ImageField) Value() string {
	if f.File != nil {
		return ""
	}
	return f.URL
}

// Uploads returns the staged file as a multipart part, if any.
func (f ImageField) Uploads() []ports.Upload {
	if f.File == nil {
		return nil
	}
	return []ports.Upload{*f.File}
}
