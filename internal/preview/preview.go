// Package preview encodes rendered mesh previews to disk.
package preview

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
)

// ErrFormat is returned for an extension with no encoder.
var ErrFormat = errors.New("preview: unsupported format")

// Formats lists the accepted preview formats.
var Formats = []string{"webp", "tga", "png"}

// Encode writes img to w in the named format (webp, tga or png).
func Encode(w io.Writer, img image.Image, format string) error {
	var err error
	switch strings.ToLower(format) {
	case "webp":
		err = nativewebp.Encode(w, img, nil)
	case "tga":
		err = tga.Encode(w, img)
	case "png":
		err = png.Encode(w, img)
	default:
		return fmt.Errorf("%w: %q", ErrFormat, format)
	}
	if err != nil {
		return fmt.Errorf("preview: encode %s: %w", format, err)
	}
	return nil
}

// Write encodes img to path, picking the encoder from the file extension.
// Parent directories are created as needed.
func Write(path string, img image.Image) error {
	format := strings.TrimPrefix(filepath.Ext(path), ".")
	if !Supported(format) {
		return fmt.Errorf("%w: %q", ErrFormat, filepath.Ext(path))
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("preview: create dir for %s: %w", path, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("preview: create %s: %w", path, err)
	}
	if err := Encode(f, img, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Supported reports whether format names an encoder.
func Supported(format string) bool {
	format = strings.ToLower(format)
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}
