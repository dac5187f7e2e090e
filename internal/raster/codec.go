// Package raster turns image files into pixel buffers the X server can take
// directly, and back again.
package raster

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"os"

	// register image formats
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrDecode is returned when image bytes are malformed or in a format we
// have no decoder for.
var ErrDecode = errors.New("cannot decode image")

// Decode decodes an image file held in memory and returns the format name
// reported by the decoder.
func Decode(data []byte) (image.Image, string, error) {
	if len(data) == 0 {
		return nil, "", fmt.Errorf("%w: empty input", ErrDecode)
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return img, format, nil
}

// Load reads and decodes an image file. Read errors are returned as is so
// they can be told apart from decode failures.
func Load(path string) (image.Image, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read image file: %w", err)
	}
	img, format, err := Decode(data)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", path, err)
	}
	return img, format, nil
}
