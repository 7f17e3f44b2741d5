// Package imageconv normalizes scanned images into a format every OCR engine
// accepts.
package imageconv

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var ErrUnsupportedFormat = errors.New("unsupported image format")

// passthrough formats are handed to OCR engines unchanged.
var passthrough = map[string]bool{"png": true, "jpeg": true}

// Normalize returns data unchanged when it is PNG or JPEG and re-encodes
// anything else the registered decoders understand (GIF, BMP, TIFF, WebP) as
// PNG. Only the first page of a multi-page TIFF is kept. The second return
// value is the detected source format.
func Normalize(data []byte) ([]byte, string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, "", ErrUnsupportedFormat
		}
		return nil, "", fmt.Errorf("read image header: %w", err)
	}
	if passthrough[format] {
		return data, format, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, format, fmt.Errorf("decode %s: %w", format, err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, format, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), format, nil
}
