// Package tesseract runs local OCR through gosseract. The engine is compiled
// only with the "tesseract" build tag and cgo, which need libtesseract and leptonica
// at build time and the language data at run time. Other builds get a stub.
package tesseract

import (
	"context"
	"errors"
	"fmt"
)

// MaxPageSegMode is the highest Tesseract page segmentation mode.
const MaxPageSegMode = 13

var (
	ErrUnavailable     = errors.New("tesseract: not available in this build (rebuild with -tags tesseract)")
	ErrInvalidPageMode = errors.New("tesseract: invalid page segmentation mode")
)

func checkRequest(ctx context.Context, pageSegMode int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if pageSegMode < 0 || pageSegMode > MaxPageSegMode {
		return fmt.Errorf("%w: %d", ErrInvalidPageMode, pageSegMode)
	}
	return nil
}
