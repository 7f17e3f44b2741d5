//go:build !tesseract || !cgo

package tesseract

import "context"

// Available reports whether this build links libtesseract.
const Available = false

// Engine is a placeholder in builds without the tesseract tag or cgo.
type Engine struct{}

func New() *Engine {
	return &Engine{}
}

// Recognize always fails with ErrUnavailable.
func (e *Engine) Recognize(ctx context.Context, image []byte, languages []string, pageSegMode int) (string, error) {
	if err := checkRequest(ctx, pageSegMode); err != nil {
		return "", err
	}
	return "", ErrUnavailable
}
