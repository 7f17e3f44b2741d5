//go:build tesseract && cgo

package tesseract

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Available reports whether this build links libtesseract.
const Available = true

// Engine recognizes the text of one image. gosseract clients are not safe
// for concurrent use, so each call opens its own.
type Engine struct {
	clientFactory func() *gosseract.Client
}

func New() *Engine {
	return &Engine{clientFactory: gosseract.NewClient}
}

// Recognize returns the trimmed text of image. pageSegMode must be a text
// producing mode (1..13); zero keeps the Tesseract default.
func (e *Engine) Recognize(ctx context.Context, image []byte, languages []string, pageSegMode int) (string, error) {
	if err := checkRequest(ctx, pageSegMode); err != nil {
		return "", err
	}
	c := e.clientFactory()
	defer c.Close()

	if len(languages) > 0 {
		if err := c.SetLanguage(languages...); err != nil {
			return "", fmt.Errorf("set languages: %w", err)
		}
	}
	if pageSegMode > 0 {
		if err := c.SetPageSegMode(gosseract.PageSegMode(pageSegMode)); err != nil {
			return "", fmt.Errorf("set page segmentation mode: %w", err)
		}
	}
	if err := c.SetImageFromBytes(image); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	text, err := c.Text()
	if err != nil {
		return "", fmt.Errorf("recognize text: %w", err)
	}
	return strings.TrimSpace(text), nil
}
