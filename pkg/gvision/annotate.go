package gvision

import (
	"context"
	"encoding/base64"
	"fmt"

	vision "google.golang.org/api/vision/v1"
)

func features() []*vision.Feature {
	return []*vision.Feature{{Type: featureDocumentText}}
}

func imageContext(languages []string) *vision.ImageContext {
	if len(languages) == 0 {
		return nil
	}
	return &vision.ImageContext{LanguageHints: languages}
}

func statusError(s *vision.Status) error {
	if s == nil || (s.Code == 0 && s.Message == "") {
		return nil
	}
	return fmt.Errorf("%w: code %d: %s", ErrAnnotation, s.Code, s.Message)
}

// RecognizeImage runs document text detection on a single image.
func (c *Client) RecognizeImage(ctx context.Context, image []byte, languages []string) (Page, error) {
	if err := c.wait(ctx); err != nil {
		return Page{}, err
	}
	req := &vision.BatchAnnotateImagesRequest{
		Requests: []*vision.AnnotateImageRequest{{
			Image:        &vision.Image{Content: base64.StdEncoding.EncodeToString(image)},
			Features:     features(),
			ImageContext: imageContext(languages),
		}},
	}
	resp, err := c.vision.Images.Annotate(req).Context(ctx).Do()
	if err != nil {
		return Page{}, fmt.Errorf("failed to annotate image: %w", err)
	}
	if len(resp.Responses) == 0 {
		return Page{Number: 1}, nil
	}
	r := resp.Responses[0]
	if err := statusError(r.Error); err != nil {
		return Page{}, err
	}
	return Page{Number: 1, Text: fullText(r)}, nil
}

// RecognizeFile runs synchronous document text detection on a PDF, TIFF or
// GIF. The service only annotates the first five pages this way.
func (c *Client) RecognizeFile(ctx context.Context, data []byte, mimeType string, languages []string) ([]Page, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	req := &vision.BatchAnnotateFilesRequest{
		Requests: []*vision.AnnotateFileRequest{{
			InputConfig: &vision.InputConfig{
				Content:  base64.StdEncoding.EncodeToString(data),
				MimeType: mimeType,
			},
			Features:     features(),
			ImageContext: imageContext(languages),
		}},
	}
	resp, err := c.vision.Files.Annotate(req).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to annotate file: %w", err)
	}

	var pages []Page
	for _, fr := range resp.Responses {
		if err := statusError(fr.Error); err != nil {
			return nil, err
		}
		p, err := pagesOf(fr)
		if err != nil {
			return nil, err
		}
		pages = append(pages, p...)
	}
	sortPages(pages)
	return pages, nil
}
