package gvision

import (
	"sort"

	vision "google.golang.org/api/vision/v1"
)

func fullText(r *vision.AnnotateImageResponse) string {
	if r == nil || r.FullTextAnnotation == nil {
		return ""
	}
	return r.FullTextAnnotation.Text
}

// pagesOf flattens one file response. Responses without a page number are
// numbered by position.
func pagesOf(fr *vision.AnnotateFileResponse) ([]Page, error) {
	pages := make([]Page, 0, len(fr.Responses))
	for i, r := range fr.Responses {
		if err := statusError(r.Error); err != nil {
			return nil, err
		}
		n := i + 1
		if r.Context != nil && r.Context.PageNumber > 0 {
			n = int(r.Context.PageNumber)
		}
		pages = append(pages, Page{Number: n, Text: fullText(r)})
	}
	return pages, nil
}

func sortPages(pages []Page) {
	sort.SliceStable(pages, func(i, j int) bool { return pages[i].Number < pages[j].Number })
}
