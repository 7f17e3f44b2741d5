package transformxml

import (
	"github.com/beevik/etree"
)

// removeElements detaches every element matched by paths.
func removeElements(doc *etree.Document, paths []etree.Path) int {
	removed := 0
	for _, p := range paths {
		for _, e := range doc.FindElementsPath(p) {
			if parent := e.Parent(); parent != nil && parent.RemoveChild(e) != nil {
				removed++
			}
		}
	}
	return removed
}

func removeAttributes(elems []*etree.Element, names []string) {
	if len(names) == 0 {
		return
	}
	for _, e := range elems {
		for _, n := range names {
			e.RemoveAttr(n)
		}
	}
}

// stripNamespaces drops prefixes from elements and attributes and removes
// namespace declarations.
func stripNamespaces(elems []*etree.Element) {
	for _, e := range elems {
		e.Space = ""
		attrs := e.Attr[:0]
		for _, a := range e.Attr {
			if a.Space == "xmlns" || (a.Space == "" && a.Key == "xmlns") {
				continue
			}
			a.Space = ""
			attrs = append(attrs, a)
		}
		e.Attr = attrs
	}
}

func sortAttributes(elems []*etree.Element) {
	for _, e := range elems {
		e.SortAttrs()
	}
}

func indent(doc *etree.Document, n int32) {
	switch {
	case n == IndentTabs:
		doc.IndentTabs()
	case n == IndentCompact:
		doc.Unindent()
	default:
		doc.Indent(int(n))
	}
}
