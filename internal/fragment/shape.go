package fragment

import (
	"io"
	"slices"
	"strings"

	"golang.org/x/net/html"
)

// Shape returns the sequence of tags in s, e.g. ["<footer", "<a", "</a", "</footer"].
// Text, comments and attribute values are ignored, so a fragment and its
// path-rewritten copy share a shape.
func Shape(s string) []string {
	z := html.NewTokenizer(strings.NewReader(s))
	var shape []string
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if z.Err() != io.EOF {
				return append(shape, "!error")
			}
			return shape
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			shape = append(shape, "<"+string(name))
		case html.EndTagToken:
			name, _ := z.TagName()
			shape = append(shape, "</"+string(name))
		}
	}
}

// SameShape reports whether a and b have identical tag sequences.
func SameShape(a, b string) bool {
	return slices.Equal(Shape(a), Shape(b))
}
