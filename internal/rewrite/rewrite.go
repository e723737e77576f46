// Package rewrite adjusts relative link and resource paths inside an HTML
// fragment for pages that live below the site root.
package rewrite

import (
	"regexp"
	"strings"
)

// UpDir is the relative-path token for the parent directory.
const UpDir = "../"

// Attribute describes one rewritable attribute and the value prefixes that
// must be left alone.
type Attribute struct {
	Name string
	Skip []string

	re *regexp.Regexp
}

func newAttribute(name string, skip ...string) Attribute {
	return Attribute{
		Name: name,
		Skip: skip,
		re:   regexp.MustCompile(name + `="([^"]+)"`),
	}
}

// Attributes are applied in order. Values already starting with UpDir are
// treated as adjusted and never re-prefixed.
var Attributes = []Attribute{
	newAttribute("href", "http", "//", "#", "tel:", "mailto:", UpDir),
	newAttribute("src", "http", "//", "data:", UpDir),
}

// Prefix returns depth copies of UpDir.
func Prefix(depth int) string {
	if depth <= 0 {
		return ""
	}
	return strings.Repeat(UpDir, depth)
}

// Eligible reports whether value would be prefixed for attr.
func (a Attribute) Eligible(value string) bool {
	for _, p := range a.Skip {
		if strings.HasPrefix(value, p) {
			return false
		}
	}
	return true
}

func (a Attribute) apply(s, prefix string) string {
	return a.re.ReplaceAllStringFunc(s, func(m string) string {
		value := m[len(a.Name)+2 : len(m)-1]
		if !a.Eligible(value) {
			return m
		}
		return a.Name + `="` + prefix + value + `"`
	})
}

// Rewrite prefixes every eligible href/src value in fragment with depth
// copies of UpDir. Depth 0 returns fragment unchanged.
func Rewrite(fragment string, depth int) string {
	if depth <= 0 {
		return fragment
	}
	prefix := Prefix(depth)
	for _, a := range Attributes {
		fragment = a.apply(fragment, prefix)
	}
	return fragment
}
