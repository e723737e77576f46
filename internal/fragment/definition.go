package fragment

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrStartNotFound is returned when no start matcher hits.
	ErrStartNotFound = errors.New("fragment start not found")
	// ErrEndNotFound is returned when the end marker is missing after the start.
	ErrEndNotFound = errors.New("fragment end not found")
)

// Default markers, matching the reference site layout.
const (
	DefaultFooterComment = "<!-- Footer -->"
	DefaultFooterClose   = "</footer>"
	DefaultNavbarComment = "<!-- Top Bar -->"
	DefaultNavbarTopBar  = `<div class="bg-dark-900 text-white py-2`
	DefaultNavbarAnchor  = `id="mobile-menu"`

	// defaultFooterTag is a pattern, not a literal: the tag name must be
	// followed by whitespace.
	defaultFooterTag = `<footer\s`
)

// Markers overrides the literal strings used for detection. Empty fields keep
// the defaults for the kind.
type Markers struct {
	StartComment string
	StartTag     string
	EndAnchor    string
}

// Definition describes how to find one fragment kind in a document.
type Definition struct {
	Kind  Kind
	Start []StartMatcher
	End   EndFinder
}

// Boundaries are the byte offsets of a located fragment; End is exclusive.
type Boundaries struct {
	Start   int
	End     int
	Matcher string
}

// Len returns the fragment length in bytes.
func (b Boundaries) Len() int { return b.End - b.Start }

// New builds the definition for kind, applying marker overrides.
func New(kind Kind, m Markers) (Definition, error) {
	switch kind {
	case KindFooter:
		tag := defaultFooterTag
		if m.StartTag != "" {
			tag = regexp.QuoteMeta(m.StartTag)
		}
		return Definition{
			Kind: kind,
			Start: []StartMatcher{
				LineLeading("comment", regexp.QuoteMeta(orDefault(m.StartComment, DefaultFooterComment))),
				LineLeading("tag", tag),
			},
			End: ClosingTag{Tag: orDefault(m.EndAnchor, DefaultFooterClose)},
		}, nil
	case KindNavbar:
		return Definition{
			Kind: kind,
			Start: []StartMatcher{
				LineLeading("comment", regexp.QuoteMeta(orDefault(m.StartComment, DefaultNavbarComment))),
				AfterBody("top-bar", regexp.QuoteMeta(orDefault(m.StartTag, DefaultNavbarTopBar))),
			},
			End: BalancedContainer{
				Anchor: orDefault(m.EndAnchor, DefaultNavbarAnchor),
				Open:   "<div",
				Close:  "</div>",
			},
		}, nil
	default:
		return Definition{}, fmt.Errorf("unknown fragment kind %q", kind)
	}
}

// Footer returns the default footer definition.
func Footer() Definition {
	d, _ := New(KindFooter, Markers{})
	return d
}

// Navbar returns the default navigation bar definition.
func Navbar() Definition {
	d, _ := New(KindNavbar, Markers{})
	return d
}

// Locate finds the fragment boundaries in doc.
func (d Definition) Locate(doc string) (Boundaries, error) {
	start, name, ok := firstMatch(doc, d.Start)
	if !ok {
		return Boundaries{}, fmt.Errorf("%s: %w", d.Kind, ErrStartNotFound)
	}
	end, ok := d.End.FindEnd(doc, start)
	if !ok {
		return Boundaries{}, fmt.Errorf("%s: %w", d.Kind, ErrEndNotFound)
	}
	return Boundaries{Start: start, End: end, Matcher: name}, nil
}

// Extract returns the fragment text with trailing whitespace removed.
func (d Definition) Extract(doc string) (string, error) {
	b, err := d.Locate(doc)
	if err != nil {
		return "", err
	}
	return strings.TrimRightFunc(doc[b.Start:b.End], isSpace), nil
}

// Splice replaces the bounded region of doc with replacement.
func Splice(doc string, b Boundaries, replacement string) string {
	var sb strings.Builder
	sb.Grow(len(doc) - b.Len() + len(replacement))
	sb.WriteString(doc[:b.Start])
	sb.WriteString(replacement)
	sb.WriteString(doc[b.End:])
	return sb.String()
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}
