package fragment

import "regexp"

// StartMatcher finds a candidate start offset for a fragment.
type StartMatcher interface {
	Name() string
	Find(doc string) (int, bool)
}

// patternMatcher reports the offset of its first capture group.
type patternMatcher struct {
	name string
	re   *regexp.Regexp
}

func (m *patternMatcher) Name() string { return m.name }

func (m *patternMatcher) Find(doc string) (int, bool) {
	loc := m.re.FindStringSubmatchIndex(doc)
	if loc == nil {
		return 0, false
	}
	return loc[2], true
}

// LineLeading matches pattern when only whitespace separates it from the
// start of a line. The start of the document counts as a line start.
func LineLeading(name, pattern string) StartMatcher {
	return &patternMatcher{
		name: name,
		re:   regexp.MustCompile(`(?:\A|\n)\s*(` + pattern + `)`),
	}
}

// AfterBody matches pattern on the first non-blank line following the
// opening <body> tag.
func AfterBody(name, pattern string) StartMatcher {
	return &patternMatcher{
		name: name,
		re:   regexp.MustCompile(`<body[^>]*>\s*\n\s*(` + pattern + `)`),
	}
}

// firstMatch tries matchers in order.
func firstMatch(doc string, matchers []StartMatcher) (int, string, bool) {
	for _, m := range matchers {
		if off, ok := m.Find(doc); ok {
			return off, m.Name(), true
		}
	}
	return 0, "", false
}
