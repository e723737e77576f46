package fragment

import "strings"

// EndFinder returns the offset just past a fragment that starts at start.
type EndFinder interface {
	FindEnd(doc string, start int) (int, bool)
}

// ClosingTag ends the fragment after the first occurrence of Tag at or after
// the start offset.
type ClosingTag struct {
	Tag string
}

func (c ClosingTag) FindEnd(doc string, start int) (int, bool) {
	idx := strings.Index(doc[start:], c.Tag)
	if idx < 0 {
		return 0, false
	}
	return start + idx + len(c.Tag), true
}

// BalancedContainer ends the fragment after the close tag that balances the
// element carrying Anchor. The element's own opening is the nearest Open
// preceding the anchor.
type BalancedContainer struct {
	Anchor string
	Open   string
	Close  string
}

// tagScan is the state of a balanced scan: the open element count and the
// cursor just past the last consumed tag.
type tagScan struct {
	depth  int
	cursor int
}

func (b BalancedContainer) FindEnd(doc string, start int) (int, bool) {
	rel := strings.Index(doc[start:], b.Anchor)
	if rel < 0 {
		return 0, false
	}
	anchor := start + rel

	open := strings.LastIndex(doc[start:anchor], b.Open)
	if open < 0 {
		return 0, false
	}

	s := tagScan{depth: 1, cursor: start + open + len(b.Open)}
	for s.depth > 0 {
		rest := doc[s.cursor:]
		nextClose := strings.Index(rest, b.Close)
		if nextClose < 0 {
			return 0, false
		}
		nextOpen := strings.Index(rest, b.Open)
		if nextOpen >= 0 && nextOpen < nextClose {
			s.depth++
			s.cursor += nextOpen + len(b.Open)
			continue
		}
		s.depth--
		s.cursor += nextClose + len(b.Close)
	}
	return s.cursor, true
}
