package fragment

import (
	"strings"

	"git.home.luguber.info/inful/fragsync/internal/foundation/normalization"
)

// Kind names a fragment type.
type Kind string

const (
	KindFooter Kind = "footer"
	KindNavbar Kind = "navbar"
)

// Kinds lists every supported fragment kind in processing order.
func Kinds() []Kind {
	return []Kind{KindFooter, KindNavbar}
}

var kindNames = normalization.NewNormalizer("fragment kind", map[string]Kind{
	string(KindFooter): KindFooter,
	string(KindNavbar): KindNavbar,
})

// ParseKind normalizes a user supplied kind name.
func ParseKind(s string) (Kind, error) {
	return kindNames.Normalize(s)
}

// Title returns the capitalized kind for console messages.
func (k Kind) Title() string {
	if k == "" {
		return ""
	}
	return strings.ToUpper(string(k[:1])) + string(k[1:])
}
