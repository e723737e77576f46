// Package normalization maps user supplied names onto a closed set of values.
package normalization

import (
	"fmt"
	"sort"
	"strings"
)

// Normalizer resolves case- and whitespace-insensitive names to values of T.
type Normalizer[T comparable] struct {
	name        string
	validValues map[string]T
	validKeys   []string // sorted, for error messages
}

// NewNormalizer creates a normalizer for the named enumeration. Keys of values
// are normalized the same way as input.
func NewNormalizer[T comparable](name string, values map[string]T) *Normalizer[T] {
	normalized := make(map[string]T, len(values))
	validKeys := make([]string, 0, len(values))

	for k, v := range values {
		key := normalize(k)
		normalized[key] = v
		validKeys = append(validKeys, key)
	}
	sort.Strings(validKeys)

	return &Normalizer[T]{
		name:        name,
		validValues: normalized,
		validKeys:   validKeys,
	}
}

// Normalize returns the value for raw or an error listing the valid names.
func (n *Normalizer[T]) Normalize(raw string) (T, error) {
	if value, ok := n.validValues[normalize(raw)]; ok {
		return value, nil
	}
	var zero T
	return zero, fmt.Errorf("unknown %s %q (valid: %s)", n.name, raw, strings.Join(n.validKeys, ", "))
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
