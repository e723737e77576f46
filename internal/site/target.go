package site

import (
	"path"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/fragsync/internal/foundation/errors"
)

// Target is a page to synchronize, relative to the site root.
type Target struct {
	Path  string
	Depth int
}

// NewTarget cleans rel and derives its depth. Absolute paths and paths that
// leave the site root are rejected.
func NewTarget(rel string) (Target, error) {
	p, err := CleanPath(rel)
	if err != nil {
		return Target{}, err
	}
	return Target{Path: p, Depth: Depth(p)}, nil
}

// NewTargets converts a list of relative paths, stopping at the first invalid one.
func NewTargets(paths []string) ([]Target, error) {
	targets := make([]Target, 0, len(paths))
	for _, p := range paths {
		t, err := NewTarget(p)
		if err != nil {
			return nil, err
		}
		targets = append(targets, t)
	}
	return targets, nil
}

// Depth is the number of directory levels below the root: path segments minus one.
func Depth(rel string) int {
	return strings.Count(path.Clean(filepath.ToSlash(rel)), "/")
}

// CleanPath normalizes rel to a slash-separated path inside the site root.
func CleanPath(rel string) (string, error) {
	if strings.TrimSpace(rel) == "" {
		return "", errors.ValidationError("empty target path").Build()
	}
	p := path.Clean(filepath.ToSlash(rel))
	if path.IsAbs(p) || filepath.IsAbs(rel) {
		return "", errors.ValidationError("target path must be relative to the site root").
			WithContext("path", rel).
			Build()
	}
	if p == ".." || strings.HasPrefix(p, "../") {
		return "", errors.ValidationError("target path leaves the site root").
			WithContext("path", rel).
			Build()
	}
	if p == "." {
		return "", errors.ValidationError("target path names the site root").
			WithContext("path", rel).
			Build()
	}
	return p, nil
}
