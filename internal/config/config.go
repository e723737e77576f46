// Package config loads the fragsync YAML configuration.
package config

import (
	"path"
	"path/filepath"

	"git.home.luguber.info/inful/fragsync/internal/fragment"
	"git.home.luguber.info/inful/fragsync/internal/site"
)

// DefaultPath is the configuration file used when none is given.
const DefaultPath = "fragsync.yaml"

// Config represents the application configuration.
type Config struct {
	Root      string           `yaml:"root"`
	Canonical string           `yaml:"canonical"`
	Fragments []FragmentConfig `yaml:"fragments"`
	Targets   []string         `yaml:"targets"`
	Safety    SafetyConfig     `yaml:"safety"`
	Metrics   MetricsConfig    `yaml:"metrics"`

	// dir is the directory of the loaded file; relative paths resolve against it.
	dir string
}

// FragmentConfig selects a fragment kind and optionally overrides its markers.
type FragmentConfig struct {
	Kind         string `yaml:"kind"`
	StartComment string `yaml:"start_comment,omitempty"`
	StartTag     string `yaml:"start_tag,omitempty"`
	EndAnchor    string `yaml:"end_anchor,omitempty"`
}

// SafetyConfig guards against overwriting uncommitted work.
type SafetyConfig struct {
	RequireClean bool `yaml:"require_clean"`
}

// MetricsConfig controls the Prometheus textfile export.
type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

// Definition builds the fragment definition described by f.
func (f FragmentConfig) Definition() (fragment.Definition, error) {
	kind, err := fragment.ParseKind(f.Kind)
	if err != nil {
		return fragment.Definition{}, err
	}
	return fragment.New(kind, fragment.Markers{
		StartComment: f.StartComment,
		StartTag:     f.StartTag,
		EndAnchor:    f.EndAnchor,
	})
}

// Dir returns the directory the configuration was loaded from.
func (c *Config) Dir() string {
	if c.dir == "" {
		return "."
	}
	return c.dir
}

// SiteRoot returns the site root as a filesystem path.
func (c *Config) SiteRoot() string {
	return c.resolve(c.Root)
}

// MetricsFile returns the textfile path, or "" when metrics export is off.
func (c *Config) MetricsFile() string {
	if c.Metrics.Textfile == "" {
		return ""
	}
	return c.resolve(c.Metrics.Textfile)
}

func (c *Config) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Dir(), p)
}

// CanonicalPath returns the cleaned canonical document path relative to the root.
func (c *Config) CanonicalPath() string {
	return path.Clean(filepath.ToSlash(c.Canonical))
}

// Definitions returns the configured fragment definitions in file order,
// limited to only when it is non-empty.
func (c *Config) Definitions(only ...fragment.Kind) ([]fragment.Definition, error) {
	want := make(map[fragment.Kind]bool, len(only))
	for _, k := range only {
		want[k] = true
	}
	defs := make([]fragment.Definition, 0, len(c.Fragments))
	for _, fc := range c.Fragments {
		def, err := fc.Definition()
		if err != nil {
			return nil, err
		}
		if len(want) > 0 && !want[def.Kind] {
			continue
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// TargetList converts the configured target paths.
func (c *Config) TargetList() ([]site.Target, error) {
	return site.NewTargets(c.Targets)
}
