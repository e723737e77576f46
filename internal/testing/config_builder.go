package testing

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/fragsync/internal/config"
)

// ConfigBuilder provides a fluent interface for creating test configurations
type ConfigBuilder struct {
	config *config.Config
	t      *testing.T
}

// NewConfigBuilder creates a configuration with the default canonical page.
func NewConfigBuilder(t *testing.T) *ConfigBuilder {
	return &ConfigBuilder{
		config: &config.Config{
			Root:      ".",
			Canonical: "index.html",
		},
		t: t,
	}
}

// WithRoot sets the site root relative to the config file.
func (cb *ConfigBuilder) WithRoot(root string) *ConfigBuilder {
	cb.config.Root = root
	return cb
}

// WithTargets appends target pages.
func (cb *ConfigBuilder) WithTargets(targets ...string) *ConfigBuilder {
	cb.config.Targets = append(cb.config.Targets, targets...)
	return cb
}

// WithFragment appends a fragment entry.
func (cb *ConfigBuilder) WithFragment(fc config.FragmentConfig) *ConfigBuilder {
	cb.config.Fragments = append(cb.config.Fragments, fc)
	return cb
}

// WithRequireClean toggles the git cleanliness guard.
func (cb *ConfigBuilder) WithRequireClean(v bool) *ConfigBuilder {
	cb.config.Safety.RequireClean = v
	return cb
}

// WithMetricsTextfile sets the metrics output path.
func (cb *ConfigBuilder) WithMetricsTextfile(p string) *ConfigBuilder {
	cb.config.Metrics.Textfile = p
	return cb
}

// Build returns the configuration without defaults applied.
func (cb *ConfigBuilder) Build() *config.Config {
	return cb.config
}

// WriteTo marshals the configuration into dir and returns the file path.
func (cb *ConfigBuilder) WriteTo(dir string) string {
	cb.t.Helper()
	data, err := yaml.Marshal(cb.config)
	if err != nil {
		cb.t.Fatalf("Failed to marshal config: %v", err)
	}
	p := filepath.Join(dir, config.DefaultPath)
	if err := os.WriteFile(p, data, testFilePermissions); err != nil {
		cb.t.Fatalf("Failed to write config: %v", err)
	}
	return p
}
