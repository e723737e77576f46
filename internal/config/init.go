package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/fragsync/internal/foundation/errors"
	"git.home.luguber.info/inful/fragsync/internal/site"
)

// discoverDepth is how many directory levels Init searches for pages.
const discoverDepth = 2

const initHeader = `# fragsync configuration
#
# Fragments are copied from the canonical page into every target. Relative
# href/src values are rewritten for the target's directory depth.
`

// Init writes a starter configuration to configPath listing the .html pages
// found below root. An existing file is only replaced when force is set.
func Init(configPath, root string, force bool) (*Config, error) {
	if _, err := os.Stat(configPath); err == nil && !force {
		return nil, errors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithContext("path", configPath).
			Build()
	}

	cfg := &Config{Root: root, dir: filepath.Dir(configPath)}
	ApplyDefaults(cfg)

	pages, err := site.OpenDir(cfg.SiteRoot()).DiscoverPages(discoverDepth, cfg.CanonicalPath())
	if err != nil {
		return nil, err
	}
	cfg.Targets = pages

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryInternal, "failed to marshal config").Build()
	}
	data = append([]byte(initHeader), data...)

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to write config file").
			Fatal().
			WithContext("path", configPath).
			Build()
	}
	return cfg, nil
}
