package config

import "git.home.luguber.info/inful/fragsync/internal/fragment"

// DefaultApplier applies defaults for a specific configuration domain.
type DefaultApplier interface {
	ApplyDefaults(cfg *Config)
	Domain() string
}

// SiteDefaultApplier handles root and canonical defaults.
type SiteDefaultApplier struct{}

func (SiteDefaultApplier) Domain() string { return "site" }

func (SiteDefaultApplier) ApplyDefaults(cfg *Config) {
	if cfg.Root == "" {
		cfg.Root = "."
	}
	if cfg.Canonical == "" {
		cfg.Canonical = "index.html"
	}
}

// FragmentDefaultApplier enables every known fragment kind when none is listed.
type FragmentDefaultApplier struct{}

func (FragmentDefaultApplier) Domain() string { return "fragments" }

func (FragmentDefaultApplier) ApplyDefaults(cfg *Config) {
	if len(cfg.Fragments) > 0 {
		return
	}
	for _, k := range fragment.Kinds() {
		cfg.Fragments = append(cfg.Fragments, FragmentConfig{Kind: string(k)})
	}
}

var defaultAppliers = []DefaultApplier{
	SiteDefaultApplier{},
	FragmentDefaultApplier{},
}

// ApplyDefaults runs every domain applier in order.
func ApplyDefaults(cfg *Config) {
	for _, a := range defaultAppliers {
		a.ApplyDefaults(cfg)
	}
}
