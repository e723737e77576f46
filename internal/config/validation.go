package config

import (
	"fmt"

	"git.home.luguber.info/inful/fragsync/internal/foundation/errors"
	"git.home.luguber.info/inful/fragsync/internal/fragment"
	"git.home.luguber.info/inful/fragsync/internal/site"
)

// ValidateConfig checks a configuration after defaults have been applied.
func ValidateConfig(cfg *Config) error {
	v := &configurationValidator{config: cfg}
	for _, step := range []func() error{v.validateCanonical, v.validateFragments, v.validateTargets} {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

type configurationValidator struct {
	config    *Config
	canonical string
}

func (cv *configurationValidator) validateCanonical() error {
	p, err := site.CleanPath(cv.config.Canonical)
	if err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "invalid canonical document path").
			Fatal().
			WithContext("canonical", cv.config.Canonical).
			Build()
	}
	cv.canonical = p
	return nil
}

func (cv *configurationValidator) validateFragments() error {
	seen := make(map[fragment.Kind]bool, len(cv.config.Fragments))
	for i, fc := range cv.config.Fragments {
		def, err := fc.Definition()
		if err != nil {
			return errors.WrapError(err, errors.CategoryConfig, fmt.Sprintf("fragments[%d]: invalid fragment", i)).
				Fatal().
				Build()
		}
		if seen[def.Kind] {
			return errors.ConfigError(fmt.Sprintf("fragments[%d]: duplicate fragment kind %q", i, def.Kind)).Build()
		}
		seen[def.Kind] = true
	}
	return nil
}

func (cv *configurationValidator) validateTargets() error {
	if len(cv.config.Targets) == 0 {
		return errors.ConfigError("at least one target page must be configured").Build()
	}
	seen := make(map[string]bool, len(cv.config.Targets))
	for i, raw := range cv.config.Targets {
		p, err := site.CleanPath(raw)
		if err != nil {
			return errors.WrapError(err, errors.CategoryConfig, fmt.Sprintf("targets[%d]: invalid path", i)).
				Fatal().
				WithContext("path", raw).
				Build()
		}
		if p == cv.canonical {
			return errors.ConfigError(fmt.Sprintf("targets[%d]: target is the canonical document", i)).
				WithContext("path", raw).
				Build()
		}
		if seen[p] {
			return errors.ConfigError(fmt.Sprintf("targets[%d]: duplicate target", i)).
				WithContext("path", raw).
				Build()
		}
		seen[p] = true
	}
	return nil
}
