package config

import (
	"bytes"
	stdErrors "errors"
	"io"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/fragsync/internal/foundation/errors"
)

// envFiles are loaded from the configuration directory, in order.
var envFiles = []string{".env", ".env.local"}

// Load reads, expands, defaults and validates the configuration at configPath.
func Load(configPath string) (*Config, error) {
	dir := filepath.Dir(configPath)
	if err := loadEnvFiles(dir); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if stdErrors.Is(err, os.ErrNotExist) {
			return nil, errors.ConfigError("configuration file not found (run 'fragsync init' to create one)").
				WithContext("path", configPath).
				Build()
		}
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to read config file").
			Fatal().
			WithContext("path", configPath).
			Build()
	}

	cfg, err := parse(data)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to parse config file").
			Fatal().
			WithContext("path", configPath).
			Build()
	}
	cfg.dir = dir

	ApplyDefaults(cfg)
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parse expands ${VAR} references and decodes the YAML strictly.
func parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))
	dec := yaml.NewDecoder(bytes.NewReader([]byte(expanded)))
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil && !stdErrors.Is(err, io.EOF) {
		return nil, err
	}
	return &cfg, nil
}

// loadEnvFiles loads the env files that exist in dir. Variables already set
// in the process environment are not overwritten.
func loadEnvFiles(dir string) error {
	for _, name := range envFiles {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return errors.WrapError(err, errors.CategoryConfig, "failed to load env file").
				Fatal().
				WithContext("path", p).
				Build()
		}
	}
	return nil
}
