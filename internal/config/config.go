// Package config loads interpreter settings from a YAML file.
package config

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/jonathanjma/iCook/internal/evaluator"
	"github.com/jonathanjma/iCook/internal/printer"
)

// Config holds the settings shared by the driver and the CLI.
type Config struct {
	// MaxDepth bounds nested evaluation before StackOverflow is reported.
	MaxDepth int `yaml:"max_depth"`
	// Indent is the number of spaces per level in tree output.
	Indent int `yaml:"indent"`
	// Prelude lists source files evaluated before the program. Relative
	// paths are resolved against the config file's directory.
	Prelude []string `yaml:"prelude"`
	// Color enables coloured CLI output.
	Color bool `yaml:"color"`
}

func Default() Config {
	return Config{
		MaxDepth: evaluator.DefaultMaxDepth,
		Indent:   printer.DefaultIndent,
		Color:    true,
	}
}

// Load reads path. Fields missing from the file keep their defaults;
// unknown fields are an error.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config: read %s", path)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config: parse %s", path)
	}
	dir := filepath.Dir(path)
	for i, p := range cfg.Prelude {
		if !filepath.IsAbs(p) {
			cfg.Prelude[i] = filepath.Join(dir, p)
		}
	}
	return cfg, nil
}

// Parse decodes YAML on top of Default.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, errors.WithStack(err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.MaxDepth < 0 {
		return errors.Errorf("max_depth must not be negative, got %d", c.MaxDepth)
	}
	if c.Indent < 0 || c.Indent > 16 {
		return errors.Errorf("indent must be between 0 and 16, got %d", c.Indent)
	}
	return nil
}
