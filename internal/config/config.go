package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// FileNames are the config files looked up from the working directory, in
// order of preference.
var FileNames = []string{"idlc.yaml", "idlc.yml", "idlc.toml"}

const (
	CurrentVersion   = 1
	DefaultOutputDir = "."
)

type Config struct {
	Version int      `yaml:"version" toml:"version"`
	Schemas []Schema `yaml:"schemas" toml:"schemas"`
	Output  Output   `yaml:"output" toml:"output"`
	Writer  Writer   `yaml:"writer" toml:"writer"`
}

type Schema struct {
	// Path is a glob relative to the config file.
	Path string `yaml:"path" toml:"path"`
}

type Output struct {
	// Dir is where the namespace packages are created.
	Dir string `yaml:"dir" toml:"dir"`
}

type Writer struct {
	// Package is the import path of the fixup writer the generated
	// serializers depend on. Empty means the bundled one.
	Package string `yaml:"package" toml:"package"`
}

var ErrNotFound = errors.New("no config file found")

// Find returns the path of the first config file present in dir.
func Find(dir string) (string, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)

		if _, err := os.Stat(path); err == nil {
			return path, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf(`failed to stat config file "%s": %w`, path, err)
		}
	}

	return "", fmt.Errorf(`%w in "%s" (looked for %v)`, ErrNotFound, dir, FileNames)
}

// Read loads a config file. TOML is used for ".toml" files, YAML otherwise.
func Read(configPath string) (*Config, error) {
	var config Config

	if filepath.Ext(configPath) == ".toml" {
		if _, err := toml.DecodeFile(configPath, &config); err != nil {
			return nil, fmt.Errorf(`failed to unmarshal config file "%s": %w`, configPath, err)
		}
	} else {
		fileData, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf(`failed to read config file "%s": %w`, configPath, err)
		}

		if err := yaml.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf(`failed to unmarshal config file "%s": %w`, configPath, err)
		}
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf(`invalid config file "%s": %w`, configPath, err)
	}

	if config.Output.Dir == "" {
		config.Output.Dir = DefaultOutputDir
	}

	return &config, nil
}

func (c *Config) validate() error {
	if c.Version != CurrentVersion {
		return fmt.Errorf("unsupported version %d, expected %d", c.Version, CurrentVersion)
	}

	if len(c.Schemas) == 0 {
		return errors.New("at least one schema path is required")
	}

	for i, s := range c.Schemas {
		if s.Path == "" {
			return fmt.Errorf("schemas[%d] has an empty path", i)
		}
	}

	return nil
}
