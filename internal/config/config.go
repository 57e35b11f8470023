// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package config handles avrokit project configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/joeshaw/envdecode"
	"gopkg.in/yaml.v3"
)

// CurrentConfigVersion is the current version of the config file format.
const CurrentConfigVersion = 1

// FileName is the name of the project configuration file.
const FileName = "avrokit.yaml"

// Formats lists the accepted output formats.
var Formats = []string{"avsc", "canonical"}

// Config represents the avrokit.yaml project configuration file. An empty
// RootName names anonymous roots after their input file.
type Config struct {
	Version   int    `yaml:"version"`
	Namespace string `yaml:"namespace,omitempty"`
	RootName  string `yaml:"root_name,omitempty"`
	Output    string `yaml:"output,omitempty"`
	Format    string `yaml:"format,omitempty"`
	LogLevel  string `yaml:"log_level,omitempty"`
}

// env holds the AVROKIT_* overrides. Unset variables leave fields empty.
type env struct {
	Namespace string `env:"AVROKIT_NAMESPACE"`
	RootName  string `env:"AVROKIT_ROOT_NAME"`
	Output    string `env:"AVROKIT_OUTPUT"`
	Format    string `env:"AVROKIT_FORMAT"`
	LogLevel  string `env:"AVROKIT_LOG_LEVEL"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Version: CurrentConfigVersion,
		Output:  "schemas",
		Format:  "avsc",
	}
}

// Load reads a Config from a file path. Fields the file leaves empty take
// their default values.
func Load(path string) (*Config, error) {
	f, err := os.Open(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	cfg := Default()
	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOptional reads path when it exists and returns the defaults otherwise.
func LoadOptional(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return Load(path)
}

// ApplyEnv overrides fields with the AVROKIT_* environment variables that
// are set.
func (c *Config) ApplyEnv() error {
	var e env
	if err := envdecode.Decode(&e); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return fmt.Errorf("failed to read environment: %w", err)
	}
	override(&c.Namespace, e.Namespace)
	override(&c.RootName, e.RootName)
	override(&c.Output, e.Output)
	override(&c.Format, e.Format)
	override(&c.LogLevel, e.LogLevel)
	return nil
}

func override(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// Save writes the Config to a file path.
func (c *Config) Save(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	return enc.Encode(c)
}

// Validate checks the configuration for required fields and valid values.
func (c *Config) Validate() error {
	if c.Version != CurrentConfigVersion {
		return errors.New("unsupported config version")
	}
	if c.Format != "" && !slices.Contains(Formats, c.Format) {
		return fmt.Errorf("unsupported format %q", c.Format)
	}
	return nil
}
