// Package config handles the application configuration file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Defaults applied by ApplyDefaults when the file leaves a field empty.
const (
	DefaultListenAddr    = ":8080"
	DefaultStorePath     = "s3_config.json"
	DefaultJanitorSpec   = "@every 10m"
	DefaultMaxUploadSize = 100 * 1024 * 1024
)

// Config is the struct for the configuration
type Config struct {
	ListenAddr    string `yaml:"listenaddr"`
	LogLevel      string `yaml:"loglevel"`
	StorePath     string `yaml:"storepath"`
	ScratchDir    string `yaml:"scratchdir"`
	JanitorSpec   string `yaml:"janitorspec"`
	MaxUploadSize int64  `yaml:"maxuploadsize"`
}

// ReadYamlCnxFile reads a yaml file and returns a Config struct
func ReadYamlCnxFile(filename string) (Config, error) {
	var config Config

	yamlFile, err := os.ReadFile(filename)
	if err != nil {
		return config, fmt.Errorf("error reading YAML file: %w", err)
	}

	err = yaml.Unmarshal(yamlFile, &config)
	if err != nil {
		return config, fmt.Errorf("error parsing YAML file: %w", err)
	}
	config.ApplyDefaults()
	return config, nil
}

// ApplyDefaults fills empty fields with their default values. The scratch
// directory defaults to the OS temp dir.
func (c *Config) ApplyDefaults() {
	if c.ListenAddr == "" {
		c.ListenAddr = DefaultListenAddr
	}
	if c.StorePath == "" {
		c.StorePath = DefaultStorePath
	}
	if c.ScratchDir == "" {
		c.ScratchDir = os.TempDir()
	}
	if c.JanitorSpec == "" {
		c.JanitorSpec = DefaultJanitorSpec
	}
	if c.MaxUploadSize <= 0 {
		c.MaxUploadSize = DefaultMaxUploadSize
	}
}
