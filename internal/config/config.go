// Package config handles loading and parsing the application's configuration.
package config

import "github.com/BurntSushi/toml"

// Config holds all configuration for the application.
// We use struct tags to explicitly map TOML keys to struct fields.
type Config struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	LogLevel string `toml:"log_level"` // hclog level name: trace, debug, info, warn, error
}

// New returns a new Config with default values.
func New() *Config {
	return &Config{
		Host:     "localhost",
		Port:     8080,
		LogLevel: "info",
	}
}

// Load reads a configuration file from the given path and populates the Config struct.
func (c *Config) Load(path string) error {
	_, err := toml.DecodeFile(path, c)
	return err
}
