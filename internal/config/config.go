// Package config loads configuration for the itweet-stream demo CLI
// from a YAML file, filling in sane defaults for anything the file
// omits.
package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Credentials holds the Basic auth credentials for the streaming API.
type Credentials struct {
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

// Method holds the streaming method to open and its options.
type Method struct {
	// Name is one of filter, firehose, links, retweet, sample.
	Name string `yaml:"name"`

	Track     []string  `yaml:"track"`
	Follow    []int     `yaml:"follow"`
	Locations []float64 `yaml:"locations"`
	Count     int       `yaml:"count"`
}

// Config is the complete set of demo CLI settings.
type Config struct {
	Credentials Credentials   `yaml:"credentials"`
	Method      Method        `yaml:"method"`
	Timeout     time.Duration `yaml:"timeout"`
	Debug       bool          `yaml:"debug"`
	Fake        bool          `yaml:"fake"`
}

// Default returns a Config with the demo CLI's built-in defaults:
// sample method, a 90 second timeout, and debug logging off.
func Default() Config {
	return Config{
		Method:  Method{Name: "sample"},
		Timeout: 90 * time.Second,
	}
}

// Load reads path as YAML into a Config seeded with Default, so any
// field the file omits keeps its default value.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
