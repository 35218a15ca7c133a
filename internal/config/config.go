// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package config loads the settings of the logicsim command.
//
// Settings are read from a YAML or TOML file, selected by extension:
//
//	step_limit: 100000
//	strict: false
//	log:
//	  level: debug
//	  format: json
//	metrics:
//	  addr: ":9090"
//	waveform:
//	  dir: ./waves
//	  watch: [clk, q]
//
package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/naoina/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/db47h/logicsim"
	"github.com/db47h/logicsim/internal/logging"
)

// Config holds all settings.
//
type Config struct {
	// StepLimit bounds the number of queue items processed per pass.
	StepLimit int `yaml:"step_limit" toml:"step_limit"`
	// Strict makes every diagnostic fatal.
	Strict   bool     `yaml:"strict" toml:"strict"`
	Log      Log      `yaml:"log" toml:"log"`
	Metrics  Metrics  `yaml:"metrics" toml:"metrics"`
	Waveform Waveform `yaml:"waveform" toml:"waveform"`
}

// Log configures logging.
//
type Log struct {
	Level  string `yaml:"level" toml:"level"`   // debug, info, warn or error
	Format string `yaml:"format" toml:"format"` // text or json
}

// Metrics configures the Prometheus endpoint.
//
type Metrics struct {
	// Addr is the listen address of the /metrics endpoint. Empty disables it.
	Addr string `yaml:"addr" toml:"addr"`
}

// Waveform configures waveform recording.
//
type Waveform struct {
	// Dir is the LevelDB directory. Samples are kept in memory if empty.
	Dir string `yaml:"dir" toml:"dir"`
	// Watch lists the nets or element labels to record.
	Watch []string `yaml:"watch" toml:"watch"`
}

// Default returns the default configuration.
//
func Default() *Config {
	return &Config{
		StepLimit: logicsim.DefaultStepLimit,
		Log: Log{
			Level:  "warn",
			Format: "text",
		},
	}
}

// Load reads the configuration file at path on top of the defaults. Files
// ending in .toml are decoded as TOML, anything else as YAML.
//
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(b, cfg)
	default:
		dec := yaml.NewDecoder(bytes.NewReader(b))
		dec.KnownFields(true)
		err = dec.Decode(cfg)
		if err == io.EOF {
			// empty file
			err = nil
		}
	}
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}
	if err = cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, path)
	}
	return cfg, nil
}

// Validate checks the configuration values.
//
func (c *Config) Validate() error {
	if c.StepLimit < 1 {
		return errors.Errorf("step_limit must be positive, got %d", c.StepLimit)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return errors.Errorf("unknown log format %q", c.Log.Format)
	}
	for _, w := range c.Waveform.Watch {
		if strings.TrimSpace(w) == "" {
			return errors.New("empty name in waveform watch list")
		}
	}
	return nil
}

// Options returns the circuit options matching the configuration.
//
func (c *Config) Options() []logicsim.Option {
	return []logicsim.Option{
		logicsim.WithStepLimit(c.StepLimit),
		logicsim.WithStrict(c.Strict),
	}
}
