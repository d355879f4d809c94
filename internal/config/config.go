// Copyright 2020 Aleksandr Demakin. All rights reserved.

// Package config loads command line defaults from a TOML file.
package config

import (
	"bytes"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"

	"github.com/avdva/genfloat"
)

// Config holds the defaults for the decoder CLI.
// Format, if set, takes precedence over the widths.
type Config struct {
	ExpWidth int    `toml:"exp_width"`
	SigWidth int    `toml:"sig_width"`
	Format   string `toml:"format"`
	Radix    string `toml:"radix"`
	Output   string `toml:"output"`
	LogLevel string `toml:"log_level"`
}

// Default returns a single precision, hex input, text output config.
func Default() Config {
	return Config{
		ExpWidth: genfloat.Binary32.ExpBits,
		SigWidth: genfloat.Binary32.SigBits,
		Radix:    "hex",
		Output:   "text",
		LogLevel: "info",
	}
}

// Load reads a config file. Missing keys keep their default values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "reading config")
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, errors.Wrapf(err, "parsing %s", path)
	}
	return cfg, nil
}

// Parse decodes TOML data on top of Default. Unknown keys are errors.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Layout returns the configured floating-point format.
func (c Config) Layout() (genfloat.Format, error) {
	if c.Format != "" {
		f, ok := genfloat.FormatByName(c.Format)
		if !ok {
			return genfloat.Format{}, errors.Errorf("unknown format %q", c.Format)
		}
		return f, nil
	}
	return genfloat.NewFormat(c.ExpWidth, c.SigWidth)
}
