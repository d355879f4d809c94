// Copyright 2020 Aleksandr Demakin. All rights reserved.

package main

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/avdva/genfloat"
	"github.com/avdva/genfloat/internal/bitstr"
	"github.com/avdva/genfloat/internal/config"
	"github.com/avdva/genfloat/internal/render"
)

var (
	_ pflag.Value = (*bitstr.Radix)(nil)
	_ pflag.Value = (*render.Mode)(nil)
)

type rootOptions struct {
	configPath string
	logLevel   string
	cfg        config.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:          "genfloat",
		Short:        "Decode floating-point bit patterns of any exponent and significand width",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.init(cmd)
		},
	}
	fs := root.PersistentFlags()
	fs.StringVar(&opts.configPath, "config", "", "path to a TOML file with defaults")
	fs.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	root.AddCommand(newDecodeCmd(opts), newReplCmd(opts), newFormatsCmd())
	return root
}

func (o *rootOptions) init(cmd *cobra.Command) error {
	o.cfg = config.Default()
	if o.configPath != "" {
		cfg, err := config.Load(o.configPath)
		if err != nil {
			return err
		}
		o.cfg = cfg
	}
	level := o.cfg.LogLevel
	if o.logLevel != "" {
		level = o.logLevel
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return errors.Wrap(err, "bad log level")
	}
	log.SetLevel(lvl)
	log.SetOutput(cmd.ErrOrStderr())
	log.Debugf("Using config %+v.", o.cfg)
	return nil
}

// layoutFlags are shared by the commands that decode patterns.
// Flags override the config values only when set explicitly.
type layoutFlags struct {
	exp, sig int
	format   string
	radix    bitstr.Radix
	output   render.Mode
}

func (l *layoutFlags) register(fs *pflag.FlagSet) {
	l.radix = bitstr.Hex
	fs.IntVar(&l.exp, "exp", 0, "exponent width in bits")
	fs.IntVar(&l.sig, "sig", 0, "significand width in bits, without the implicit bit")
	fs.StringVar(&l.format, "format", "", "preset format name, see 'genfloat formats'")
	fs.Var(&l.radix, "radix", "input radix: hex or bin")
	fs.Var(&l.output, "output", "output mode: text, exact, float64, fixed, json, fields")
}

type layout struct {
	format genfloat.Format
	radix  bitstr.Radix
	output render.Mode
}

func (l *layoutFlags) resolve(fs *pflag.FlagSet, cfg config.Config) (layout, error) {
	var (
		result layout
		err    error
	)
	if fs.Changed("exp") {
		cfg.ExpWidth, cfg.Format = l.exp, ""
	}
	if fs.Changed("sig") {
		cfg.SigWidth, cfg.Format = l.sig, ""
	}
	if fs.Changed("format") {
		cfg.Format = l.format
	}
	if result.format, err = cfg.Layout(); err != nil {
		return layout{}, err
	}
	if fs.Changed("radix") {
		result.radix = l.radix
	} else if result.radix, err = bitstr.ParseRadix(cfg.Radix); err != nil {
		return layout{}, errors.Wrap(err, "bad config")
	}
	if fs.Changed("output") {
		result.output = l.output
	} else if result.output, err = render.ParseMode(cfg.Output); err != nil {
		return layout{}, errors.Wrap(err, "bad config")
	}
	return result, nil
}
