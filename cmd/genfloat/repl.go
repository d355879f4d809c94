// Copyright 2020 Aleksandr Demakin. All rights reserved.

package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/avdva/genfloat/internal/repl"
)

func newReplCmd(opts *rootOptions) *cobra.Command {
	var flags layoutFlags
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Decode patterns typed interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := flags.resolve(cmd.Flags(), opts.cfg)
			if err != nil {
				return err
			}
			s := repl.Session{
				Format: l.format,
				Radix:  l.radix,
				Output: l.output,
				Logger: log.StandardLogger(),
			}
			in := cmd.InOrStdin()
			s.Interactive = isTerminal(in)
			return s.Run(in, cmd.OutOrStdout())
		},
	}
	flags.register(cmd.Flags())
	return cmd
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
