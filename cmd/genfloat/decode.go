// Copyright 2020 Aleksandr Demakin. All rights reserved.

package main

import (
	"fmt"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/avdva/genfloat/internal/bitstr"
	"github.com/avdva/genfloat/internal/render"
)

func newDecodeCmd(opts *rootOptions) *cobra.Command {
	var flags layoutFlags
	cmd := &cobra.Command{
		Use:   "decode PATTERN...",
		Short: "Decode bit patterns and print their values",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := flags.resolve(cmd.Flags(), opts.cfg)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, arg := range args {
				bits, err := bitstr.Parse(arg, l.radix, l.format.Width())
				if err != nil {
					return errors.Wrapf(err, "bad pattern %q", arg)
				}
				v, err := l.format.Decode(bits)
				if err != nil {
					return err
				}
				log.WithFields(log.Fields{
					"pattern": fmt.Sprintf("%#x", bits),
					"format":  l.format.String(),
					"class":   v.Class().String(),
				}).Debug("Decoded pattern.")
				s, err := render.Render(v, l.output)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, s)
			}
			return nil
		},
	}
	flags.register(cmd.Flags())
	return cmd
}
