// Copyright 2020 Aleksandr Demakin. All rights reserved.

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/avdva/genfloat"
)

func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List preset formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tLAYOUT\tWIDTH\tBIAS\tEXPONENTS")
			for _, name := range genfloat.FormatNames() {
				f, _ := genfloat.FormatByName(name)
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t[%d, %d]\n", name, f, f.Width(), f.Bias(), f.MinExp(), f.MaxExp())
			}
			return w.Flush()
		},
	}
}
