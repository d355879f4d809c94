// Copyright 2020 Aleksandr Demakin. All rights reserved.

// Command genfloat decodes floating-point bit patterns of arbitrary width.
//
//	genfloat decode --format half 3c00 7bff 0001
//	genfloat decode --exp 8 --sig 10 --output exact 1fc_0
//	genfloat repl --exp 5 --sig 2
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
