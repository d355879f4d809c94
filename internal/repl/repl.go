// Copyright 2020 Aleksandr Demakin. All rights reserved.

// Package repl implements an interactive decoding session.
package repl

import (
	"fmt"
	"io"
	"strings"

	"github.com/ergochat/readline"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/avdva/genfloat"
	"github.com/avdva/genfloat/internal/bitstr"
	"github.com/avdva/genfloat/internal/render"
)

const separator = "--------------------------------"

// Session reads bit patterns line by line and prints their decoded values.
// Besides patterns, it understands the following commands:
//	hex, bin - switch the input radix;
//	exit, quit, q - finish the session.
type Session struct {
	Format genfloat.Format
	Radix  bitstr.Radix
	Output render.Mode
	Logger log.FieldLogger
	// Interactive enables line editing, which requires in to be a terminal.
	Interactive bool
}

func (s *Session) logger() log.FieldLogger {
	if s.Logger == nil {
		return log.StandardLogger()
	}
	return s.Logger
}

func (s *Session) newReader(in io.Reader, out io.Writer) (*readline.Instance, error) {
	cfg := &readline.Config{
		Stdin:          in,
		Stdout:         out,
		Stderr:         out,
		Undo:           true,
		FuncIsTerminal: func() bool { return s.Interactive },
	}
	if !s.Interactive {
		cfg.FuncMakeRaw = func() error { return nil }
		cfg.FuncExitRaw = func() error { return nil }
	}
	return readline.NewFromConfig(cfg)
}

// Run runs the session until one of the exit commands or the end of in.
func (s *Session) Run(in io.Reader, out io.Writer) error {
	if err := s.Format.Validate(); err != nil {
		return err
	}
	if s.Radix != bitstr.Hex && s.Radix != bitstr.Bin {
		s.Radix = bitstr.Hex
	}
	rl, err := s.newReader(in, out)
	if err != nil {
		return errors.Wrap(err, "initializing input")
	}
	defer rl.Close()
	w := rl.Stdout()
	fmt.Fprintf(w, "Decoding %s: sign bit, %d exponent bits, %d significand bits\n",
		s.Format, s.Format.ExpBits, s.Format.SigBits)
	fmt.Fprintln(w, "Type 'hex' or 'bin' to change the input radix")
	fmt.Fprintln(w, "Add '_0' or '_1' to pad the pattern with zeros or ones")
	fmt.Fprintln(w, "Type 'exit', 'quit' or 'q' to finish")
	fmt.Fprintln(w, strings.Repeat("=", 2*len(separator)))

	for {
		rl.SetPrompt(fmt.Sprintf("Enter pattern (%s): ", s.Radix))
		line, err := rl.ReadLine()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(w)
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "reading input")
		}
		line = strings.TrimSpace(line)
		switch line {
		case "exit", "quit", "q":
			fmt.Fprintln(w, "Bye")
			return nil
		case "hex":
			s.Radix = bitstr.Hex
			continue
		case "bin":
			s.Radix = bitstr.Bin
			continue
		}
		result, err := s.decode(line)
		if err != nil {
			s.logger().WithError(err).Warnf("Bad pattern %q.", line)
			fmt.Fprintf(w, "Wrong pattern: %v\n", err)
			continue
		}
		fmt.Fprintf(w, "Decimal: %s\n%s\n", result, separator)
	}
}

func (s *Session) decode(line string) (string, error) {
	bits, err := bitstr.Parse(line, s.Radix, s.Format.Width())
	if err != nil {
		return "", err
	}
	v, err := s.Format.Decode(bits)
	if err != nil {
		return "", err
	}
	f := v.Fields()
	s.logger().WithFields(log.Fields{
		"pattern": fmt.Sprintf("%#x", bits),
		"sign":    f.Sign,
		"exp":     f.Exp,
		"sig":     fmt.Sprintf("%#x", f.Sig),
		"class":   v.Class().String(),
	}).Debug("Decoded pattern.")
	return render.Render(v, s.Output)
}
