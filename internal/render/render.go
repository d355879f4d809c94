// Copyright 2020 Aleksandr Demakin. All rights reserved.

// Package render formats decoded values for output.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	of "github.com/robaho/fixed"

	"github.com/avdva/genfloat"
)

// Mode is an output format.
type Mode int

const (
	// Text is the shortest decimal identifying the value in its format.
	Text Mode = iota
	// Exact is the full decimal expansion.
	Exact
	// Float64 is the value rounded to the nearest float64.
	Float64
	// Fixed is a fixed-point number with 7 decimal places.
	// Values out of its range are NaN.
	Fixed
	// JSON is the value marshaled according to genfloat.JSONMode.
	JSON
	// Fields is the breakdown of the raw bit fields.
	Fields
)

var modeNames = [...]string{"text", "exact", "float64", "fixed", "json", "fields"}

// ParseMode returns a mode by its name.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range modeNames {
		if name == s {
			return Mode(i), nil
		}
	}
	return 0, errors.Errorf("unknown output mode %q, want one of %s", s, strings.Join(modeNames[:], ", "))
}

func (m Mode) String() string {
	if m >= 0 && int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "mode(" + strconv.Itoa(int(m)) + ")"
}

// Set implements pflag.Value.
func (m *Mode) Set(s string) error {
	parsed, err := ParseMode(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Type implements pflag.Value.
func (m *Mode) Type() string {
	return "mode"
}

// Render returns v formatted according to mode.
func Render(v genfloat.Value, mode Mode) (string, error) {
	switch mode {
	case Text:
		return v.String(), nil
	case Exact:
		return v.ExactString(), nil
	case Float64:
		if v.IsNaN() {
			return v.String(), nil
		}
		return strconv.FormatFloat(v.Float64(), 'g', -1, 64), nil
	case Fixed:
		return of.NewF(v.Float64()).String(), nil
	case JSON:
		data, err := v.MarshalJSON()
		if err != nil {
			return "", errors.Wrap(err, "json marshaling failed")
		}
		return string(data), nil
	case Fields:
		f := v.Fields()
		return fmt.Sprintf("sign=%d exp=%#x sig=%#x class=%s", f.Sign, f.Exp, f.Sig, v.Class()), nil
	}
	return "", errors.Errorf("unknown output mode %d", int(mode))
}
