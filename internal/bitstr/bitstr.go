// Copyright 2020 Aleksandr Demakin. All rights reserved.

// Package bitstr parses user-typed bit patterns.
// A pattern is written in hexadecimal or binary digits, optionally followed by
// a padding suffix: "_0" fills the missing low digits with zeros, "_1" with ones,
// so "3f8_0" is 0x3f800000 for a 32-bit format.
package bitstr

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	mu "github.com/avdva/genfloat/internal/mathutil"
)

// Radix is the base patterns are written in.
type Radix int

const (
	Bin Radix = 2
	Hex Radix = 16
)

// Pad defines how a pattern is extended to the full width.
type Pad int

const (
	PadNone Pad = iota
	PadZeros
	PadOnes
)

var (
	// ErrEmpty is returned for patterns without digits.
	ErrEmpty = errors.New("empty input")
)

// ParseRadix parses "hex", "bin", "16" or "2".
func ParseRadix(s string) (Radix, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hex", "16":
		return Hex, nil
	case "bin", "2":
		return Bin, nil
	}
	return 0, errors.Errorf("unknown radix %q", s)
}

func (r Radix) String() string {
	switch r {
	case Hex:
		return "hex"
	case Bin:
		return "bin"
	}
	return "radix(" + strconv.Itoa(int(r)) + ")"
}

// Set implements pflag.Value.
func (r *Radix) Set(s string) error {
	parsed, err := ParseRadix(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Type implements pflag.Value.
func (r *Radix) Type() string {
	return "radix"
}

// BitsPerDigit returns the number of bits a single digit holds.
func (r Radix) BitsPerDigit() int {
	return mu.BinaryDigits(uint64(r - 1))
}

func (r Radix) prefix() string {
	if r == Hex {
		return "0x"
	}
	return "0b"
}

func (r Radix) onesDigit() string {
	if r == Hex {
		return "f"
	}
	return "1"
}

func (r Radix) isDigit(c rune) bool {
	switch {
	case c == '0' || c == '1':
		return true
	case r != Hex:
		return false
	case '2' <= c && c <= '9', 'a' <= c && c <= 'f', 'A' <= c && c <= 'F':
		return true
	}
	return false
}

// SplitPad removes the padding suffix from s.
func SplitPad(s string) (digits string, pad Pad) {
	switch {
	case strings.HasSuffix(s, "_0"):
		return s[:len(s)-2], PadZeros
	case strings.HasSuffix(s, "_1"):
		return s[:len(s)-2], PadOnes
	}
	return s, PadNone
}

// Parse converts s into a bit pattern for a format 'width' bits wide.
// Padding extends the digits on the right up to ceil(width/BitsPerDigit) digits,
// longer patterns are returned as is, leaving the excess bits to the decoder.
func Parse(s string, radix Radix, width int) (*big.Int, error) {
	if radix != Hex && radix != Bin {
		return nil, errors.Errorf("unsupported radix %d", int(radix))
	}
	digits, pad := SplitPad(strings.TrimSpace(s))
	if p := radix.prefix(); len(digits) >= len(p) && strings.EqualFold(digits[:len(p)], p) {
		digits = digits[len(p):]
	}
	if len(digits) == 0 {
		return nil, ErrEmpty
	}
	for i, c := range digits {
		if !radix.isDigit(c) {
			return nil, errors.Errorf("unexpected symbol %q at pos %d", c, i+1)
		}
	}
	if pad != PadNone {
		if width < 1 {
			return nil, errors.Errorf("can't pad to %d bits", width)
		}
		fill := "0"
		if pad == PadOnes {
			fill = radix.onesDigit()
		}
		if n := mu.CeilDiv(width, radix.BitsPerDigit()) - len(digits); n > 0 {
			digits += strings.Repeat(fill, n)
		}
	}
	bits, ok := new(big.Int).SetString(digits, int(radix))
	if !ok {
		return nil, errors.Errorf("bad %s number %q", radix, digits)
	}
	return bits, nil
}
