// Copyright 2020 Aleksandr Demakin. All rights reserved.

package genfloat

import (
	"fmt"
	"math/big"
	"sort"
	"strings"

	mu "github.com/avdva/genfloat/internal/mathutil"
)

const (
	// MaxExpBits is the widest supported exponent field.
	// With it, every finite value fits the exponent range of big.Float.
	MaxExpBits = 31
	// MaxSigBits is the widest supported significand field.
	MaxSigBits = 1 << 20
)

// Format describes a binary floating-point layout.
//   Width-1   Width-2 ...       SigBits   SigBits-1 ...      0
//   ________|____________________________|____________________
//   s        eeeeeeeeeeeeeeeeeeeeeeeeeeee mmmmmmmmmmmmmmmmmmmm
//
// A Format is plain data. Use NewFormat or Validate before decoding
// a Format built as a literal.
type Format struct {
	ExpBits int
	SigBits int
}

// Fields holds the raw fields of a bit pattern.
type Fields struct {
	Sign uint
	Exp  uint64
	Sig  *big.Int
}

var (
	// Binary16 is IEEE-754 half precision.
	Binary16 = Format{ExpBits: 5, SigBits: 10}
	// BFloat16 is the brain floating-point format.
	BFloat16 = Format{ExpBits: 8, SigBits: 7}
	// Binary32 is IEEE-754 single precision.
	Binary32 = Format{ExpBits: 8, SigBits: 23}
	// Binary64 is IEEE-754 double precision.
	Binary64 = Format{ExpBits: 11, SigBits: 52}
	// Binary128 is IEEE-754 quadruple precision.
	Binary128 = Format{ExpBits: 15, SigBits: 112}
	// Binary256 is IEEE-754 octuple precision.
	Binary256 = Format{ExpBits: 19, SigBits: 236}
	// E4M3 is an 8-bit minifloat with 4 exponent and 3 significand bits.
	// Unlike the OCP FP8 variant, the all-ones exponent is reserved for Inf and NaN.
	E4M3 = Format{ExpBits: 4, SigBits: 3}
	// E5M2 is an 8-bit minifloat with 5 exponent and 2 significand bits.
	E5M2 = Format{ExpBits: 5, SigBits: 2}

	presets = map[string]Format{
		"binary16":  Binary16,
		"half":      Binary16,
		"bfloat16":  BFloat16,
		"binary32":  Binary32,
		"single":    Binary32,
		"binary64":  Binary64,
		"double":    Binary64,
		"binary128": Binary128,
		"quad":      Binary128,
		"binary256": Binary256,
		"e4m3":      E4M3,
		"e5m2":      E5M2,
	}
)

// NewFormat returns a validated format.
func NewFormat(expBits, sigBits int) (Format, error) {
	f := Format{ExpBits: expBits, SigBits: sigBits}
	if err := f.Validate(); err != nil {
		return Format{}, err
	}
	return f, nil
}

// MustFormat is like NewFormat, but panics on error.
func MustFormat(expBits, sigBits int) Format {
	f, err := NewFormat(expBits, sigBits)
	if err != nil {
		panic(err)
	}
	return f
}

// FormatByName returns a preset format. Names are case-insensitive.
func FormatByName(name string) (Format, bool) {
	f, ok := presets[strings.ToLower(name)]
	return f, ok
}

// FormatNames returns the names of all presets in sorted order.
func FormatNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks that both widths are in the supported range.
func (f Format) Validate() error {
	if f.ExpBits < 1 || f.ExpBits > MaxExpBits {
		return fmt.Errorf("%w: exponent width %d not in [1, %d]", ErrInvalidParameter, f.ExpBits, MaxExpBits)
	}
	if f.SigBits < 1 || f.SigBits > MaxSigBits {
		return fmt.Errorf("%w: significand width %d not in [1, %d]", ErrInvalidParameter, f.SigBits, MaxSigBits)
	}
	return nil
}

// Width returns the total number of bits, including the sign.
func (f Format) Width() int {
	return 1 + f.ExpBits + f.SigBits
}

// Precision returns the number of significant bits of a normal number.
func (f Format) Precision() int {
	return f.SigBits + 1
}

// Bias returns 2^(ExpBits-1) - 1.
func (f Format) Bias() int64 {
	return 1<<(f.ExpBits-1) - 1
}

// MaxExp returns the unbiased exponent of the largest finite numbers.
func (f Format) MaxExp() int64 {
	return f.Bias()
}

// MinExp returns the unbiased exponent of the smallest normal numbers,
// which is also the exponent used for subnormals.
func (f Format) MinExp() int64 {
	return 1 - f.Bias()
}

func (f Format) expMask() uint64 {
	return 1<<uint(f.ExpBits) - 1
}

// Split extracts the sign, biased exponent and significand of bits.
// Bits above Width() are ignored. f must be valid.
func (f Format) Split(bits *big.Int) Fields {
	if bits == nil {
		bits = new(big.Int)
	}
	sig := uint(f.SigBits)
	exp := uint(f.ExpBits)
	return Fields{
		Sign: uint(mu.Field(bits, sig+exp, 1).Uint64()),
		Exp:  mu.Field(bits, sig, exp).Uint64(),
		Sig:  mu.Field(bits, 0, sig),
	}
}

// String returns a description like "e8m23".
func (f Format) String() string {
	return fmt.Sprintf("e%dm%d", f.ExpBits, f.SigBits)
}
