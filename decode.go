// Copyright 2020 Aleksandr Demakin. All rights reserved.

// Package genfloat decodes binary floating-point bit patterns of arbitrary width.
// A pattern consists of a sign bit, a biased exponent and a significand,
// and the widths of the last two are chosen by the caller, so the same code decodes
// 8-bit minifloats, IEEE-754 half, single, double and quadruple precision,
// or any custom layout like e6m12.
// Decoded values are exact, rounding happens only when converting them to float64 or float32.
package genfloat

import (
	"math/big"

	"golang.org/x/exp/constraints"

	mu "github.com/avdva/genfloat/internal/mathutil"
)

// Decode interprets bits as a floating-point number with expWidth exponent bits
// and sigWidth significand bits. Only the lowest 1+expWidth+sigWidth bits are used.
// Returns ErrInvalidParameter if any of the widths is out of range.
func Decode(bits *big.Int, expWidth, sigWidth int) (Value, error) {
	return Format{ExpBits: expWidth, SigBits: sigWidth}.Decode(bits)
}

// DecodeUint64 is like Decode for patterns that fit a uint64.
func DecodeUint64(bits uint64, expWidth, sigWidth int) (Value, error) {
	return Decode(new(big.Int).SetUint64(bits), expWidth, sigWidth)
}

// DecodeUint decodes bits of any unsigned integer type.
func DecodeUint[T constraints.Unsigned](bits T, f Format) (Value, error) {
	return f.Decode(new(big.Int).SetUint64(uint64(bits)))
}

// MustDecode is like DecodeUint64, but panics on error.
func MustDecode(bits uint64, expWidth, sigWidth int) Value {
	v, err := DecodeUint64(bits, expWidth, sigWidth)
	if err != nil {
		panic(err)
	}
	return v
}

// Decode interprets bits in format f. A nil bits is zero.
func (f Format) Decode(bits *big.Int) (Value, error) {
	if err := f.Validate(); err != nil {
		return Value{}, err
	}
	return f.decode(bits), nil
}

func (f Format) decode(bits *big.Int) Value {
	fields := f.Split(bits)
	v := Value{
		layout: f,
		neg:    fields.Sign == 1,
		fields: fields,
	}
	var (
		mant *big.Int
		exp  int64
	)
	switch fields.Exp {
	case f.expMask():
		if fields.Sig.Sign() == 0 {
			v.kind, v.class = Infinite, ClassInf
		} else {
			v.kind, v.class = NaN, ClassNaN
		}
		return v
	case 0:
		// no implicit bit, the exponent is the one of the smallest normal.
		mant, exp = fields.Sig, f.MinExp()
		if mant.Sign() == 0 {
			v.class = ClassZero
		} else {
			v.class = ClassSubnormal
		}
	default:
		mant = new(big.Int).SetBit(new(big.Int).Set(fields.Sig), f.SigBits, 1)
		exp = int64(fields.Exp) - f.Bias()
		v.class = ClassNormal
	}
	// value = mant / 2^(SigBits-exp) = mant * 2^(exp-SigBits).
	v.mant, v.exp = mu.TrimMantExp(mant, exp-int64(f.SigBits))
	return v
}
