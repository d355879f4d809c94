// Copyright 2020 Aleksandr Demakin. All rights reserved.

package mathutil

import (
	"math/big"
	"math/bits"
	"unsafe"
)

var (
	bigOne  = big.NewInt(1)
	bigFive = big.NewInt(5)

	// small powers of 5 are used for every binary64 and narrower decode,
	// so they are computed once.
	pow5Table = func() (table [28]*big.Int) {
		p := big.NewInt(1)
		for i := range table {
			table[i] = new(big.Int).Set(p)
			p.Mul(p, bigFive)
		}
		return table
	}()
)

// BinaryDigits returns the number of significant bits in 'value'.
func BinaryDigits(value uint64) int {
	return int(8*unsafe.Sizeof(uint64(0))) - bits.LeadingZeros64(value)
}

// CeilDiv returns ceil(a/b) for a >= 0, b > 0.
func CeilDiv(a, b int) int {
	return (a + b - 1) / b
}

// Mask returns 2^width - 1.
func Mask(width uint) *big.Int {
	m := new(big.Int).Lsh(bigOne, width)
	return m.Sub(m, bigOne)
}

// Field returns 'width' bits of x starting at bit 'lo'.
// Negative x is treated as an infinite two's complement number.
func Field(x *big.Int, lo, width uint) *big.Int {
	f := new(big.Int).Rsh(x, lo)
	return f.And(f, Mask(width))
}

// Pow5 returns 5^n.
func Pow5(n uint) *big.Int {
	if n < uint(len(pow5Table)) {
		return new(big.Int).Set(pow5Table[n])
	}
	return new(big.Int).Exp(bigFive, new(big.Int).SetUint64(uint64(n)), nil)
}

// FloatPow10 returns 10^n rounded to prec bits.
func FloatPow10(n uint64, prec uint) *big.Float {
	result := new(big.Float).SetPrec(prec).SetInt64(1)
	base := new(big.Float).SetPrec(prec).SetInt64(10)
	for {
		if n&1 == 1 {
			result.Mul(result, base)
		}
		if n >>= 1; n == 0 {
			return result
		}
		base.Mul(base, base)
	}
}

// TrimMantExp removes trailing zero bits from m, moving them into the binary exponent,
// so that m*2^e stays the same. Zero is returned as (0, 0).
func TrimMantExp(m *big.Int, e int64) (*big.Int, int64) {
	if m.Sign() == 0 {
		return new(big.Int), 0
	}
	tz := m.TrailingZeroBits()
	return new(big.Int).Rsh(m, tz), e + int64(tz)
}

// Int64Sign returns -1, 0, or 1 depending on the sign of v.
func Int64Sign(v int64) int {
	if v == 0 {
		return 0
	}
	return [...]int{1, -1}[uint64(v)>>63]
}
