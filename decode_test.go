// Copyright 2020 Aleksandr Demakin. All rights reserved.

package genfloat

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		bits     uint64
		exp, sig int
		f        float64
		class    Class
		neg      bool
	}{
		{0x3F800000, 8, 23, 1, ClassNormal, false},
		{0xC0000000, 8, 23, -2, ClassNormal, true},
		{0x3FC00000, 8, 23, 1.5, ClassNormal, false},
		{0x7F7FFFFF, 8, 23, math.MaxFloat32, ClassNormal, false},
		{0x00000001, 8, 23, math.SmallestNonzeroFloat32, ClassSubnormal, false},
		{0x00800000, 8, 23, math.Ldexp(1, -126), ClassNormal, false},
		{0x007FFFFF, 8, 23, math.Ldexp(1<<23-1, -149), ClassSubnormal, false},
		{0x00000000, 8, 23, 0, ClassZero, false},
		{0x80000000, 8, 23, math.Copysign(0, -1), ClassZero, true},
		{0x7F800000, 8, 23, math.Inf(1), ClassInf, false},
		{0xFF800000, 8, 23, math.Inf(-1), ClassInf, true},

		{0x3C00, 5, 10, 1, ClassNormal, false},
		{0x0001, 5, 10, 5.960464477539063e-08, ClassSubnormal, false},
		{0x7BFF, 5, 10, 65504, ClassNormal, false},
		{0xFC00, 5, 10, math.Inf(-1), ClassInf, true},

		{0x3F80, 8, 7, 1, ClassNormal, false},
		{0x38, 4, 3, 1, ClassNormal, false},
		{0x77, 4, 3, 240, ClassNormal, false},
		{0x3C, 5, 2, 1, ClassNormal, false},

		// 19 bit custom format.
		{0x1FC00, 8, 10, 1, ClassNormal, false},
		{0x5FC00, 8, 10, -1, ClassNormal, true},
		{0x1FC01, 8, 10, 1 + 1.0/1024, ClassNormal, false},

		// one exponent bit: bias is zero and there are no normal numbers.
		{0b0001, 1, 2, 0.5, ClassSubnormal, false},
		{0b0011, 1, 2, 1.5, ClassSubnormal, false},
		{0b1010, 1, 2, -1, ClassSubnormal, true},
		{0b0100, 1, 2, math.Inf(1), ClassInf, false},
		{0b1100, 1, 2, math.Inf(-1), ClassInf, true},

		// the significand is shorter than the exponent, the mantissa is shifted left.
		{0x7FEF, 11, 4, math.Ldexp(31, 1019), ClassNormal, false},
		{0x4010, 11, 4, 4, ClassNormal, false},

		// bits above the format's width are ignored.
		{0xFF3C00, 5, 10, 1, ClassNormal, false},
		{0xFFFFFFFF3F800000, 8, 23, 1, ClassNormal, false},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			v, err := DecodeUint64(test.bits, test.exp, test.sig)
			if !a.NoError(err) {
				return
			}
			got := v.Float64()
			a.Equal(math.Float64bits(test.f), math.Float64bits(got), "%v != %v", test.f, got)
			a.Equal(test.class, v.Class())
			a.Equal(test.neg, v.Signbit())
		})
	}
}

func TestDecodeNaN(t *testing.T) {
	a := assert.New(t)
	formats := []Format{Binary16, BFloat16, Binary32, Binary64, E4M3, E5M2, {ExpBits: 1, SigBits: 1}, {ExpBits: 3, SigBits: 17}}
	for i, f := range formats {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			for _, sign := range []uint{0, 1} {
				for _, sig := range []*big.Int{big.NewInt(1), mustMask(f.SigBits)} {
					bits := pattern(f, sign, f.expMask(), sig)
					v, err := f.Decode(bits)
					require.NoError(t, err)
					a.True(v.IsNaN(), "%s: %x", f, bits)
					a.Equal(NaN, v.Kind())
					a.Equal(sign == 1, v.Signbit())
					a.True(math.IsNaN(v.Float64()))
					a.Equal(sign == 1, math.Signbit(v.Float64()))
					a.Equal(0, v.Sign())
				}
			}
		})
	}
	v := MustDecode(0xFF800001, 8, 23)
	a.True(v.IsNaN())
	a.True(v.Signbit())
}

func TestDecodeInfAndZero(t *testing.T) {
	a := assert.New(t)
	formats := []Format{Binary16, Binary32, Binary64, Binary128, Binary256, E4M3, {ExpBits: 1, SigBits: 1}, {ExpBits: 31, SigBits: 3}}
	for i, f := range formats {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			pinf, err := f.Decode(pattern(f, 0, f.expMask(), new(big.Int)))
			require.NoError(t, err)
			a.True(pinf.IsInf(1))
			a.False(pinf.IsInf(-1))
			a.Equal(1, pinf.Sign())
			a.True(math.IsInf(pinf.Float64(), 1))

			ninf, err := f.Decode(pattern(f, 1, f.expMask(), new(big.Int)))
			require.NoError(t, err)
			a.True(ninf.IsInf(-1))
			a.True(ninf.IsInf(0))
			a.Equal(-1, ninf.Sign())
			a.True(math.IsInf(ninf.Float64(), -1))

			zero, err := f.Decode(new(big.Int))
			require.NoError(t, err)
			a.True(zero.IsZero())
			a.False(zero.Signbit())
			a.Equal(uint64(0), math.Float64bits(zero.Float64()))

			negZero, err := f.Decode(pattern(f, 1, 0, new(big.Int)))
			require.NoError(t, err)
			a.True(negZero.IsZero())
			a.True(negZero.Signbit())
			a.True(math.Signbit(negZero.Float64()))
			a.Equal(0.0, negZero.Float64())
		})
	}
}

func TestDecodeBinary64(t *testing.T) {
	patterns := []uint64{
		0, 1, 0x000FFFFFFFFFFFFF, 0x0010000000000000, 0x3FF0000000000000,
		0x7FEFFFFFFFFFFFFF, 0x7FF0000000000000, 0xFFF0000000000000,
		math.Float64bits(math.Pi), math.Float64bits(-1e-310), math.Float64bits(0.1),
	}
	rnd := rand.New(rand.NewSource(42))
	for i := 0; i < 2000; i++ {
		patterns = append(patterns, rnd.Uint64())
	}
	for _, p := range patterns {
		want := math.Float64frombits(p)
		if math.IsNaN(want) {
			continue
		}
		v := MustDecode(p, 11, 52)
		if got := math.Float64bits(v.Float64()); got != p {
			t.Fatalf("decoding %#x: got %#x (%v), want %v", p, got, v, want)
		}
	}
}

func TestDecodeBinary32(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	for i := 0; i < 2000; i++ {
		p := rnd.Uint32()
		want := math.Float32frombits(p)
		v, err := DecodeUint(p, Binary32)
		require.NoError(t, err)
		if math.IsNaN(float64(want)) {
			assert.True(t, v.IsNaN())
			assert.Equal(t, p>>31 == 1, v.Signbit())
			continue
		}
		if got := math.Float32bits(v.Float32()); got != p {
			t.Fatalf("decoding %#x: got %#x (%v), want %v", p, got, v, want)
		}
		if got := v.Float64(); got != float64(want) {
			t.Fatalf("decoding %#x: got %v, want %v", p, got, want)
		}
	}
}

func TestDecodeWide(t *testing.T) {
	a := assert.New(t)
	one := new(big.Int).Lsh(big.NewInt(0x3FFF), 112)
	v, err := Binary128.Decode(one)
	require.NoError(t, err)
	a.Equal(1.0, v.Float64())
	a.Equal("1", v.String())

	tiny, err := Decode(big.NewInt(1), 15, 112)
	require.NoError(t, err)
	a.Equal(ClassSubnormal, tiny.Class())
	a.Equal(int64(1), tiny.Mant().Int64())
	a.Equal(int64(-16494), tiny.Exp())
	a.Equal(0.0, tiny.Float64())
	r, err := tiny.Rat()
	require.NoError(t, err)
	a.Equal(0, r.Cmp(new(big.Rat).SetFrac(big.NewInt(1), new(big.Int).Lsh(big.NewInt(1), 16494))))

	// largest binary128 number overflows float64.
	maxQuad := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(0x7FFF), 112), big.NewInt(1))
	huge, err := Binary128.Decode(maxQuad)
	require.NoError(t, err)
	a.Equal(ClassNormal, huge.Class())
	a.True(math.IsInf(huge.Float64(), 1))
	a.Equal(1, huge.Cmp(MustDecode(0x7FEFFFFFFFFFFFFF, 11, 52)))

	// a nil pattern is zero.
	z, err := Binary64.Decode(nil)
	require.NoError(t, err)
	a.True(z.IsZero())

	// negative patterns are masked as two's complement numbers.
	neg, err := Decode(big.NewInt(-1), 5, 10)
	require.NoError(t, err)
	a.True(neg.IsNaN())
	a.True(neg.Signbit())
}

func TestDecodeUint(t *testing.T) {
	a := assert.New(t)
	v, err := DecodeUint(uint16(0x3C00), Binary16)
	a.NoError(err)
	a.Equal(1.0, v.Float64())
	v, err = DecodeUint(uint8(0x38), E4M3)
	a.NoError(err)
	a.Equal(1.0, v.Float64())
	v, err = DecodeUint(uint(0x3F80), BFloat16)
	a.NoError(err)
	a.Equal(1.0, v.Float64())
	_, err = DecodeUint(uint8(0), Format{})
	a.True(errors.Is(err, ErrInvalidParameter))
}

func TestDecodeInvalid(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		exp, sig int
	}{
		{0, 23},
		{8, 0},
		{-1, -1},
		{MaxExpBits + 1, 10},
		{5, MaxSigBits + 1},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			_, err := DecodeUint64(0x3C00, test.exp, test.sig)
			a.True(errors.Is(err, ErrInvalidParameter), "%v", err)
			_, err = Decode(big.NewInt(0x3C00), test.exp, test.sig)
			a.True(errors.Is(err, ErrInvalidParameter), "%v", err)
		})
	}
	a.Panics(func() {
		MustDecode(0, 0, 10)
	})
}

func TestDecodeMonotonic(t *testing.T) {
	formats := []Format{Binary16, E4M3, E5M2, {ExpBits: 1, SigBits: 3}, {ExpBits: 2, SigBits: 1}, {ExpBits: 6, SigBits: 6}}
	for i, f := range formats {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			// all positive non-special patterns are below the +Inf pattern.
			inf := f.expMask() << uint(f.SigBits)
			prev := MustDecode(0, f.ExpBits, f.SigBits)
			for p := uint64(1); p <= inf; p++ {
				v := MustDecode(p, f.ExpBits, f.SigBits)
				if prev.Cmp(v) >= 0 {
					t.Fatalf("%s: %v (%#x) is not less than %v (%#x)", f, prev, p-1, v, p)
				}
				prev = v
			}
		})
	}
}

func TestDecodeIdempotent(t *testing.T) {
	a := assert.New(t)
	rnd := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		p := rnd.Uint64() & (1<<19 - 1)
		v1 := MustDecode(p, 8, 10)
		v2 := MustDecode(p, 8, 10)
		a.True(v1.Identical(v2), "%#x", p)
		a.Equal(v1.String(), v2.String())
		a.Equal(math.Float64bits(v1.Float64()), math.Float64bits(v2.Float64()))
	}
}

func TestDecodeConcurrent(t *testing.T) {
	done := make(chan float64)
	for i := 0; i < 8; i++ {
		go func() {
			var sum float64
			for j := 0; j < 1000; j++ {
				sum += MustDecode(0x3C00, 5, 10).Float64()
			}
			done <- sum
		}()
	}
	for i := 0; i < 8; i++ {
		assert.Equal(t, 1000.0, <-done)
	}
}

func pattern(f Format, sign uint, exp uint64, sig *big.Int) *big.Int {
	p := new(big.Int).SetUint64(uint64(sign))
	p.Lsh(p, uint(f.ExpBits))
	p.Or(p, new(big.Int).SetUint64(exp))
	p.Lsh(p, uint(f.SigBits))
	return p.Or(p, sig)
}

func mustMask(width int) *big.Int {
	m := new(big.Int).Lsh(big.NewInt(1), uint(width))
	return m.Sub(m, big.NewInt(1))
}

func BenchmarkDecodeBinary64(b *testing.B) {
	bits := new(big.Int).SetUint64(math.Float64bits(math.Pi))
	for i := 0; i < b.N; i++ {
		v, _ := Binary64.Decode(bits)
		v.Float64()
	}
}

func BenchmarkFloat64frombits(b *testing.B) {
	bits := math.Float64bits(math.Pi)
	var sum float64
	for i := 0; i < b.N; i++ {
		sum += math.Float64frombits(bits)
	}
	// this metric is just to prevent unwanted optimisations in calculations of `sum.`
	b.ReportMetric(sum, "dummy_metric")
}
