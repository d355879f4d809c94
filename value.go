// Copyright 2020 Aleksandr Demakin. All rights reserved.

package genfloat

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	mu "github.com/avdva/genfloat/internal/mathutil"
)

var (
	// JSONMode defines the way all values are marshaled into json, see JSONMode* constants.
	// This variable is not thread-safe, so this should be changed on program start.
	JSONMode = JSONModeString
)

const (
	// JSONModeString produces values as strings, like `"1.5"`.
	JSONModeString = iota
	// JSONModeFloat marshals finite values as numbers, like `1.5`.
	// Infinities and NaNs are still strings, as json has no literals for them.
	JSONModeFloat
	// JSONModeExact produces the full decimal expansion as a string, like `"0.000000059604644775390625"`.
	JSONModeExact
	// JSONModeFields marshals raw fields of the pattern, like `{"s":0,"e":15,"m":0}`.
	JSONModeFields
)

// hugeExp bounds the binary exponents of values that Text formats directly
// with big.Float, which expands all the decimal digits of a number.
// Larger values are scaled by a power of ten first.
const hugeExp = 1 << 16

// MaxExactExp limits the binary exponent of values for which Rat and Decimal
// compute an exact result.
const MaxExactExp = 1 << 24

// Kind discriminates decoded values.
type Kind uint8

const (
	// Finite is a zero, a subnormal or a normal number.
	Finite Kind = iota
	// Infinite is a positive or a negative infinity.
	Infinite
	// NaN is a not-a-number. It still has a sign.
	NaN
)

var kindNames = [...]string{"finite", "infinite", "nan"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Class is a detailed classification of a decoded value.
type Class uint8

const (
	ClassZero Class = iota
	ClassSubnormal
	ClassNormal
	ClassInf
	ClassNaN
)

var classNames = [...]string{"zero", "subnormal", "normal", "inf", "nan"}

func (c Class) String() string {
	if int(c) < len(classNames) {
		return classNames[c]
	}
	return "Class(" + strconv.Itoa(int(c)) + ")"
}

// Value is a decoded floating-point number.
// Finite values are stored exactly as mant*2^exp, where mant is either zero or odd.
// The zero Value is +0 of an unspecified format.
type Value struct {
	layout Format
	kind   Kind
	class  Class
	neg    bool
	mant   *big.Int
	exp    int64
	fields Fields
}

// Kind returns the kind of v.
func (v Value) Kind() Kind {
	return v.kind
}

// Class returns the class of v.
func (v Value) Class() Class {
	return v.class
}

// Layout returns the format v was decoded from.
func (v Value) Layout() Format {
	return v.layout
}

// Fields returns the raw fields v was decoded from.
func (v Value) Fields() Fields {
	f := v.fields
	f.Sig = new(big.Int)
	if v.fields.Sig != nil {
		f.Sig.Set(v.fields.Sig)
	}
	return f
}

// Mant returns v's odd (or zero) mantissa, so that abs(v) = Mant * 2^Exp.
// Returns nil for infinities and NaNs.
func (v Value) Mant() *big.Int {
	if v.kind != Finite {
		return nil
	}
	return new(big.Int).Set(v.mantissa())
}

// Exp returns v's binary exponent, see Mant.
func (v Value) Exp() int64 {
	return v.exp
}

func (v Value) mantissa() *big.Int {
	if v.mant == nil {
		return new(big.Int)
	}
	return v.mant
}

// IsNaN reports whether v is a not-a-number.
func (v Value) IsNaN() bool {
	return v.kind == NaN
}

// IsInf reports whether v is an infinity, according to sign.
// If sign > 0, IsInf reports whether v is positive infinity.
// If sign < 0, IsInf reports whether v is negative infinity.
// If sign == 0, IsInf reports whether v is either infinity.
func (v Value) IsInf(sign int) bool {
	if v.kind != Infinite {
		return false
	}
	return sign == 0 || sign > 0 && !v.neg || sign < 0 && v.neg
}

// IsZero reports whether v is a positive or a negative zero.
func (v Value) IsZero() bool {
	return v.kind == Finite && v.mantissa().Sign() == 0
}

// Signbit reports whether the sign bit of v was set. It is meaningful for zeros and NaNs too.
func (v Value) Signbit() bool {
	return v.neg
}

// Sign returns -1 if v < 0, 0 if v is zero or NaN, 1 if v > 0.
func (v Value) Sign() int {
	if v.kind == NaN || v.IsZero() {
		return 0
	}
	if v.neg {
		return -1
	}
	return 1
}

// BigFloat returns v as a big.Float. NaN is returned as nil, as big.Float can't hold it.
// The result is exact unless the exponent exceeds the big.Float range,
// in which case it is rounded to a signed zero or infinity.
func (v Value) BigFloat() *big.Float {
	switch v.kind {
	case Infinite:
		return new(big.Float).SetInf(v.neg)
	case NaN:
		return nil
	}
	return v.bigFloat(0)
}

// bigFloat returns a finite v with given precision.
// Zero precision means the smallest precision that holds v exactly.
func (v Value) bigFloat(prec uint) *big.Float {
	m := v.mantissa()
	if prec == 0 {
		prec = uint(m.BitLen())
		if prec == 0 {
			prec = 1
		}
	}
	x := new(big.Float).SetPrec(prec).SetInt(m)
	x.SetMantExp(x, int(v.exp))
	if v.neg {
		x.Neg(x)
	}
	return x
}

// Float64 returns the float64 value nearest to v.
// Too large values become infinities, too small become signed zeros.
// NaN keeps its sign bit.
func (v Value) Float64() float64 {
	switch v.kind {
	case Infinite:
		return math.Inf(v.signOne())
	case NaN:
		return math.Copysign(math.NaN(), float64(v.signOne()))
	}
	f, _ := v.bigFloat(0).Float64()
	return f
}

// Float32 returns the float32 value nearest to v.
func (v Value) Float32() float32 {
	switch v.kind {
	case Infinite:
		return float32(math.Inf(v.signOne()))
	case NaN:
		return float32(math.Copysign(math.NaN(), float64(v.signOne())))
	}
	f, _ := v.bigFloat(0).Float32()
	return f
}

func (v Value) signOne() int {
	if v.neg {
		return -1
	}
	return 1
}

func (v Value) checkExact() error {
	if v.kind != Finite {
		return ErrNotFinite
	}
	if v.exp > MaxExactExp || v.exp < -MaxExactExp {
		return fmt.Errorf("%w: binary exponent %d", ErrTooLarge, v.exp)
	}
	return nil
}

// Rat returns the exact value of v as a rational number.
// Returns ErrNotFinite for infinities and NaNs, ErrTooLarge if the exponent exceeds MaxExactExp.
func (v Value) Rat() (*big.Rat, error) {
	if err := v.checkExact(); err != nil {
		return nil, err
	}
	num, denom := new(big.Int).Set(v.mantissa()), big.NewInt(1)
	if v.exp >= 0 {
		num.Lsh(num, uint(v.exp))
	} else {
		denom.Lsh(denom, uint(-v.exp))
	}
	if v.neg {
		num.Neg(num)
	}
	return new(big.Rat).SetFrac(num, denom), nil
}

// Decimal returns the exact value of v as a decimal.
// Every finite binary number has a finite decimal expansion:
//	m * 2^-k = m * 5^k * 10^-k.
// Negative zero becomes zero.
func (v Value) Decimal() (decimal.Decimal, error) {
	if err := v.checkExact(); err != nil {
		return decimal.Zero, err
	}
	var d decimal.Decimal
	if v.exp >= 0 {
		d = decimal.NewFromBigInt(new(big.Int).Lsh(v.mantissa(), uint(v.exp)), 0)
	} else {
		k := uint(-v.exp)
		d = decimal.NewFromBigInt(new(big.Int).Mul(v.mantissa(), mu.Pow5(k)), -int32(k))
	}
	if v.neg {
		d = d.Neg()
	}
	return d, nil
}

// String returns the shortest decimal representation, that identifies v
// among the numbers of its format, like "1.5", "-0", "6.104e-05".
// Infinities are "+Inf" and "-Inf", NaNs are "NaN" and "-NaN".
func (v Value) String() string {
	return v.Text('g', -1)
}

// Text converts v to a string according to the given format and precision,
// see big.Float.Text. Infinities and NaNs are formatted like in String.
// For 'e' and 'g' formats and binary exponents beyond ±2^16, a negative precision gives
// enough digits to identify v, which is not always the shortest such representation.
func (v Value) Text(format byte, prec int) string {
	switch v.kind {
	case Infinite:
		if v.neg {
			return "-Inf"
		}
		return "+Inf"
	case NaN:
		if v.neg {
			return "-NaN"
		}
		return "NaN"
	}
	p := uint(v.layout.Precision())
	if bl := uint(v.mantissa().BitLen()); p < bl {
		p = bl
	}
	x := v.bigFloat(p)
	if e := x.MantExp(nil); x.Sign() != 0 && (e > hugeExp || e < -hugeExp) && strings.IndexByte("eEgG", format) >= 0 {
		return sciText(x, format, prec)
	}
	return x.Text(format, prec)
}

// sciText formats a nonzero x in scientific notation, like big.Float.Text does for 'e' and 'g'.
func sciText(x *big.Float, format byte, prec int) string {
	n := prec + 1
	switch {
	case prec < 0:
		n = int(math.Ceil(float64(x.Prec())*math.Log10(2))) + 1
	case format == 'g' || format == 'G':
		n = prec
		if n == 0 {
			n = 1
		}
	}
	wp := x.Prec() + 4*uint(n) + 64
	y := new(big.Float).SetPrec(wp).Abs(x)
	d := int64(math.Floor(float64(x.MantExp(nil)) * math.Log10(2)))
	if d >= 0 {
		y.Quo(y, mu.FloatPow10(uint64(d), wp))
	} else {
		y.Mul(y, mu.FloatPow10(uint64(-d), wp))
	}
	ten, one := big.NewFloat(10), big.NewFloat(1)
	for y.Cmp(ten) >= 0 {
		y.Quo(y, ten)
		d++
	}
	for y.Cmp(one) < 0 {
		y.Mul(y, ten)
		d--
	}
	s := y.Text('e', n-1)
	// rounding may carry into the next power of ten, like "1.00e+01".
	idx := strings.IndexByte(s, 'e')
	carry, _ := strconv.Atoi(s[idx+1:])
	d += int64(carry)
	digits := s[:idx]
	if (format == 'g' || format == 'G') && strings.IndexByte(digits, '.') >= 0 {
		digits = strings.TrimRight(strings.TrimRight(digits, "0"), ".")
	}
	buf := make([]byte, 0, len(digits)+16)
	if x.Signbit() {
		buf = append(buf, '-')
	}
	buf = append(buf, digits...)
	if format == 'E' || format == 'G' {
		buf = append(buf, 'E')
	} else {
		buf = append(buf, 'e')
	}
	if d < 0 {
		buf = append(buf, '-')
		d = -d
	} else {
		buf = append(buf, '+')
	}
	if d < 10 {
		buf = append(buf, '0')
	}
	return string(strconv.AppendInt(buf, d, 10))
}

// ExactString returns the full decimal expansion of v.
// If v can't be represented exactly, see Decimal, String is used.
func (v Value) ExactString() string {
	d, err := v.Decimal()
	if err != nil {
		return v.String()
	}
	if v.neg && d.IsZero() {
		return "-0"
	}
	return d.String()
}

// rank orders kinds as NaN < -Inf < finite < +Inf.
func (v Value) rank() int {
	switch v.kind {
	case NaN:
		return 0
	case Infinite:
		if v.neg {
			return 1
		}
		return 3
	}
	return 2
}

// Cmp compares two values.
// Returns -1 if a < b, 0 if a == b, 1 if a > b.
// Zeros are equal regardless of the sign. NaNs are equal to each other and less than
// any other value, which makes Cmp a total order suitable for sorting.
func (v Value) Cmp(other Value) int {
	r1, r2 := v.rank(), other.rank()
	if r1 != r2 {
		return mu.Int64Sign(int64(r1 - r2))
	}
	if r1 != 2 {
		return 0
	}
	s1, s2 := v.Sign(), other.Sign()
	if s1 != s2 {
		return mu.Int64Sign(int64(s1 - s2))
	}
	if s1 == 0 {
		return 0
	}
	return cmpAbs(v, other) * s1
}

// cmpAbs compares magnitudes of two nonzero finite values.
func cmpAbs(a, b Value) int {
	m1, m2 := a.mantissa(), b.mantissa()
	top1 := int64(m1.BitLen()) + a.exp
	top2 := int64(m2.BitLen()) + b.exp
	if top1 != top2 {
		return mu.Int64Sign(top1 - top2)
	}
	// the same leading bit position, so exponents differ no more than mantissa lengths.
	if diff := a.exp - b.exp; diff > 0 {
		m1 = new(big.Int).Lsh(m1, uint(diff))
	} else if diff < 0 {
		m2 = new(big.Int).Lsh(m2, uint(-diff))
	}
	return m1.Cmp(m2)
}

// Eq returns true, if both values represent the same number.
// +0 and -0 are equal, NaN is not equal to anything.
func (v Value) Eq(other Value) bool {
	if v.kind == NaN || other.kind == NaN {
		return false
	}
	return v.Cmp(other) == 0
}

// Identical reports whether both values were decoded into the same kind, sign and magnitude.
// Unlike Eq, it distinguishes zero signs and matches NaNs with the same sign.
func (v Value) Identical(other Value) bool {
	if v.kind != other.kind || v.neg != other.neg {
		return false
	}
	if v.kind != Finite {
		return true
	}
	return v.exp == other.exp && v.mantissa().Cmp(other.mantissa()) == 0
}

type jsonFields struct {
	S uint     `json:"s"`
	E uint64   `json:"e"`
	M *big.Int `json:"m"`
}

// MarshalJSON marshals value according to current JSONMode.
// See JSONMode and JSONMode* constants.
func (v Value) MarshalJSON() ([]byte, error) {
	return v.toJSON(JSONMode)
}

func (v Value) toJSON(mode int) ([]byte, error) {
	switch mode {
	case JSONModeFloat:
		if v.kind != Finite {
			return v.toJSON(JSONModeString)
		}
		return []byte(v.String()), nil
	case JSONModeExact:
		return []byte(strconv.Quote(v.ExactString())), nil
	case JSONModeFields:
		f := v.Fields()
		return json.Marshal(jsonFields{S: f.Sign, E: f.Exp, M: f.Sig})
	default:
		return []byte(strconv.Quote(v.String())), nil
	}
}
