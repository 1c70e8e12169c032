// Package fixedpoint implements exact signed decimals with a fixed number of
// fractional digits, backed by an integer of bounded bit width.
//
// A Fixed value never wraps: arithmetic that leaves the range of the scheme's
// backing integer returns ErrOverflow instead.
package fixedpoint

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// Scheme fixes the width of the backing integer and the number of fractional digits.
type Scheme interface {
	Bits() uint
	Scale() int32
}

// Bits128Scale4 is a 128-bit signed integer holding value * 10^4.
type Bits128Scale4 struct{}

func (Bits128Scale4) Bits() uint   { return 128 }
func (Bits128Scale4) Scale() int32 { return 4 }

// Bits64Scale4 is a 64-bit signed integer holding value * 10^4.
type Bits64Scale4 struct{}

func (Bits64Scale4) Bits() uint   { return 64 }
func (Bits64Scale4) Scale() int32 { return 4 }

// Fixed is an immutable decimal number of scheme S.
//
// The zero value is 0.
type Fixed[S Scheme] struct {
	d decimal.Decimal // exponent is always -S.Scale()
}

// Zero returns 0 in scheme S.
func Zero[S Scheme]() Fixed[S] {
	var s S
	return Fixed[S]{d: decimal.New(0, -s.Scale())}
}

// MaxValue returns the largest value representable in scheme S.
func MaxValue[S Scheme]() Fixed[S] {
	var s S
	upper, _ := bounds(s.Bits())
	return Fixed[S]{d: decimal.NewFromBigInt(upper, -s.Scale())}
}

// MinValue returns the smallest value representable in scheme S.
func MinValue[S Scheme]() Fixed[S] {
	var s S
	_, lower := bounds(s.Bits())
	return Fixed[S]{d: decimal.NewFromBigInt(lower, -s.Scale())}
}

// Parse reads a plain decimal such as "12", "-0.23" or "1.0001".
//
// The fractional part may carry at most S.Scale() digits; it is right padded
// with zeros. The digits must fit the backing integer of S.
func Parse[S Scheme](text string) (Fixed[S], error) {
	var s S
	scale := int(s.Scale())

	parts := strings.Split(text, ".")
	if len(parts) > 2 {
		return Fixed[S]{}, ErrInvalidFormat
	}

	integer, fraction := parts[0], ""
	if len(parts) == 2 {
		fraction = parts[1]
	}

	if len(fraction) > scale {
		return Fixed[S]{}, &PrecisionExceededError{Precision: scale, Requested: len(fraction)}
	}

	coefficient, ok := parseDigits(integer + fraction)
	if !ok {
		return Fixed[S]{}, &InvalidNumberError{Text: text}
	}
	coefficient.Mul(coefficient, pow10(scale-len(fraction)))

	f, err := fromCoefficient[S](coefficient)
	if err != nil {
		return Fixed[S]{}, &InvalidNumberError{Text: text, Err: err}
	}

	return f, nil
}

// MustParse is like Parse but panics on error. Meant for constants and tests.
func MustParse[S Scheme](text string) Fixed[S] {
	f, err := Parse[S](text)
	if err != nil {
		panic(fmt.Sprintf("fixedpoint: parsing %q: %v", text, err))
	}
	return f
}

// parseDigits accepts an optional sign followed by at least one ASCII digit.
func parseDigits(digits string) (*big.Int, bool) {
	unsigned := strings.TrimLeft(digits, "+-")
	if len(digits)-len(unsigned) > 1 || unsigned == "" {
		return nil, false
	}
	for _, r := range unsigned {
		if r < '0' || r > '9' {
			return nil, false
		}
	}
	return new(big.Int).SetString(digits, 10)
}

func fromCoefficient[S Scheme](coefficient *big.Int) (Fixed[S], error) {
	var s S
	upper, lower := bounds(s.Bits())
	if coefficient.Cmp(upper) > 0 || coefficient.Cmp(lower) < 0 {
		return Fixed[S]{}, ErrOverflow
	}
	return Fixed[S]{d: decimal.NewFromBigInt(coefficient, -s.Scale())}, nil
}

// coefficient returns value * 10^scale as an integer.
func (f Fixed[S]) coefficient() *big.Int {
	var s S
	return f.d.Shift(s.Scale()).BigInt()
}

func bounds(bits uint) (upper, lower *big.Int) {
	one := big.NewInt(1)
	upper = new(big.Int).Lsh(one, bits-1)
	lower = new(big.Int).Neg(upper)
	upper.Sub(upper, one)
	return upper, lower
}

func pow10(n int) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}

// Add returns f + o, or ErrOverflow.
func (f Fixed[S]) Add(o Fixed[S]) (Fixed[S], error) {
	r, err := fromCoefficient[S](new(big.Int).Add(f.coefficient(), o.coefficient()))
	if err != nil {
		return Fixed[S]{}, fmt.Errorf("adding %s to %s: %w", o, f, err)
	}
	return r, nil
}

// Sub returns f - o, or ErrOverflow.
func (f Fixed[S]) Sub(o Fixed[S]) (Fixed[S], error) {
	r, err := fromCoefficient[S](new(big.Int).Sub(f.coefficient(), o.coefficient()))
	if err != nil {
		return Fixed[S]{}, fmt.Errorf("subtracting %s from %s: %w", o, f, err)
	}
	return r, nil
}

// Neg returns -f. It only fails for MinValue.
func (f Fixed[S]) Neg() (Fixed[S], error) {
	r, err := fromCoefficient[S](new(big.Int).Neg(f.coefficient()))
	if err != nil {
		return Fixed[S]{}, fmt.Errorf("negating %s: %w", f, err)
	}
	return r, nil
}

// SaturatingAdd returns f + o clamped to [MinValue, MaxValue].
func (f Fixed[S]) SaturatingAdd(o Fixed[S]) Fixed[S] {
	return saturate[S](new(big.Int).Add(f.coefficient(), o.coefficient()))
}

// SaturatingSub returns f - o clamped to [MinValue, MaxValue].
func (f Fixed[S]) SaturatingSub(o Fixed[S]) Fixed[S] {
	return saturate[S](new(big.Int).Sub(f.coefficient(), o.coefficient()))
}

func saturate[S Scheme](coefficient *big.Int) Fixed[S] {
	var s S
	upper, lower := bounds(s.Bits())
	switch {
	case coefficient.Cmp(upper) > 0:
		coefficient = upper
	case coefficient.Cmp(lower) < 0:
		coefficient = lower
	}
	return Fixed[S]{d: decimal.NewFromBigInt(coefficient, -s.Scale())}
}

func (f Fixed[S]) Cmp(o Fixed[S]) int              { return f.d.Cmp(o.d) }
func (f Fixed[S]) Equal(o Fixed[S]) bool           { return f.d.Equal(o.d) }
func (f Fixed[S]) LessThan(o Fixed[S]) bool        { return f.d.LessThan(o.d) }
func (f Fixed[S]) LessThanOrEqual(o Fixed[S]) bool { return f.d.LessThanOrEqual(o.d) }
func (f Fixed[S]) GreaterThan(o Fixed[S]) bool     { return f.d.GreaterThan(o.d) }
func (f Fixed[S]) IsZero() bool                    { return f.d.IsZero() }
func (f Fixed[S]) IsNegative() bool                { return f.d.IsNegative() }
func (f Fixed[S]) Decimal() decimal.Decimal        { return f.d }
func (f Fixed[S]) MarshalText() ([]byte, error)    { return []byte(f.String()), nil }

// String renders the value with exactly S.Scale() fractional digits, e.g. "-0.2300".
func (f Fixed[S]) String() string {
	var s S
	return f.d.StringFixed(s.Scale())
}

// UnmarshalText implements encoding.TextUnmarshaler using Parse.
func (f *Fixed[S]) UnmarshalText(text []byte) error {
	parsed, err := Parse[S](string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
