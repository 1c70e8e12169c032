package fixedpoint_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tirasundara/payments-engine/internal/fixedpoint"
)

type money = fixedpoint.Fixed[fixedpoint.Bits128Scale4]
type small = fixedpoint.Fixed[fixedpoint.Bits64Scale4]

func TestParse_RoundTrip(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "large positive", input: "792281625142643375935.0335", want: "792281625142643375935.0335"},
		{name: "large negative", input: "-792281625142643375935.0335", want: "-792281625142643375935.0335"},
		{name: "small negative", input: "-0.23", want: "-0.2300"},
		{name: "integer", input: "12", want: "12.0000"},
		{name: "trailing separator", input: "1.", want: "1.0000"},
		{name: "leading separator", input: ".5", want: "0.5000"},
		{name: "explicit plus", input: "+3.1", want: "3.1000"},
		{name: "zero", input: "0", want: "0.0000"},
		{name: "negative zero", input: "-0.0", want: "0.0000"},
		{name: "full scale", input: "1.0001", want: "1.0001"},
		{name: "35 digits", input: "11111111111111111111111111111111111.0001", want: "11111111111111111111111111111111111.0001"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := fixedpoint.Parse[fixedpoint.Bits128Scale4](tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.String())

			again, err := fixedpoint.Parse[fixedpoint.Bits128Scale4](got.String())
			require.NoError(t, err)
			assert.True(t, got.Equal(again))
		})
	}
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "two separators", input: "1.2.3", wantErr: fixedpoint.ErrInvalidFormat},
		{name: "too many fraction digits", input: "0.00001", wantErr: fixedpoint.ErrPrecisionExceeded},
		{name: "letters", input: "12a.5", wantErr: fixedpoint.ErrInvalidNumber},
		{name: "empty", input: "", wantErr: fixedpoint.ErrInvalidNumber},
		{name: "lone separator", input: ".", wantErr: fixedpoint.ErrInvalidNumber},
		{name: "double sign", input: "--1", wantErr: fixedpoint.ErrInvalidNumber},
		{name: "sign in fraction", input: "1.-5", wantErr: fixedpoint.ErrInvalidNumber},
		{name: "inner whitespace", input: "1 000", wantErr: fixedpoint.ErrInvalidNumber},
		{name: "exponent", input: "1e5", wantErr: fixedpoint.ErrInvalidNumber},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := fixedpoint.Parse[fixedpoint.Bits128Scale4](tc.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestParse_PrecisionExceededDetails(t *testing.T) {
	_, err := fixedpoint.Parse[fixedpoint.Bits128Scale4]("1.123456")

	var precisionErr *fixedpoint.PrecisionExceededError
	require.ErrorAs(t, err, &precisionErr)
	assert.Equal(t, 4, precisionErr.Precision)
	assert.Equal(t, 6, precisionErr.Requested)
}

func TestParse_OutOfRange(t *testing.T) {
	upper := fixedpoint.MaxValue[fixedpoint.Bits64Scale4]()
	assert.Equal(t, "922337203685477.5807", upper.String())

	_, err := fixedpoint.Parse[fixedpoint.Bits64Scale4]("922337203685477.5807")
	require.NoError(t, err)

	_, err = fixedpoint.Parse[fixedpoint.Bits64Scale4]("922337203685477.5808")
	assert.ErrorIs(t, err, fixedpoint.ErrInvalidNumber)
	assert.ErrorIs(t, err, fixedpoint.ErrOverflow)

	_, err = fixedpoint.Parse[fixedpoint.Bits64Scale4]("-922337203685477.5808")
	require.NoError(t, err)

	_, err = fixedpoint.Parse[fixedpoint.Bits128Scale4]("17014118346046923173168730371588410.5728")
	assert.ErrorIs(t, err, fixedpoint.ErrOverflow)
}

func TestFixed_Arithmetic(t *testing.T) {
	a := fixedpoint.MustParse[fixedpoint.Bits128Scale4]("1.5")
	b := fixedpoint.MustParse[fixedpoint.Bits128Scale4]("2.25")

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, "3.7500", sum.String())

	diff, err := a.Sub(b)
	require.NoError(t, err)
	assert.Equal(t, "-0.7500", diff.String())
	assert.True(t, diff.IsNegative())

	neg, err := b.Neg()
	require.NoError(t, err)
	assert.Equal(t, "-2.2500", neg.String())

	assert.Equal(t, -1, a.Cmp(b))
	assert.True(t, a.LessThan(b))
	assert.True(t, a.LessThanOrEqual(a))
	assert.True(t, b.GreaterThan(a))
	assert.False(t, a.IsZero())
}

func TestFixed_RepeatedAddSubIsExact(t *testing.T) {
	start := fixedpoint.MustParse[fixedpoint.Bits128Scale4]("0.1")
	step := fixedpoint.MustParse[fixedpoint.Bits128Scale4]("0.0003")

	v := start
	var err error
	for i := 0; i < 1000; i++ {
		v, err = v.Add(step)
		require.NoError(t, err)
	}
	for i := 0; i < 1000; i++ {
		v, err = v.Sub(step)
		require.NoError(t, err)
	}

	assert.True(t, v.Equal(start))
	assert.Equal(t, "0.1000", v.String())
}

func TestFixed_Overflow(t *testing.T) {
	upper := fixedpoint.MaxValue[fixedpoint.Bits64Scale4]()
	lower := fixedpoint.MinValue[fixedpoint.Bits64Scale4]()
	unit := fixedpoint.MustParse[fixedpoint.Bits64Scale4]("0.0001")

	_, err := upper.Add(unit)
	assert.ErrorIs(t, err, fixedpoint.ErrOverflow)

	_, err = lower.Sub(unit)
	assert.ErrorIs(t, err, fixedpoint.ErrOverflow)

	_, err = lower.Neg()
	assert.ErrorIs(t, err, fixedpoint.ErrOverflow)

	assert.True(t, upper.SaturatingAdd(unit).Equal(upper))
	assert.True(t, lower.SaturatingSub(unit).Equal(lower))

	below, err := upper.Sub(unit)
	require.NoError(t, err)
	assert.True(t, below.SaturatingAdd(unit).Equal(upper))
}

func TestFixed_ZeroValue(t *testing.T) {
	var z money
	assert.True(t, z.IsZero())
	assert.Equal(t, "0.0000", z.String())
	assert.True(t, z.Equal(fixedpoint.Zero[fixedpoint.Bits128Scale4]()))

	one := fixedpoint.MustParse[fixedpoint.Bits128Scale4]("1")
	sum, err := z.Add(one)
	require.NoError(t, err)
	assert.Equal(t, "1.0000", sum.String())
}

func TestFixed_Text(t *testing.T) {
	type payload struct {
		Amount small `json:"amount"`
	}

	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"amount":"-12.5"}`), &p))
	assert.Equal(t, "-12.5000", p.Amount.String())

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"-12.5000"}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"amount":"1.23456"}`), &p))
}

func TestFixed_Decimal(t *testing.T) {
	v := fixedpoint.MustParse[fixedpoint.Bits128Scale4]("42.42")
	assert.Equal(t, "42.42", v.Decimal().String())
}
