package domain

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperatorApply(t *testing.T) {
	tests := []struct {
		name string
		op   Operator
		a, b float64
		want float64
	}{
		{name: "сложение", op: OpAdd, a: 10, b: 5, want: 15},
		{name: "вычитание", op: OpSub, a: 10, b: 15, want: -5},
		{name: "умножение", op: OpMul, a: 2.5, b: 4, want: 10},
		{name: "деление", op: OpDiv, a: 1, b: 4, want: 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.op.Apply(tt.a, tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOperatorApply_Errors(t *testing.T) {
	_, err := OpDiv.Apply(1, 0)
	assert.ErrorIs(t, err, ErrDivisionByZero)

	_, err = OpNone.Apply(1, 2)
	assert.ErrorIs(t, err, ErrUnknownOperation)
}

func TestParseOperator(t *testing.T) {
	for in, want := range map[string]Operator{
		"+": OpAdd, "add": OpAdd, "-": OpSub, "x": OpMul, "X": OpMul, "×": OpMul, "÷": OpDiv, " div ": OpDiv,
	} {
		got, err := ParseOperator(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseOperator("%")
	assert.ErrorIs(t, err, ErrUnknownOperation)
}

func TestParseKeys(t *testing.T) {
	keys, err := ParseKeys("12.5 x 2 = C")
	require.NoError(t, err)

	want := []Key{DigitKey('1'), DigitKey('2'), KeyDot, DigitKey('5'), OperatorKey(OpMul), DigitKey('2'), KeyEqual, KeyReset}
	assert.Equal(t, want, keys)

	var s string
	for _, k := range keys {
		s += k.String()
	}
	assert.Equal(t, "12.5*2=C", s)
}

func TestParseKeys_UnknownKey(t *testing.T) {
	keys, err := ParseKeys("1+2?")
	assert.ErrorIs(t, err, ErrUnknownKey)
	assert.Nil(t, keys, "при ошибке не возвращается ни одной клавиши")
}

func TestParseKeys_TooLong(t *testing.T) {
	keys, err := ParseKeys(strings.Repeat("1", MaxKeySequence))
	require.NoError(t, err)
	assert.Len(t, keys, MaxKeySequence)

	keys, err = ParseKeys(strings.Repeat("1", MaxKeySequence+1))
	assert.ErrorIs(t, err, ErrTooManyKeys)
	assert.Nil(t, keys)
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{in: 10, want: "10"},
		{in: 1, want: "1"},
		{in: -7, want: "-7"},
		{in: 0.1 + 0.2, want: "0.30000000000000004"},
		{in: 1e21, want: "1000000000000000000000"},
		{in: math.Copysign(0, -1), want: "0"},
		{in: math.Inf(1), want: "Infinity"},
		{in: math.Inf(-1), want: "-Infinity"},
		{in: math.NaN(), want: "NaN"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatNumber(tt.in))
	}
}

func TestParseNumber(t *testing.T) {
	v, ok := ParseNumber("0.")
	assert.True(t, ok)
	assert.Equal(t, 0.0, v)

	v, ok = ParseNumber("Infinity")
	assert.True(t, ok)
	assert.True(t, math.IsInf(v, 1))

	_, ok = ParseNumber(".")
	assert.False(t, ok)

	_, ok = ParseNumber("")
	assert.False(t, ok)
}
