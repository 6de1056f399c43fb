package engine_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/calc-engine/engine"
)

func dec(t *testing.T, s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

// =============================================================================
// DECIMAL CORRECTNESS
// =============================================================================

func TestCompute_ExactDecimalResults(t *testing.T) {
	// The canonical binary-float trap: 0.1 + 0.2 must be 0.3, not
	// 0.30000000000000004.
	cases := []struct {
		a, b string
		op   engine.Operator
		want string
	}{
		{"0.1", "0.2", engine.OpAdd, "0.3"},
		{"0.3", "0.1", engine.OpSub, "0.2"},
		{"0.1", "0.1", engine.OpMul, "0.01"},
		{"1.005", "100", engine.OpMul, "100.5"},
		{"10", "4", engine.OpDiv, "2.5"},
		{"5", "3", engine.OpAdd, "8"},
		{"9", "4", engine.OpSub, "5"},
		{"0", "7", engine.OpDiv, "0"},
		{"-2.5", "2", engine.OpMul, "-5"},
	}

	for _, tc := range cases {
		got, err := engine.Compute(dec(t, tc.a), tc.op, dec(t, tc.b))
		require.NoError(t, err, "%s %s %s", tc.a, tc.op, tc.b)
		assert.Equal(t, tc.want, got.String(), "%s %s %s", tc.a, tc.op, tc.b)
	}
}

func TestCompute_DivisionByZero(t *testing.T) {
	// Every left operand, zero included, yields the explicit outcome.
	for _, a := range []string{"6", "0", "-3.5", "0.0001"} {
		_, err := engine.Compute(dec(t, a), engine.OpDiv, decimal.Zero)
		assert.ErrorIs(t, err, engine.ErrDivisionByZero, "a=%s", a)
	}
}

func TestCompute_UnknownOperator(t *testing.T) {
	_, err := engine.Compute(decimal.Zero, engine.Operator("%"), decimal.Zero)
	assert.ErrorIs(t, err, engine.ErrUnknownOperator)
}

// =============================================================================
// OPERAND PARSING
// =============================================================================

func TestParseOperand(t *testing.T) {
	// A trailing dot is how a half-typed operand looks on screen.
	d, err := engine.ParseOperand("5.")
	require.NoError(t, err)
	assert.Equal(t, "5", d.String())

	d, err = engine.ParseOperand("1.5")
	require.NoError(t, err)
	assert.Equal(t, "1.5", d.String())

	_, err = engine.ParseOperand(engine.DivideByZeroMessage)
	assert.ErrorIs(t, err, engine.ErrUnparseableOperand)

	_, err = engine.ParseOperand("")
	assert.ErrorIs(t, err, engine.ErrUnparseableOperand)
}
