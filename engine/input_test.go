package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/calc-engine/engine"
)

func TestClassify_TokenTable(t *testing.T) {
	cases := []struct {
		token string
		want  engine.Command
	}{
		{"0", engine.Command{Kind: engine.KindDigit, Digit: '0'}},
		{"7", engine.Command{Kind: engine.KindDigit, Digit: '7'}},
		{".", engine.Command{Kind: engine.KindDot}},
		{"+", engine.Command{Kind: engine.KindOperator, Op: engine.OpAdd}},
		{"-", engine.Command{Kind: engine.KindOperator, Op: engine.OpSub}},
		{"*", engine.Command{Kind: engine.KindOperator, Op: engine.OpMul}},
		{"/", engine.Command{Kind: engine.KindOperator, Op: engine.OpDiv}},
		// Display glyphs normalize to the canonical operators.
		{"×", engine.Command{Kind: engine.KindOperator, Op: engine.OpMul}},
		{"÷", engine.Command{Kind: engine.KindOperator, Op: engine.OpDiv}},
		{"=", engine.Command{Kind: engine.KindEquals}},
		{"Enter", engine.Command{Kind: engine.KindEquals}},
		{"Escape", engine.Command{Kind: engine.KindClear}},
		{"c", engine.Command{Kind: engine.KindClear}},
		{"C", engine.Command{Kind: engine.KindClear}},
		{"Backspace", engine.Command{Kind: engine.KindBackspace}},
	}

	for _, tc := range cases {
		cmd, ok := engine.Classify(tc.token)
		require.True(t, ok, "token %q", tc.token)
		assert.Equal(t, tc.want, cmd, "token %q", tc.token)
	}
}

func TestClassify_UnrecognizedTokensDropped(t *testing.T) {
	for _, token := range []string{"x", "%", "Tab", "10", "", "enter", "**"} {
		_, ok := engine.Classify(token)
		assert.False(t, ok, "token %q should be dropped", token)
	}
}
