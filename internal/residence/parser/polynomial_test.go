package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want float64
	}{
		{name: "single linear term", expr: "7x", want: 14},
		{name: "parenthesised binomial", expr: "(5x + 4)", want: 14},
		{name: "negative constant", expr: "27x² + 15x - 12", want: 126},
		{name: "cubic", expr: "8x³ + 18x² + 17x + 6", want: 176},
		{name: "cubic with negative term", expr: "18x³ + 12x² - 30x", want: 132},
		{name: "bare variable", expr: "x + 1", want: 3},
		{name: "leading minus", expr: "-x + 10", want: 8},
		{name: "caret exponent", expr: "2x^2 + 2x - 1", want: 11},
		{name: "unicode minus", expr: "16x − 2", want: 30},
		{name: "constant only", expr: "250", want: 250},
		{name: "decimal coefficient", expr: "1.5x", want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(tt.expr, 2)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestEvaluateRejectsUnsupportedText(t *testing.T) {
	for _, expr := range []string{"", "()", "2y + 1", "x +", "4²", "2(x + 1)", "7x by 3x"} {
		t.Run(expr, func(t *testing.T) {
			_, err := Evaluate(expr, 2)
			assert.ErrorIs(t, err, ErrInvalidExpression)
		})
	}
}

func TestSplitDimensions(t *testing.T) {
	width, height, err := SplitDimensions("(2x² + 2x - 1) by (3x + 8)")
	require.NoError(t, err)
	assert.Equal(t, "2x² + 2x - 1", width)
	assert.Equal(t, "3x + 8", height)

	width, height, err = SplitDimensions("7x by (5x + 4)")
	require.NoError(t, err)
	assert.Equal(t, "7x", width)
	assert.Equal(t, "5x + 4", height)

	_, _, err = SplitDimensions("14ft x 14ft")
	assert.ErrorIs(t, err, ErrInvalidExpression)
}

func TestDisplay(t *testing.T) {
	assert.Equal(t, "9x - 4", Display(" (9x - 4) "))
	assert.Equal(t, "(a) + (b)", Display("(a) + (b)"))
}
