package parser

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ============================================================
// Polynomial Evaluator
// ============================================================

// ErrInvalidExpression is returned for text outside the single-variable
// sum-of-terms form used by the catalog ("8x³ + 18x² + 17x + 6").
var ErrInvalidExpression = errors.New("invalid polynomial expression")

// sign, coefficient, variable, superscript or ^n exponent
var termPattern = regexp.MustCompile(`^([+-]?)(\d+(?:\.\d+)?)?(x)?(?:([²³⁴⁵])|\^(\d+))?$`)

var superscripts = map[string]int{"²": 2, "³": 3, "⁴": 4, "⁵": 5}

// Evaluate computes the value of a pre-written polynomial at x. It accepts
// one pair of enclosing parentheses, as used in dimension text.
func Evaluate(expr string, x float64) (float64, error) {
	body := stripParens(normalize(expr))
	if body == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidExpression)
	}

	var total float64
	for _, term := range splitTerms(body) {
		v, err := evaluateTerm(term, x)
		if err != nil {
			return 0, fmt.Errorf("%w: %q in %q", ErrInvalidExpression, term, expr)
		}
		total += v
	}
	return total, nil
}

// SplitDimensions separates "width by height" dimension text.
func SplitDimensions(dims string) (string, string, error) {
	parts := strings.Split(dims, " by ")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("%w: dimensions %q must read \"<width> by <height>\"", ErrInvalidExpression, dims)
	}
	width := strings.TrimSpace(parts[0])
	height := strings.TrimSpace(parts[1])
	if width == "" || height == "" {
		return "", "", fmt.Errorf("%w: dimensions %q", ErrInvalidExpression, dims)
	}
	return stripParens(width), stripParens(height), nil
}

// Display drops enclosing parentheses and normalises spacing for labels.
func Display(expr string) string {
	return stripParens(strings.TrimSpace(expr))
}

func evaluateTerm(term string, x float64) (float64, error) {
	m := termPattern.FindStringSubmatch(term)
	if m == nil {
		return 0, ErrInvalidExpression
	}

	sign, coef, variable, super, caret := m[1], m[2], m[3], m[4], m[5]
	if coef == "" && variable == "" {
		return 0, ErrInvalidExpression
	}
	if variable == "" && (super != "" || caret != "") {
		return 0, ErrInvalidExpression
	}

	c := 1.0
	if coef != "" {
		v, err := strconv.ParseFloat(coef, 64)
		if err != nil {
			return 0, err
		}
		c = v
	}
	if sign == "-" {
		c = -c
	}

	if variable == "" {
		return c, nil
	}

	exp := 1
	switch {
	case super != "":
		exp = superscripts[super]
	case caret != "":
		n, err := strconv.Atoi(caret)
		if err != nil {
			return 0, err
		}
		exp = n
	}
	return c * math.Pow(x, float64(exp)), nil
}

// splitTerms cuts a space-free expression before every + or - that is not
// the leading sign.
func splitTerms(body string) []string {
	var terms []string
	start := 0
	for i, r := range body {
		if i > start && (r == '+' || r == '-') {
			terms = append(terms, body[start:i])
			start = i
		}
	}
	return append(terms, body[start:])
}

func normalize(expr string) string {
	expr = strings.ReplaceAll(expr, "−", "-")
	return strings.Join(strings.Fields(expr), "")
}

func stripParens(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '(' || s[len(s)-1] != ')' {
		return s
	}
	depth := 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 && i != len(s)-1 {
				// "(a) by (b)" style: outer pair does not enclose everything
				return s
			}
		}
	}
	return strings.TrimSpace(s[1 : len(s)-1])
}
