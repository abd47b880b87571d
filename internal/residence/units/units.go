// Package units formats lengths, areas and money the way the residence
// pages print them, with en-US digit grouping.
package units

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func printer() *message.Printer {
	return message.NewPrinter(language.AmericanEnglish)
}

// Number prints whole values without decimals and everything else with two.
func Number(v float64) string {
	p := printer()
	if v == math.Trunc(v) {
		return p.Sprintf("%d", int64(v))
	}
	return p.Sprintf("%.2f", v)
}

func Feet(v float64) string {
	return Number(v) + " ft"
}

func SquareFeet(v float64) string {
	return Number(v) + " sq ft"
}

// Money prints a dollar amount with cents, e.g. $1,472.74.
func Money(v float64) string {
	return printer().Sprintf("$%.2f", v)
}

// Cents converts a dollar amount to integer cents for exact sums.
func Cents(v float64) int64 {
	return int64(math.Round(v * 100))
}

// ItemLetter names the i-th invoice item: A, B, ... Z, AA, AB, ...
func ItemLetter(i int) string {
	s := ""
	for i >= 0 {
		s = string(rune('A'+i%26)) + s
		i = i/26 - 1
	}
	return s
}
