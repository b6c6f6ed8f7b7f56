// Package units converts recipe amounts between kitchen measurement units.
package units

import "strings"

// factors maps a (larger, smaller) unit pair to how many of the smaller unit
// make one of the larger.
var factors = map[[2]string]float64{
	{"gallons", "cups"}:       16,
	{"liters", "milliliters"}: 1000,
	{"kilograms", "grams"}:    1000,
}

// Convert translates amount from fromUnit into toUnit. Unit names are compared
// case-insensitively. Pairs outside the conversion table are treated as 1:1;
// the amount passes through unchanged. Never fails.
func Convert(amount float64, fromUnit, toUnit string) float64 {
	from := strings.ToLower(strings.TrimSpace(fromUnit))
	to := strings.ToLower(strings.TrimSpace(toUnit))

	if from == to {
		return amount
	}
	if factor, ok := factors[[2]string{from, to}]; ok {
		return amount * factor
	}
	if factor, ok := factors[[2]string{to, from}]; ok {
		return amount / factor
	}
	return amount
}
