package constants

import "strings"

// Borough is one of the five NYC boroughs as written in the output table.
type Borough string

const (
	Queens       Borough = "Queens"
	Brooklyn     Borough = "Brooklyn"
	Bronx        Borough = "Bronx"
	Manhattan    Borough = "Manhattan"
	StatenIsland Borough = "Staten Island"
)

// allBoroughs is the detection priority order; do not reorder.
var allBoroughs = []Borough{
	Queens,
	Brooklyn,
	Bronx,
	Manhattan,
	StatenIsland,
}

// Boroughs returns the boroughs in detection priority order.
func Boroughs() []Borough {
	out := make([]Borough, len(allBoroughs))
	copy(out, allBoroughs)
	return out
}

// Keyword is the lower-cased form searched for in document text.
func (b Borough) Keyword() string {
	return strings.ToLower(string(b))
}

func BoroughStrings() []string {
	result := make([]string, len(allBoroughs))
	for i, b := range allBoroughs {
		result[i] = string(b)
	}
	return result
}
