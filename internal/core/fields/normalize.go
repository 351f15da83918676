package fields

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// mis-decoded UTF-8 (read as cp1252) for typographic quotes and dashes
var mojibake = strings.NewReplacer(
	"â€œ", `"`,
	"â€\u009d", `"`,
	"â€™", "'",
	"â€˜", "'",
	"â€“", "-",
	"â€”", "-",
)

var typographic = strings.NewReplacer(
	"“", `"`,
	"”", `"`,
	"‘", "'",
	"’", "'",
	"–", "-",
	"—", "-",
)

// Normalize repairs quote/dash corruption, applies NFKC, and collapses
// whitespace runs to single spaces. Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	if s == "" {
		return s
	}
	// mojibake must be fixed before NFKC folds ™ to "TM"; the second pass
	// catches sequences NFKC composed.
	s = mojibake.Replace(s)
	s = norm.NFKC.String(s)
	s = mojibake.Replace(s)
	s = typographic.Replace(s)
	return strings.Join(strings.Fields(s), " ")
}
