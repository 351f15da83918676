package fields

import (
	"path/filepath"
	"regexp"
	"strings"
)

var (
	rePlaintiffSegment = regexp.MustCompile(`(?i)^\d+_\d+_(.+?)_v_`)
	reUS               = regexp.MustCompile(`(?i)\bU\s*S\b`)
	reNA               = regexp.MustCompile(`(?i)\bN\s*A\b`)
)

var plaintiffAcronyms = map[string]struct{}{
	"US": {}, "N.A.": {}, "LLC": {}, "LLP": {}, "FSB": {}, "PLC": {}, "PC": {}, "PLLC": {},
}

// PlaintiffFromFilename derives the plaintiff from a court filename such as
// "725949_2022_U_S_BANK_TRUST_NATION_v_SMITH.pdf" -> "US Bank Trust Nation".
func PlaintiffFromFilename(filename string) (string, bool) {
	base := filepath.Base(filename)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	m := rePlaintiffSegment.FindStringSubmatch(stem)
	if m == nil {
		return "", false
	}
	raw := strings.TrimSpace(strings.ReplaceAll(m[1], "_", " "))
	raw = reUS.ReplaceAllString(raw, "US")
	raw = reNA.ReplaceAllString(raw, "N.A.")

	words := strings.Fields(raw)
	for i, w := range words {
		upper := strings.ToUpper(w)
		if _, ok := plaintiffAcronyms[upper]; ok {
			words[i] = upper
			continue
		}
		words[i] = capitalize(w)
	}
	if len(words) == 0 {
		return "", false
	}
	return strings.Join(words, " "), true
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(w string) string {
	r := []rune(strings.ToLower(w))
	if len(r) == 0 {
		return w
	}
	r[0] = []rune(strings.ToUpper(string(r[0])))[0]
	return string(r)
}
