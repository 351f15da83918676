package fields

import (
	"regexp"
	"strings"
)

var (
	reAddressAnchor  = regexp.MustCompile(`(?i)(?:premises|property)\s+(?:known\s+as|located\s+at|being)\s*`)
	reAddressStop    = regexp.MustCompile(`(?i)\b(?:block|lot|county|all\s+that\s+certain|tax\s+map|section|district|premises)\b`)
	reAddressResidue = regexp.MustCompile(`(?i)\b(?:Block|Lot|County|Section|District|Tax Map)\b.*$`)
)

// ExtractAddress returns the free-text property description following the
// first "premises/property known as|located at|being" anchor, cut at the
// first boilerplate stop word.
func ExtractAddress(text string) (string, bool) {
	loc := reAddressAnchor.FindStringIndex(text)
	if loc == nil {
		return "", false
	}
	rest := text[loc[1]:]
	if stop := reAddressStop.FindStringIndex(rest); stop != nil {
		rest = rest[:stop[0]]
	}
	rest = reAddressResidue.ReplaceAllString(rest, "")
	addr := strings.TrimRight(strings.TrimSpace(rest), ".,;:")
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return "", false
	}
	return addr, true
}
