package fields

import (
	"regexp"
	"strings"

	"github.com/joseph-ayodele/foreclosure-parser/constants"
)

type boroughPatterns struct {
	borough constants.Borough
	primary []*regexp.Regexp
	second  *regexp.Regexp
}

var boroughChain = buildBoroughChain()

func buildBoroughChain() []boroughPatterns {
	var out []boroughPatterns
	for _, b := range constants.Boroughs() {
		k := strings.ReplaceAll(regexp.QuoteMeta(b.Keyword()), " ", `\s+`)
		out = append(out, boroughPatterns{
			borough: b,
			primary: []*regexp.Regexp{
				regexp.MustCompile(`\b` + k + `\s+county\b`),
				regexp.MustCompile(`\bcounty\s+of\s+` + k + `\b`),
				regexp.MustCompile(`\b` + k + `\s+supreme\s+court`),
				regexp.MustCompile(`\b` + k + `\s+supreme\s+courthouse`),
				regexp.MustCompile(`supreme\s+court.*?\b` + k + `\b`),
			},
			second: regexp.MustCompile(k + `\s+courthouse`),
		})
	}
	return out
}

// DetectBorough finds the borough from county / courthouse wording.
// Boroughs are tried in priority order; the bare "<borough> courthouse" form
// is only consulted once no borough matched the primary templates.
func DetectBorough(text string) (constants.Borough, bool) {
	t := strings.ToLower(text)
	for _, bp := range boroughChain {
		for _, re := range bp.primary {
			if re.MatchString(t) {
				return bp.borough, true
			}
		}
	}
	for _, bp := range boroughChain {
		if bp.second.MatchString(t) {
			return bp.borough, true
		}
	}
	return "", false
}
