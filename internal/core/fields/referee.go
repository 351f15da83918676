package fields

import "strings"

var refereeChain = chain(
	"esq", `([A-Z][A-Za-z .'\-]+),\s*Esq.*Referee`,
	"labeled", `Referee[:,]?\s*([A-Z][A-Za-z .'\-]+)`,
)

// ExtractReferee returns the referee's name.
func ExtractReferee(text string) (string, bool) {
	name, _, ok := firstSubmatch(refereeChain, text)
	if !ok {
		return "", false
	}
	name = strings.TrimSpace(name)
	return name, name != ""
}
