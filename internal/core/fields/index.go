package fields

import "regexp"

var reIndexNumber = regexp.MustCompile(`(?i)Index\s*(?:No\.?|Number|#)[:\s]*([0-9]{3,6}/\d{2,4})`)

// ExtractIndex returns the first court index number ("712220/2022") in text.
func ExtractIndex(text string) (string, bool) {
	m := reIndexNumber.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}
