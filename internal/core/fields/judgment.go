package fields

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// MinJudgmentAmount is the floor below which a dollar figure in a judgment
// document is not taken to be the judgment amount.
const MinJudgmentAmount = 50000.0

var noticeJudgmentChain = chain(
	"judgment_amount", `(?i)Judgment amount\s*\$?([\d,]+\.\d{2})`,
	"approximate", `(?i)Approximate\s*Amount\s*of\s*Judgment\s*(?:is\s+)?\$?([\d,]+\.\d{2})`,
)

var documentJudgmentChain = chain(
	"showing_sum", `(?i)showing the sum of\s*\$?([\d,]+\.\d{2})`,
	"principal_balance", `(?i)principal balance of\s*\$?([\d,]+\.\d{2})`,
	"referee_report", `(?i)Amount due per Referee['’s]{0,2} Report[:\s]*\$?([\d,]+\.\d{2})`,
	"judgment_in_amount", `(?i)judgment of foreclosure and sale in the amount of\s*\$?([\d,]+\.\d{2})`,
	"sum_due", `(?i)the sum of\s*\$?([\d,]+\.\d{2})\s*(?:was|is)?\s*due`,
)

var reAnyAmount = regexp.MustCompile(`\$?([\d,]+\.\d{2})`)

var amountPrinter = message.NewPrinter(language.English)

// NoticeJudgmentAmount returns the judgment amount stated in a Notice of
// Sale, verbatim ("450,123.45").
func NoticeJudgmentAmount(text string) (string, bool) {
	v, _, ok := firstSubmatch(noticeJudgmentChain, text)
	return v, ok
}

// DocumentJudgmentAmount picks the largest plausible amount from a Judgment
// of Foreclosure & Sale, formatted "5,000,000.00". Phrase patterns are tried
// first; bare amounts are scanned only when none of them yields a value.
func DocumentJudgmentAmount(text string) (string, bool) {
	var found []float64
	for _, p := range documentJudgmentChain {
		found = append(found, plausibleAmounts(p.re, text)...)
	}
	if len(found) == 0 {
		found = plausibleAmounts(reAnyAmount, text)
	}
	if len(found) == 0 {
		return "", false
	}
	best := found[0]
	for _, v := range found[1:] {
		if v > best {
			best = v
		}
	}
	return FormatAmount(best), true
}

// FormatAmount renders v with thousands separators and two decimals.
func FormatAmount(v float64) string {
	return amountPrinter.Sprintf("%.2f", v)
}

// ParseAmount parses "1,234.56" (optional "$"); separators are dropped.
func ParseAmount(s string) (float64, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "$")
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func plausibleAmounts(re *regexp.Regexp, text string) []float64 {
	var out []float64
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		v, ok := ParseAmount(m[1])
		if !ok || v <= MinJudgmentAmount {
			continue
		}
		out = append(out, v)
	}
	return out
}
