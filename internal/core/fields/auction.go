package fields

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	auctionWindowBefore = 80
	auctionWindowAfter  = 600
)

const (
	weekdayPattern     = `(?:Monday|Tuesday|Wednesday|Thursday|Friday|Saturday|Sunday),?\s*`
	monthDatePattern   = `(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2},\s*\d{4}`
	numericDatePattern = `\b\d{1,2}/\d{1,2}/\d{4}\b`
	timePattern        = `\b\d{1,2}:\d{2}\s*(?:[AP]\.?M\.?|[ap]\.?m\.?|[ap]m)\b`
)

var auctionAnchors = []*regexp.Regexp{
	regexp.MustCompile(`(?i)will sell at public auction`),
	regexp.MustCompile(`(?i)sell at public auction`),
	regexp.MustCompile(`(?i)public auction`),
	regexp.MustCompile(`(?i)auction to the highest bidder`),
}

// combined "(on) <date> ... at <time>", date forms in priority order
var auctionCombinedChain = chain(
	"month", `(?i)(?:on\s+)?(?:`+weekdayPattern+`)?(`+monthDatePattern+`).{0,120}?at\s+(`+timePattern+`)`,
	"numeric", `(?i)(?:on\s+)?(`+numericDatePattern+`).{0,120}?at\s+(`+timePattern+`)`,
)

var auctionDateChain = chain(
	"month", `(?i)(?:`+weekdayPattern+`)?(`+monthDatePattern+`)`,
	"numeric", `(?i)(`+numericDatePattern+`)`,
)

var reAuctionTime = regexp.MustCompile(`(?i)` + timePattern)

var timeCleaner = strings.NewReplacer(" ", "", ".", "")

// AuctionDateTime finds the auction date and time near the first auction
// anchor, e.g. ("March 5, 2024", "10:00AM"). Anchors are tried in priority
// order until one of their windows yields a result.
func AuctionDateTime(text string) (date, clock string, ok bool) {
	for _, anchor := range auctionAnchors {
		loc := anchor.FindStringIndex(text)
		if loc == nil {
			continue
		}
		window := runeWindow(text, loc[0], auctionWindowBefore, auctionWindowAfter)
		if d, t, found := searchAuctionWindow(window); found {
			return d, t, true
		}
	}
	return "", "", false
}

func searchAuctionWindow(window string) (string, string, bool) {
	for _, p := range auctionCombinedChain {
		if m := p.re.FindStringSubmatch(window); m != nil {
			return strings.TrimSpace(m[1]), normalizeTime(m[2]), true
		}
	}
	d, _, okDate := firstSubmatch(auctionDateChain, window)
	t := reAuctionTime.FindString(window)
	if okDate && t != "" {
		return strings.TrimSpace(d), normalizeTime(t), true
	}
	return "", "", false
}

// normalizeTime turns "10:00 A.M." into "10:00AM".
func normalizeTime(t string) string {
	return strings.ToUpper(timeCleaner.Replace(strings.TrimSpace(t)))
}

// runeWindow returns up to before runes preceding byte offset at and up to
// after runes from it.
func runeWindow(s string, at, before, after int) string {
	start := at
	for i := 0; i < before && start > 0; i++ {
		_, size := utf8.DecodeLastRuneInString(s[:start])
		start -= size
	}
	end := at
	for i := 0; i < after && end < len(s); i++ {
		_, size := utf8.DecodeRuneInString(s[end:])
		end += size
	}
	return s[start:end]
}
