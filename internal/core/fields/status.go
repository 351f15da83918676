package fields

import (
	"strings"

	"github.com/joseph-ayodele/foreclosure-parser/constants"
)

type statusGroup struct {
	status   constants.AuctionStatus
	keywords []string
	// conditional groups are matched against the unmasked text
	conditional bool
}

var conditionalPostponement = []string{"may be postponed", "might be postponed", "subject to postponement"}

var statusGroups = []statusGroup{
	{status: constants.StatusPostponed, keywords: []string{"postpone"}},
	{status: constants.StatusCancelled, keywords: []string{"cancelled", "canceled"}},
	{status: constants.StatusRescheduled, keywords: []string{"rescheduled", "adjourned"}},
	{status: constants.StatusMightBePostponed, keywords: conditionalPostponement, conditional: true},
	{status: constants.StatusProceeding, keywords: []string{"as scheduled", "will proceed"}},
}

var conditionalMask = func() *strings.Replacer {
	var pairs []string
	for _, p := range conditionalPostponement {
		pairs = append(pairs, p, " ")
	}
	return strings.NewReplacer(pairs...)
}()

// ClassifyStatus maps affirmation / status-letter text to an auction status.
// Conditional postponement wording never counts as a postponement.
func ClassifyStatus(text string) (constants.AuctionStatus, bool) {
	low := strings.ToLower(Normalize(text))
	masked := conditionalMask.Replace(low)
	for _, g := range statusGroups {
		hay := masked
		if g.conditional {
			hay = low
		}
		for _, kw := range g.keywords {
			if strings.Contains(hay, kw) {
				return g.status, true
			}
		}
	}
	return "", false
}
