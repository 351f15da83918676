package constants

// AuctionStatus is the status reported by affirmation/status letters.
type AuctionStatus string

// Stable values (written verbatim to the output table and the cases table).
const (
	StatusPostponed        AuctionStatus = "Postponed"
	StatusCancelled        AuctionStatus = "Cancelled"
	StatusRescheduled      AuctionStatus = "Rescheduled"
	StatusMightBePostponed AuctionStatus = "Might be postponed"
	StatusProceeding       AuctionStatus = "Proceeding as scheduled"
)

func AuctionStatusStrings() []string {
	return []string{
		string(StatusPostponed),
		string(StatusCancelled),
		string(StatusRescheduled),
		string(StatusMightBePostponed),
		string(StatusProceeding),
	}
}
