package constants

// DocumentKind is the folder a document was read from. Each kind gets its own extractor set.
type DocumentKind string

const (
	KindNotice      DocumentKind = "NOTICE"      // Notice of Sale: originates case records
	KindJudgment    DocumentKind = "JUDGMENT"    // Judgment of Foreclosure & Sale: fills judgment amount
	KindAffirmation DocumentKind = "AFFIRMATION" // affirmations / status letters: sets auction status
)

// ProcessingOrder is the order in which folders are consolidated.
var ProcessingOrder = []DocumentKind{KindNotice, KindJudgment, KindAffirmation}
