package fields

import (
	"log/slog"

	"github.com/joseph-ayodele/foreclosure-parser/constants"
	"github.com/joseph-ayodele/foreclosure-parser/internal/entity"
)

// Parser runs the extractor set for each document kind.
type Parser struct {
	logger *slog.Logger
}

// NewParser returns a Parser; a nil logger uses slog.Default().
func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{logger: logger}
}

// ParseNotice builds a case record from Notice of Sale text. text must
// already be normalized. Returns false when no index number is present.
func (p *Parser) ParseNotice(text, filename string) (*entity.CaseRecord, bool) {
	idx, ok := ExtractIndex(text)
	if !ok {
		return nil, false
	}
	rec := &entity.CaseRecord{
		IndexNumber:  idx,
		SourceNotice: entity.Ptr(filename),
	}

	if v, ok := PlaintiffFromFilename(filename); ok {
		rec.Plaintiff = &v
	}
	if b, ok := DetectBorough(text); ok {
		rec.Borough = &b
	}
	if v, ok := ExtractAddress(text); ok {
		rec.PropertyAddress = &v
	}

	bl, ok := ExtractBlockLot(text)
	switch {
	case !ok:
		p.logger.Info("no block/lot found", "file", filename, "index", idx)
	case bl.Ambiguous():
		p.logger.Warn("multiple block/lot matches",
			"file", filename,
			"index", idx,
			"candidates", formatPairs(bl.Candidates),
			"selected", bl.Block+"-"+bl.Lot,
		)
	}
	if ok {
		rec.Block = &bl.Block
		rec.Lot = &bl.Lot
	}

	if v, ok := ExtractReferee(text); ok {
		rec.Referee = &v
	}
	if v, ok := NoticeJudgmentAmount(text); ok {
		rec.JudgmentAmount = &v
	}
	if d, t, ok := AuctionDateTime(text); ok {
		rec.AuctionDate = &d
		rec.AuctionTime = &t
	}
	return rec, true
}

// ParseJudgment returns the judgment amount of a Judgment document.
func (p *Parser) ParseJudgment(text string) (string, bool) {
	return DocumentJudgmentAmount(text)
}

// ParseAffirmation returns the auction status of an affirmation / status letter.
func (p *Parser) ParseAffirmation(text string) (constants.AuctionStatus, bool) {
	return ClassifyStatus(text)
}

func formatPairs(pairs [][2]string) []string {
	out := make([]string, len(pairs))
	for i, pr := range pairs {
		out[i] = pr[0] + "-" + pr[1]
	}
	return out
}
