package consolidate

import (
	"log/slog"

	"github.com/joseph-ayodele/foreclosure-parser/constants"
	"github.com/joseph-ayodele/foreclosure-parser/internal/core/fields"
	"github.com/joseph-ayodele/foreclosure-parser/internal/entity"
)

// PassStats counts what happened to the documents of one folder.
type PassStats struct {
	Kind    constants.DocumentKind `json:"kind"`
	Seen    int                    `json:"seen"`
	Applied int                    `json:"applied"`
	Skipped int                    `json:"skipped"` // no index, duplicate notice, or unknown index
}

// Consolidator owns the case table of a single batch run.
// Not safe for concurrent use.
type Consolidator struct {
	logger *slog.Logger
	parser *fields.Parser
	cases  map[string]*entity.CaseRecord
	order  []string
	stats  map[constants.DocumentKind]*PassStats
}

func New(logger *slog.Logger) *Consolidator {
	if logger == nil {
		logger = slog.Default()
	}
	stats := make(map[constants.DocumentKind]*PassStats, len(constants.ProcessingOrder))
	for _, k := range constants.ProcessingOrder {
		stats[k] = &PassStats{Kind: k}
	}
	return &Consolidator{
		logger: logger,
		parser: fields.NewParser(logger),
		cases:  make(map[string]*entity.CaseRecord),
		stats:  stats,
	}
}

// Add routes a document's raw text to the pass for its kind and reports
// whether it changed the case table.
func (c *Consolidator) Add(kind constants.DocumentKind, filename, text string) bool {
	switch kind {
	case constants.KindNotice:
		return c.AddNotice(filename, text)
	case constants.KindJudgment:
		return c.AddJudgment(filename, text)
	case constants.KindAffirmation:
		return c.AddAffirmation(filename, text)
	default:
		c.logger.Warn("consolidate.unknown_kind", "file", filename, "kind", kind)
		return false
	}
}

// AddNotice creates a case record. A later notice for a known index is ignored.
func (c *Consolidator) AddNotice(filename, text string) bool {
	st := c.stats[constants.KindNotice]
	st.Seen++

	t := fields.Normalize(text)
	idx, ok := fields.ExtractIndex(t)
	if !ok {
		st.Skipped++
		c.logger.Info("consolidate.notice.no_index", "file", filename)
		return false
	}
	if prev, dup := c.cases[idx]; dup {
		st.Skipped++
		c.logger.Warn("consolidate.notice.duplicate",
			"file", filename,
			"index", idx,
			"kept", valueOr(prev.SourceNotice),
		)
		return false
	}

	rec, _ := c.parser.ParseNotice(t, filename)
	c.cases[idx] = rec
	c.order = append(c.order, idx)
	st.Applied++
	return true
}

// AddJudgment fills the judgment amount of a known case that has none yet.
func (c *Consolidator) AddJudgment(filename, text string) bool {
	st := c.stats[constants.KindJudgment]
	st.Seen++

	t := fields.Normalize(text)
	rec, ok := c.lookup(constants.KindJudgment, filename, t)
	if !ok {
		st.Skipped++
		return false
	}
	if rec.JudgmentAmount != nil {
		c.logger.Debug("consolidate.judgment.already_set", "file", filename, "index", rec.IndexNumber)
		return false
	}
	amt, ok := c.parser.ParseJudgment(t)
	if !ok {
		c.logger.Debug("consolidate.judgment.no_amount", "file", filename, "index", rec.IndexNumber)
		return false
	}
	rec.JudgmentAmount = &amt
	rec.SourceJudgment = entity.Ptr(filename)
	st.Applied++
	return true
}

// AddAffirmation sets (or overwrites) the auction status of a known case.
func (c *Consolidator) AddAffirmation(filename, text string) bool {
	st := c.stats[constants.KindAffirmation]
	st.Seen++

	t := fields.Normalize(text)
	rec, ok := c.lookup(constants.KindAffirmation, filename, t)
	if !ok {
		st.Skipped++
		return false
	}
	status, ok := c.parser.ParseAffirmation(t)
	if !ok {
		c.logger.Debug("consolidate.affirmation.no_status", "file", filename, "index", rec.IndexNumber)
		return false
	}
	if rec.AuctionStatus != nil && *rec.AuctionStatus != status {
		c.logger.Info("consolidate.affirmation.status_changed",
			"file", filename,
			"index", rec.IndexNumber,
			"from", string(*rec.AuctionStatus),
			"to", string(status),
		)
	}
	rec.AuctionStatus = &status
	rec.SourceAffirmation = entity.Ptr(filename)
	st.Applied++
	return true
}

func (c *Consolidator) lookup(kind constants.DocumentKind, filename, text string) (*entity.CaseRecord, bool) {
	idx, ok := fields.ExtractIndex(text)
	if !ok {
		c.logger.Info("consolidate.no_index", "kind", kind, "file", filename)
		return nil, false
	}
	rec, ok := c.cases[idx]
	if !ok {
		c.logger.Info("consolidate.orphan", "kind", kind, "file", filename, "index", idx)
		return nil, false
	}
	return rec, true
}

// Records returns the case table in first-seen notice order.
func (c *Consolidator) Records() []*entity.CaseRecord {
	out := make([]*entity.CaseRecord, 0, len(c.order))
	for _, idx := range c.order {
		out = append(out, c.cases[idx])
	}
	return out
}

// Get returns the record for an index number.
func (c *Consolidator) Get(index string) (*entity.CaseRecord, bool) {
	rec, ok := c.cases[index]
	return rec, ok
}

func (c *Consolidator) Len() int { return len(c.order) }

// Stats returns per-pass statistics in processing order.
func (c *Consolidator) Stats() []PassStats {
	out := make([]PassStats, 0, len(constants.ProcessingOrder))
	for _, k := range constants.ProcessingOrder {
		out = append(out, *c.stats[k])
	}
	return out
}

func valueOr(p *string) string {
	if p == nil {
		return constants.NotAvailable
	}
	return *p
}
