package entity

import (
	"time"

	"github.com/joseph-ayodele/foreclosure-parser/constants"
)

// Columns is the fixed output schema, in order.
var Columns = []string{
	"Index Number",
	"Plaintiff",
	"Property Address",
	"Borough",
	"Block",
	"Lot",
	"Auction Date",
	"Auction Time",
	"Referee",
	"Judgment Amount",
	"Auction Status",
	"Source Notice",
	"Source Judgment",
	"Source Affirmation",
}

// CaseRecord is one foreclosure case keyed by its court index number.
// Nil fields are absent; they render as constants.NotAvailable.
type CaseRecord struct {
	IndexNumber       string                   `json:"index_number"`
	Plaintiff         *string                  `json:"plaintiff,omitempty"`
	PropertyAddress   *string                  `json:"property_address,omitempty"`
	Borough           *constants.Borough       `json:"borough,omitempty"`
	Block             *string                  `json:"block,omitempty"`
	Lot               *string                  `json:"lot,omitempty"`
	AuctionDate       *string                  `json:"auction_date,omitempty"`
	AuctionTime       *string                  `json:"auction_time,omitempty"`
	Referee           *string                  `json:"referee,omitempty"`
	JudgmentAmount    *string                  `json:"judgment_amount,omitempty"`
	AuctionStatus     *constants.AuctionStatus `json:"auction_status,omitempty"`
	SourceNotice      *string                  `json:"source_notice,omitempty"`
	SourceJudgment    *string                  `json:"source_judgment,omitempty"`
	SourceAffirmation *string                  `json:"source_affirmation,omitempty"`
}

// StoredCase is a CaseRecord as persisted by the case store.
type StoredCase struct {
	CaseRecord
	RunID     string    `json:"run_id"`
	Seq       int       `json:"seq"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Row renders the record in Columns order.
func (c *CaseRecord) Row() []string {
	var borough, status *string
	if c.Borough != nil {
		s := string(*c.Borough)
		borough = &s
	}
	if c.AuctionStatus != nil {
		s := string(*c.AuctionStatus)
		status = &s
	}
	return []string{
		orNA(&c.IndexNumber),
		orNA(c.Plaintiff),
		orNA(c.PropertyAddress),
		orNA(borough),
		orNA(c.Block),
		orNA(c.Lot),
		orNA(c.AuctionDate),
		orNA(c.AuctionTime),
		orNA(c.Referee),
		orNA(c.JudgmentAmount),
		orNA(status),
		orNA(c.SourceNotice),
		orNA(c.SourceJudgment),
		orNA(c.SourceAffirmation),
	}
}

// RowMap is Row keyed by column name.
func (c *CaseRecord) RowMap() map[string]string {
	row := c.Row()
	m := make(map[string]string, len(Columns))
	for i, col := range Columns {
		m[col] = row[i]
	}
	return m
}

// Ptr returns a pointer to v, or nil for "" and the NA sentinel.
func Ptr(v string) *string {
	if v == "" || v == constants.NotAvailable {
		return nil
	}
	return &v
}

func orNA(v *string) string {
	if v == nil || *v == "" {
		return constants.NotAvailable
	}
	return *v
}
