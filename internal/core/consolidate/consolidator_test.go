package consolidate

import (
	"io"
	"log/slog"
	"testing"

	"github.com/joseph-ayodele/foreclosure-parser/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const noticeA = "Index No. 712220/2022 will sell at public auction on March 5, 2024 at 10:00 AM " +
	"premises known as 1 Main St, Block 1234 Lot 56. Approximate Amount of Judgment $450,123.45"

func TestConsolidator_NoticeOriginatesOnce(t *testing.T) {
	c := New(quietLogger())

	assert.True(t, c.AddNotice("a_notice.pdf", noticeA))
	assert.False(t, c.AddNotice("b_notice.pdf", noticeA))
	assert.False(t, c.AddNotice("c_notice.pdf", "no index here"))

	require.Equal(t, 1, c.Len())
	rec, ok := c.Get("712220/2022")
	require.True(t, ok)
	assert.Equal(t, "a_notice.pdf", *rec.SourceNotice)

	st := c.Stats()[0]
	assert.Equal(t, constants.KindNotice, st.Kind)
	assert.Equal(t, 3, st.Seen)
	assert.Equal(t, 1, st.Applied)
	assert.Equal(t, 2, st.Skipped)
}

func TestConsolidator_JudgmentFillsOnlyGaps(t *testing.T) {
	c := New(quietLogger())
	require.True(t, c.AddNotice("n1.pdf", noticeA))
	require.True(t, c.AddNotice("n2.pdf", "Index No. 5555/2023 no amount stated"))

	// unknown index is dropped
	assert.False(t, c.AddJudgment("j0.pdf", "Index No. 9999/2020 principal balance of $900,000.00"))
	// amount already set from the notice
	assert.False(t, c.AddJudgment("j1.pdf", "Index No. 712220/2022 principal balance of $900,000.00"))
	// gap filled
	assert.True(t, c.AddJudgment("j2.pdf", "Index No. 5555/2023 principal balance of $75,500.00"))
	// no longer a gap
	assert.False(t, c.AddJudgment("j3.pdf", "Index No. 5555/2023 principal balance of $80,000.00"))

	first, _ := c.Get("712220/2022")
	assert.Equal(t, "450,123.45", *first.JudgmentAmount)
	assert.Nil(t, first.SourceJudgment)

	second, _ := c.Get("5555/2023")
	assert.Equal(t, "75,500.00", *second.JudgmentAmount)
	assert.Equal(t, "j2.pdf", *second.SourceJudgment)

	st := c.Stats()[1]
	assert.Equal(t, 4, st.Seen)
	assert.Equal(t, 1, st.Applied)
	assert.Equal(t, 1, st.Skipped)
}

func TestConsolidator_LastAffirmationWins(t *testing.T) {
	c := New(quietLogger())
	require.True(t, c.AddNotice("n1.pdf", noticeA))

	assert.True(t, c.AddAffirmation("a1.pdf", "Index No. 712220/2022 the sale is postponed"))
	assert.False(t, c.AddAffirmation("a2.pdf", "Index No. 712220/2022 nothing to report"))
	assert.True(t, c.AddAffirmation("a3.pdf", "Index No. 712220/2022 sale was cancelled"))
	assert.False(t, c.AddAffirmation("a4.pdf", "Index No. 1/2020 postponed"))

	rec, _ := c.Get("712220/2022")
	assert.Equal(t, constants.StatusCancelled, *rec.AuctionStatus)
	assert.Equal(t, "a3.pdf", *rec.SourceAffirmation)
}

func TestConsolidator_RecordsKeepInsertionOrder(t *testing.T) {
	c := New(quietLogger())
	c.Add(constants.KindNotice, "z.pdf", "Index No. 300/2020")
	c.Add(constants.KindNotice, "a.pdf", "Index No. 100/2020")
	c.Add(constants.KindNotice, "m.pdf", "Index No. 200/2020")

	var got []string
	for _, r := range c.Records() {
		got = append(got, r.IndexNumber)
	}
	assert.Equal(t, []string{"300/2020", "100/2020", "200/2020"}, got)
}
