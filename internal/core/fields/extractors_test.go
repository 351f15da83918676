package fields

import (
	"strings"
	"testing"

	"github.com/joseph-ayodele/foreclosure-parser/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractIndex(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"SUPREME COURT Index No. 712220/2022 Plaintiff", "712220/2022", true},
		{"INDEX NUMBER: 1234/22", "1234/22", true},
		{"Index # 55555/2021", "55555/2021", true},
		{"index no 12/2022", "", false},
		{"no case number here", "", false},
	}
	for _, tc := range tests {
		got, ok := ExtractIndex(tc.in)
		assert.Equal(t, tc.wantOK, ok, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestPlaintiffFromFilename(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"725949_2022_U_S_BANK_TRUST_NATION_v_SMITH", "US Bank Trust Nation", true},
		{"725949_2022_U_S_BANK_TRUST_NATION_v_SMITH.pdf", "US Bank Trust Nation", true},
		{"12_2023_WELLS_FARGO_BANK_N_A_V_DOE.pdf", "Wells Fargo Bank N.A.", true},
		{"1_2_ACME_HOLDINGS_LLC_v_X_v_Y.pdf", "Acme Holdings LLC", true},
		{"notice.pdf", "", false},
		{"725949_2022_SMITH.pdf", "", false},
	}
	for _, tc := range tests {
		got, ok := PlaintiffFromFilename(tc.in)
		assert.Equal(t, tc.wantOK, ok, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestDetectBorough(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		want   constants.Borough
		wantOK bool
	}{
		{"county suffix", "SUPREME COURT OF THE STATE OF NEW YORK, Supreme Court, Queens County", constants.Queens, true},
		{"county of", "COUNTY OF BRONX", constants.Bronx, true},
		{"supreme court gap", "held at the Supreme Court building, 360 Adams Street, Brooklyn, NY", constants.Brooklyn, true},
		{"multi-word borough", "Richmond, Staten Island County Clerk", constants.StatenIsland, true},
		{"primary beats courthouse", "the Queens courthouse steps; Brooklyn County", constants.Brooklyn, true},
		{"courthouse fallback", "on the steps of the Staten Island Courthouse", constants.StatenIsland, true},
		{"no borough", "County of Kings", "", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := DetectBorough(tc.in)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestExtractAddress(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		want   string
		wantOK bool
	}{
		{
			"stops at block",
			"will sell the premises known as 145-47 157 Street, Jamaica, NY 11434 Block 12345 Lot 12",
			"145-47 157 Street, Jamaica, NY 11434", true,
		},
		{
			"trailing punctuation",
			"property located at 12 Main St., County of Queens",
			"12 Main St", true,
		},
		{
			"stop words are whole words",
			"premises known as 10 Lotus Lane, Queens",
			"10 Lotus Lane, Queens", true,
		},
		{
			"first anchor only",
			"property being 1 First Ave; Section 3. premises known as 2 Second Ave",
			"1 First Ave", true,
		},
		{"empty capture", "premises known as Block 1", "", false},
		{"no anchor", "123 Main Street", "", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ExtractAddress(tc.in)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestExtractBlockLot(t *testing.T) {
	t.Run("labeled with stray duplicate", func(t *testing.T) {
		bl, ok := ExtractBlockLot("Block: 1234, Lot: 56 also shown as 1234-56")
		require.True(t, ok)
		assert.Equal(t, "1234", bl.Block)
		assert.Equal(t, "56", bl.Lot)
		assert.False(t, bl.Ambiguous())
	})

	t.Run("ambiguous keeps chain order", func(t *testing.T) {
		bl, ok := ExtractBlockLot("tax map id 200-3 and Block 100 Lot 2")
		require.True(t, ok)
		assert.Equal(t, "100", bl.Block)
		assert.Equal(t, "2", bl.Lot)
		assert.True(t, bl.Ambiguous())
		assert.Equal(t, [][2]string{{"100", "2"}, {"200", "3"}}, bl.Candidates)
	})

	t.Run("en dash", func(t *testing.T) {
		bl, ok := ExtractBlockLot("Tax Map Identification: 9876–54")
		require.True(t, ok)
		assert.Equal(t, "9876", bl.Block)
		assert.Equal(t, "54", bl.Lot)
	})

	t.Run("none", func(t *testing.T) {
		bl, ok := ExtractBlockLot("no parcel identifiers")
		assert.False(t, ok)
		assert.Empty(t, bl.Block)
		assert.Empty(t, bl.Candidates)
	})
}

func TestExtractReferee(t *testing.T) {
	got, ok := ExtractReferee("Dated: May 1. Jane Q. Doe, Esq., Referee")
	require.True(t, ok)
	assert.Equal(t, "Jane Q. Doe", got)

	got, ok = ExtractReferee("the undersigned Referee: John O'Neil-Smith 123")
	require.True(t, ok)
	assert.Equal(t, "John O'Neil-Smith", got)

	_, ok = ExtractReferee("no one presides")
	assert.False(t, ok)
}

func TestNoticeJudgmentAmount(t *testing.T) {
	got, ok := NoticeJudgmentAmount("Approximate Amount of Judgment is $450,123.45 plus interest")
	require.True(t, ok)
	assert.Equal(t, "450,123.45", got)

	got, ok = NoticeJudgmentAmount("Judgment amount $1,000.00. Approximate Amount of Judgment $2,000.00")
	require.True(t, ok)
	assert.Equal(t, "1,000.00", got)

	_, ok = NoticeJudgmentAmount("sum of $1,000.00")
	assert.False(t, ok)
}

func TestDocumentJudgmentAmount(t *testing.T) {
	t.Run("max of phrase matches", func(t *testing.T) {
		text := "showing the sum of $12,000.00; principal balance of $75,500.00; " +
			"judgment of foreclosure and sale in the amount of $5,000,000.00"
		got, ok := DocumentJudgmentAmount(text)
		require.True(t, ok)
		assert.Equal(t, "5,000,000.00", got)
	})

	t.Run("nothing plausible", func(t *testing.T) {
		_, ok := DocumentJudgmentAmount("the sum of $12,000.00 is due and costs of $40,000.00")
		assert.False(t, ok)
	})

	t.Run("phrases win over bare amounts", func(t *testing.T) {
		got, ok := DocumentJudgmentAmount("principal balance of $60,000.00 and a bare $900,000.00")
		require.True(t, ok)
		assert.Equal(t, "60,000.00", got)
	})

	t.Run("bare fallback", func(t *testing.T) {
		got, ok := DocumentJudgmentAmount("Total 123456.78 owed")
		require.True(t, ok)
		assert.Equal(t, "123,456.78", got)
	})

	t.Run("referee report apostrophe", func(t *testing.T) {
		got, ok := DocumentJudgmentAmount("Amount due per Referee's Report: $250,000.00")
		require.True(t, ok)
		assert.Equal(t, "250,000.00", got)
	})
}

func TestAuctionDateTime(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		wantDate string
		wantTime string
		wantOK   bool
	}{
		{
			"combined with weekday",
			"the Referee will sell at public auction on Tuesday, March 5, 2024 at 10:00 A.M. at the courthouse",
			"March 5, 2024", "10:00AM", true,
		},
		{
			"numeric date",
			"will sell at public auction at the Courthouse on 3/5/2024 at 2:30 pm",
			"3/5/2024", "2:30PM", true,
		},
		{
			"independent date and time",
			"Sale at 9:30 AM. Auction to the highest bidder. Date of sale: June 12, 2023",
			"June 12, 2023", "9:30AM", true,
		},
		{
			"anchor without date",
			"will sell at public auction soon",
			"", "", false,
		},
		{"no anchor", "March 5, 2024 at 10:00 AM", "", "", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d, tm, ok := AuctionDateTime(tc.in)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.wantDate, d)
			assert.Equal(t, tc.wantTime, tm)
		})
	}
}

func TestAuctionDateTime_CombinedFormsBeforeIndependent(t *testing.T) {
	// the month date is too far from any "at <time>" to combine; the numeric
	// date combines, so it wins over an independent month date + time pairing
	in := "will sell at public auction. Notice dated January 2, 2024. " +
		strings.Repeat("x ", 80) +
		"Sale on 3/5/2024 at 10:00 AM"

	d, tm, ok := AuctionDateTime(in)
	require.True(t, ok)
	assert.Equal(t, "3/5/2024", d)
	assert.Equal(t, "10:00AM", tm)
}

func TestRuneWindow(t *testing.T) {
	s := "ééééabcdé"
	at := len("éééé")
	assert.Equal(t, "ééabc", runeWindow(s, at, 2, 3))
	assert.Equal(t, s, runeWindow(s, at, 100, 100))
}

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		in     string
		want   constants.AuctionStatus
		wantOK bool
	}{
		{"The sale has been POSTPONED to a later date", constants.StatusPostponed, true},
		{"the auction was canceled", constants.StatusCancelled, true},
		{"sale adjourned", constants.StatusRescheduled, true},
		{"The sale may be postponed; it will proceed as scheduled otherwise", constants.StatusMightBePostponed, true},
		{"subject to postponement", constants.StatusMightBePostponed, true},
		{"The sale will proceed", constants.StatusProceeding, true},
		{"postponed, then cancelled", constants.StatusPostponed, true},
		{"nothing relevant", "", false},
	}
	for _, tc := range tests {
		got, ok := ClassifyStatus(tc.in)
		assert.Equal(t, tc.wantOK, ok, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}
