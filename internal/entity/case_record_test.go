package entity

import (
	"testing"

	"github.com/joseph-ayodele/foreclosure-parser/constants"
	"github.com/stretchr/testify/assert"
)

func TestRow_RendersAbsentAsNA(t *testing.T) {
	queens := constants.Queens
	rec := &CaseRecord{
		IndexNumber: "712220/2022",
		Plaintiff:   Ptr("US Bank Trust Nation"),
		Borough:     &queens,
	}

	row := rec.Row()
	assert.Len(t, row, len(Columns))
	assert.Equal(t, "712220/2022", row[0])
	assert.Equal(t, "US Bank Trust Nation", row[1])
	assert.Equal(t, "NA", row[2])
	assert.Equal(t, "Queens", row[3])
	for _, v := range row[4:] {
		assert.Equal(t, "NA", v)
	}
}

func TestRowMap(t *testing.T) {
	status := constants.StatusMightBePostponed
	rec := &CaseRecord{IndexNumber: "1/22", AuctionStatus: &status}

	m := rec.RowMap()
	assert.Equal(t, "Might be postponed", m["Auction Status"])
	assert.Equal(t, "NA", m["Judgment Amount"])
}

func TestPtr(t *testing.T) {
	assert.Nil(t, Ptr(""))
	assert.Nil(t, Ptr("NA"))
	if assert.NotNil(t, Ptr("x")) {
		assert.Equal(t, "x", *Ptr("x"))
	}
}
