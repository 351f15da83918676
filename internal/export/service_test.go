package export

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/foreclosure-parser/constants"
	"github.com/joseph-ayodele/foreclosure-parser/internal/entity"
)

func sampleRecords() []*entity.CaseRecord {
	queens := constants.Queens
	status := constants.StatusPostponed
	return []*entity.CaseRecord{
		{
			IndexNumber:     "712220/2022",
			Plaintiff:       entity.Ptr("US Bank Trust Nation"),
			PropertyAddress: entity.Ptr("145-47 157 Street, Jamaica, NY 11434"),
			Borough:         &queens,
			Block:           entity.Ptr("12345"),
			Lot:             entity.Ptr("12"),
			JudgmentAmount:  entity.Ptr("450,123.45"),
			AuctionStatus:   &status,
			SourceNotice:    entity.Ptr("n.pdf"),
		},
		{IndexNumber: "1234/21"},
	}
}

func newService(t *testing.T) *Service {
	t.Helper()
	s, err := NewService(nil)
	require.NoError(t, err)
	return s
}

func TestFormatFor(t *testing.T) {
	f, err := FormatFor("out/combined_output.CSV")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	_, err = FormatFor("out.txt")
	assert.Error(t, err)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newService(t).WriteCSV(context.Background(), &buf, sampleRecords()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, entity.Columns, rows[0])
	assert.Equal(t, "145-47 157 Street, Jamaica, NY 11434", rows[1][2])
	assert.Equal(t, "Postponed", rows[1][10])
	assert.Equal(t, "NA", rows[2][1])
	assert.Len(t, rows[2], 14)
}

func TestWriteJSONL(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newService(t).WriteJSONL(context.Background(), &buf, sampleRecords()))

	sc := bufio.NewScanner(&buf)
	var lines []map[string]string
	for sc.Scan() {
		var m map[string]string
		require.NoError(t, json.Unmarshal(sc.Bytes(), &m))
		lines = append(lines, m)
	}
	require.Len(t, lines, 2)
	assert.Equal(t, "712220/2022", lines[0]["Index Number"])
	assert.Equal(t, "NA", lines[1]["Borough"])
}

func TestWriteJSONL_RejectsInvalidRow(t *testing.T) {
	bad := []*entity.CaseRecord{{IndexNumber: "712220/2022", Block: entity.Ptr("12-AB")}}
	err := newService(t).WriteJSONL(context.Background(), &bytes.Buffer{}, bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "712220/2022")
}

func TestWriteFile_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "cases.xlsx")
	require.NoError(t, newService(t).WriteFile(context.Background(), path, sampleRecords()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())
	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Index Number", rows[0][0])
	assert.Equal(t, "712220/2022", rows[1][0])
	assert.Equal(t, "Queens", rows[1][3])
}

func TestWriteFile_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "combined_output.csv")
	require.NoError(t, newService(t).WriteFile(context.Background(), path, sampleRecords()))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(b), "Index Number,Plaintiff,Property Address,"))
}

func TestWriteFile_JSONLInvalidRowLeavesNoFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cases.jsonl")
	records := append(sampleRecords(), &entity.CaseRecord{IndexNumber: "712220/2022", Block: entity.Ptr("12-AB")})

	err := newService(t).WriteFile(context.Background(), path, records)
	require.Error(t, err)
	_, statErr := os.Stat(path)
	assert.True(t, errors.Is(statErr, fs.ErrNotExist))
}
