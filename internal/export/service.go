package export

import (
	"bufio"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/foreclosure-parser/internal/entity"
)

// Output formats, chosen by file extension.
const (
	FormatCSV   = "csv"
	FormatXLSX  = "xlsx"
	FormatJSONL = "jsonl"
)

// SheetName is the worksheet written to XLSX output.
const SheetName = "Cases"

// Service writes the case table in the fixed 14-column schema.
type Service struct {
	schema *jsonschema.Schema
	logger *slog.Logger
}

func NewService(logger *slog.Logger) (*Service, error) {
	if logger == nil {
		logger = slog.Default()
	}
	schema, err := compileSchema(BuildRowJSONSchema())
	if err != nil {
		return nil, err
	}
	return &Service{schema: schema, logger: logger}, nil
}

// FormatFor maps an output path to a format.
func FormatFor(path string) (string, error) {
	switch ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")); ext {
	case FormatCSV, FormatXLSX, FormatJSONL:
		return ext, nil
	default:
		return "", fmt.Errorf("unsupported output extension: %q", ext)
	}
}

// WriteFile writes records to path in the format implied by its extension.
func (s *Service) WriteFile(ctx context.Context, path string, records []*entity.CaseRecord) error {
	start := time.Now()
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	w := bufio.NewWriter(f)

	switch format {
	case FormatCSV:
		err = s.WriteCSV(ctx, w, records)
	case FormatXLSX:
		err = s.WriteXLSX(ctx, w, records)
	case FormatJSONL:
		err = s.WriteJSONL(ctx, w, records)
	}
	if err == nil {
		err = w.Flush()
	}
	if cerr := f.Close(); err == nil && cerr != nil {
		err = cerr
	}
	if err != nil {
		if rerr := os.Remove(path); rerr != nil {
			s.logger.Warn("export.cleanup_failed", "path", path, "error", rerr)
		}
		return fmt.Errorf("write %s: %w", path, err)
	}

	s.logger.Info("export.ok",
		"path", path,
		"format", format,
		"rows", len(records),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// WriteCSV writes a header row and one row per record.
func (s *Service) WriteCSV(ctx context.Context, w io.Writer, records []*entity.CaseRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(entity.Columns); err != nil {
		return err
	}
	for _, r := range records {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := cw.Write(r.Row()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes a workbook with a single "Cases" sheet.
func (s *Service) WriteXLSX(ctx context.Context, w io.Writer, records []*entity.CaseRecord) error {
	buf, err := s.XLSXBytes(ctx, records)
	if err != nil {
		return err
	}
	_, err = w.Write(buf)
	return err
}

// XLSXBytes returns the workbook as bytes.
func (s *Service) XLSXBytes(ctx context.Context, records []*entity.CaseRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	// rename the default sheet so the workbook has exactly one
	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, err
	}
	activeIndex, _ := f.GetSheetIndex(SheetName)
	f.SetActiveSheet(activeIndex)

	for i, h := range entity.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(SheetName, cell, h)
	}

	row := 2
	for _, r := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for col, v := range r.Row() {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			_ = f.SetCellValue(SheetName, cell, v)
		}
		row++
	}

	// Widen a few columns
	_ = f.SetColWidth(SheetName, "A", "B", 24) // index, plaintiff
	_ = f.SetColWidth(SheetName, "C", "C", 48) // address
	_ = f.SetColWidth(SheetName, "D", "K", 16)
	_ = f.SetColWidth(SheetName, "L", "N", 40) // source files

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteJSONL writes one JSON object per record; each is validated against
// the row schema before it is written.
func (s *Service) WriteJSONL(ctx context.Context, w io.Writer, records []*entity.CaseRecord) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, r := range records {
		if err := ctx.Err(); err != nil {
			return err
		}
		m := r.RowMap()
		if err := s.ValidateRow(m); err != nil {
			return fmt.Errorf("row %s: %w", r.IndexNumber, err)
		}
		if err := enc.Encode(m); err != nil {
			return err
		}
	}
	return nil
}

// ValidateRow checks a column-keyed row against the row schema.
func (s *Service) ValidateRow(row map[string]string) error {
	b, err := json.Marshal(row)
	if err != nil {
		return err
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("unmarshal row: %w", err)
	}
	if err := s.schema.Validate(v); err != nil {
		return fmt.Errorf("row does not match schema: %w", err)
	}
	return nil
}
