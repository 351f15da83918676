package pdftext

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// pdfToText writes content to a temp file and runs
// pdftotext -layout -enc UTF-8 -eol unix <path> -
func (e *Extractor) pdfToText(ctx context.Context, content []byte) (Result, error) {
	res := Result{Method: MethodPdftotext}

	f, err := os.CreateTemp("", "fp-pdf-*.pdf")
	if err != nil {
		return res, err
	}
	path := f.Name()
	defer func() {
		if err := os.Remove(path); err != nil {
			e.logger.Warn("failed to remove temp file", "path", path, "error", err)
		}
	}()
	if _, err := f.Write(content); err != nil {
		_ = f.Close()
		return res, err
	}
	if err := f.Close(); err != nil {
		return res, err
	}

	out, errb, err := e.runner.Run(ctx, e.cfg.Pdftotext, "-layout", "-enc", "UTF-8", "-eol", "unix", path, "-")
	if err != nil {
		if len(errb) > 0 {
			res.Warnings = append(res.Warnings, string(errb))
		}
		return res, fmt.Errorf("pdftotext: %w", err)
	}
	res.Text = string(out)
	// A form-feed \f is used as page separator by default
	res.Pages = 1 + strings.Count(strings.TrimRight(res.Text, "\f"), "\f")
	return res, nil
}
