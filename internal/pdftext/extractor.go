package pdftext

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Extraction methods.
const (
	MethodAuto      = "auto"
	MethodNative    = "native"
	MethodPdftotext = "pdftotext"
	MethodDocconv   = "docconv"
)

type Config struct {
	Method    string        // auto | native | pdftotext | docconv; empty -> auto
	Pdftotext string        // binary name or absolute path; if empty -> "pdftotext"
	Timeout   time.Duration // per document; 0 = none
}

type Result struct {
	Text     string
	Pages    int
	Method   string
	Duration time.Duration
	Warnings []string
}

// TextExtractor turns PDF bytes into plain text.
type TextExtractor interface {
	Extract(ctx context.Context, name string, content []byte) (Result, error)
}

var _ TextExtractor = (*Extractor)(nil)

type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Method == "" {
		cfg.Method = MethodAuto
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	return &Extractor{cfg: cfg, runner: execRunner{logger: logger}, logger: logger}
}

// WithRunner swaps the command runner used for pdftotext.
func (e *Extractor) WithRunner(r Runner) *Extractor {
	e.runner = r
	return e
}

// Extract returns the concatenated page text of one PDF.
func (e *Extractor) Extract(ctx context.Context, name string, content []byte) (Result, error) {
	start := time.Now()
	if e.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.Timeout)
		defer cancel()
	}
	e.logger.Debug("starting pdf text extraction", "file", name, "method", e.cfg.Method, "bytes", len(content))

	var (
		res Result
		err error
	)
	switch strings.ToLower(e.cfg.Method) {
	case MethodNative:
		res, err = e.native(content)
	case MethodPdftotext:
		res, err = e.pdfToText(ctx, content)
	case MethodDocconv:
		res, err = e.docconv(content)
	case MethodAuto:
		res, err = e.auto(ctx, name, content)
	default:
		return Result{}, fmt.Errorf("unsupported extraction method: %q", e.cfg.Method)
	}
	res.Duration = time.Since(start)
	if err != nil {
		return res, fmt.Errorf("extract %s: %w", name, err)
	}
	e.logger.Debug("pdf text extracted",
		"file", name,
		"method", res.Method,
		"pages", res.Pages,
		"chars", len(res.Text),
		"duration_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}

// auto prefers the pure-Go reader and falls back to pdftotext when it yields nothing.
func (e *Extractor) auto(ctx context.Context, name string, content []byte) (Result, error) {
	res, err := e.native(content)
	if err == nil && strings.TrimSpace(res.Text) != "" {
		return res, nil
	}
	var warns []string
	if err != nil {
		warns = append(warns, "native: "+err.Error())
	} else {
		warns = append(warns, "native: no text")
	}
	e.logger.Debug("native extraction empty, falling back to pdftotext", "file", name, "error", err)

	fb, fbErr := e.pdfToText(ctx, content)
	fb.Warnings = append(warns, fb.Warnings...)
	if fbErr != nil {
		if err != nil {
			return fb, fmt.Errorf("native: %v; pdftotext: %w", err, fbErr)
		}
		return fb, fbErr
	}
	return fb, nil
}
