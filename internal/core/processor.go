package core

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/joseph-ayodele/foreclosure-parser/constants"
	"github.com/joseph-ayodele/foreclosure-parser/internal/common"
	"github.com/joseph-ayodele/foreclosure-parser/internal/core/consolidate"
	"github.com/joseph-ayodele/foreclosure-parser/internal/entity"
	"github.com/joseph-ayodele/foreclosure-parser/internal/ingest"
	"github.com/joseph-ayodele/foreclosure-parser/internal/pdftext"
)

type Config struct {
	Workers    int  // concurrent text extractions per folder; default 4
	StrictRead bool // a read/extract failure aborts the run
}

// RunResult is the outcome of one batch run.
type RunResult struct {
	RunID        string
	Records      []*entity.CaseRecord
	Stats        []consolidate.PassStats
	ReadFailures int
	Duration     time.Duration
}

// Processor drives the notice, judgment and affirmation passes of a batch run.
type Processor struct {
	logger    *slog.Logger
	extractor pdftext.TextExtractor
	cfg       Config
}

func NewProcessor(logger *slog.Logger, extractor pdftext.TextExtractor, cfg Config) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	return &Processor{logger: logger, extractor: extractor, cfg: cfg}
}

// Run reads every folder in processing order and consolidates the documents
// into one record per index number. Text extraction inside a folder is
// concurrent; consolidation is sequential in lexical document order.
func (p *Processor) Run(ctx context.Context, sources map[constants.DocumentKind]ingest.Source) (*RunResult, error) {
	start := time.Now()
	runID := uuid.NewString()
	ctx = common.WithRunID(ctx, runID)
	logger := p.logger.With("run_id", runID)

	c := consolidate.New(logger)
	res := &RunResult{RunID: runID}

	for _, kind := range constants.ProcessingOrder {
		src, ok := sources[kind]
		if !ok || src == nil {
			logger.Warn("processor.folder.missing", "kind", kind)
			continue
		}
		docs, stats, err := src.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list %s folder: %w", kind, err)
		}
		logger.Info("processor.folder.start",
			"kind", kind,
			"location", src.Location(),
			"documents", len(docs),
			"scanned", stats.Scanned,
			"skipped", stats.Skipped,
		)

		texts, failed, err := p.readAll(ctx, src, docs)
		if err != nil {
			return nil, err
		}
		res.ReadFailures += failed

		for i, doc := range docs {
			if texts[i] == nil {
				continue
			}
			c.Add(kind, doc.Name, *texts[i])
		}
	}

	res.Records = c.Records()
	res.Stats = c.Stats()
	res.Duration = time.Since(start)
	logger.Info("processor.run.done",
		"cases", len(res.Records),
		"read_failures", res.ReadFailures,
		"elapsed_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}

// readAll loads and extracts docs concurrently. texts[i] is nil for a
// document that failed in non-strict mode.
func (p *Processor) readAll(ctx context.Context, src ingest.Source, docs []ingest.Document) ([]*string, int, error) {
	logger := p.logger.With("run_id", common.RunIDFromContext(ctx))
	texts := make([]*string, len(docs))
	failures := make([]bool, len(docs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.Workers)
	for i := range docs {
		g.Go(func() error {
			doc := &docs[i]
			text, err := p.readOne(gctx, logger, src, doc)
			if err != nil {
				if p.cfg.StrictRead {
					return fmt.Errorf("read %s: %w", doc.Location, err)
				}
				logger.Warn("processor.read.skipped", "file", doc.Name, "kind", doc.Kind, "error", err)
				failures[i] = true
				return nil
			}
			texts[i] = &text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	failed := 0
	for _, f := range failures {
		if f {
			failed++
		}
	}
	return texts, failed, nil
}

func (p *Processor) readOne(ctx context.Context, logger *slog.Logger, src ingest.Source, doc *ingest.Document) (string, error) {
	if err := src.Load(ctx, doc); err != nil {
		return "", err
	}
	res, err := p.extractor.Extract(ctx, doc.Name, doc.Content)
	doc.Content = nil // text is all we keep
	if err != nil {
		return "", err
	}
	for _, w := range res.Warnings {
		logger.Debug("processor.extract.warning", "file", doc.Name, "warning", w)
	}
	return res.Text, nil
}
