package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joseph-ayodele/foreclosure-parser/constants"
	"github.com/joseph-ayodele/foreclosure-parser/internal/common"
	"github.com/joseph-ayodele/foreclosure-parser/internal/core"
	"github.com/joseph-ayodele/foreclosure-parser/internal/export"
	"github.com/joseph-ayodele/foreclosure-parser/internal/ingest"
	"github.com/joseph-ayodele/foreclosure-parser/internal/pdftext"
	repo "github.com/joseph-ayodele/foreclosure-parser/internal/repository"
	"github.com/joseph-ayodele/foreclosure-parser/internal/server"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		configPath   = flag.String("config", "", "TOML config file (default foreclosure.toml)")
		notices      = flag.String("notices", "", "notice folder or s3://bucket/prefix")
		judgments    = flag.String("judgments", "", "judgment folder or s3://bucket/prefix")
		affirmations = flag.String("affirmations", "", "affirmation folder or s3://bucket/prefix")
		out          = flag.String("out", "", "output file (.csv, .xlsx or .jsonl)")
		method       = flag.String("method", "", "pdf text method: auto, native, pdftotext, docconv")
		workers      = flag.Int("workers", 0, "concurrent PDF reads per folder")
		lenient      = flag.Bool("lenient", false, "skip unreadable PDFs instead of aborting")
		recursive    = flag.Bool("recursive", false, "descend into sub-folders")
		dsn          = flag.String("db", "", "also save cases to this database (postgres:// URL or SQLite path)")
		prompt       = flag.Bool("prompt", false, "ask for each folder and the output path")
	)
	flag.Parse()

	cfg, err := common.LoadConfig(*configPath)
	if err != nil {
		printError("Error: %v\n", err)
		os.Exit(2)
	}
	overrideString(&cfg.Input.NoticeDir, *notices)
	overrideString(&cfg.Input.JudgmentDir, *judgments)
	overrideString(&cfg.Input.AffirmationDir, *affirmations)
	overrideString(&cfg.Output.Path, *out)
	overrideString(&cfg.PDF.Method, *method)
	overrideString(&cfg.Database.DSN, *dsn)
	if *workers > 0 {
		cfg.PDF.Workers = *workers
	}
	if *lenient {
		cfg.PDF.StrictRead = false
	}
	if *recursive {
		cfg.Input.Recursive = true
	}
	if *prompt {
		promptPaths(os.Stdin, os.Stdout, cfg)
	}
	if err := cfg.Validate(); err != nil {
		printError("Error: %v\n", err)
		os.Exit(2)
	}

	logger := common.NewLogger(cfg.SlogLevel(), os.Stdout)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := run(ctx, cfg, logger)
	if err != nil {
		logger.Error("batch run failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("Batch processing complete!\n")
	fmt.Printf("- Cases parsed: %d\n", len(res.Records))
	for _, st := range res.Stats {
		fmt.Printf("- %s documents: %d seen, %d applied, %d skipped\n", st.Kind, st.Seen, st.Applied, st.Skipped)
	}
	if res.ReadFailures > 0 {
		fmt.Printf("- Unreadable PDFs skipped: %d\n", res.ReadFailures)
	}
	fmt.Printf("- Output: %s\n", cfg.Output.Path)
}

// run performs one batch: read the three folders, consolidate, write the output
// file and, when a DSN is configured, upsert the cases into the case store.
func run(ctx context.Context, cfg *common.Config, logger *slog.Logger) (*core.RunResult, error) {
	if err := ingest.EnsureDirs(cfg.Input.NoticeDir, cfg.Input.JudgmentDir, cfg.Input.AffirmationDir); err != nil {
		return nil, err
	}

	opts := ingest.Options{
		Recursive:  cfg.Input.Recursive,
		SkipHidden: cfg.Input.SkipHidden,
		AWS: ingest.AWSOptions{
			Region:    cfg.AWS.Region,
			AccessKey: cfg.AWS.AccessKey,
			SecretKey: cfg.AWS.SecretKey,
		},
	}
	locations := map[constants.DocumentKind]string{
		constants.KindNotice:      cfg.Input.NoticeDir,
		constants.KindJudgment:    cfg.Input.JudgmentDir,
		constants.KindAffirmation: cfg.Input.AffirmationDir,
	}
	sources := make(map[constants.DocumentKind]ingest.Source, len(locations))
	for kind, loc := range locations {
		src, err := ingest.Open(ctx, loc, kind, opts)
		if err != nil {
			return nil, fmt.Errorf("open %s folder: %w", kind, err)
		}
		sources[kind] = src
	}

	extractor := pdftext.NewExtractor(pdftext.Config{
		Method:    cfg.PDF.Method,
		Pdftotext: cfg.PDF.Pdftotext,
		Timeout:   cfg.PDF.Timeout,
	}, logger)
	processor := core.NewProcessor(logger, extractor, core.Config{
		Workers:    cfg.PDF.Workers,
		StrictRead: cfg.PDF.StrictRead,
	})

	res, err := processor.Run(ctx, sources)
	if err != nil {
		return nil, err
	}

	exportService, err := export.NewService(logger)
	if err != nil {
		return nil, err
	}
	if err := exportService.WriteFile(ctx, cfg.Output.Path, res.Records); err != nil {
		return nil, err
	}

	if cfg.Database.DSN != "" {
		if err := saveCases(ctx, cfg.Database, res, logger); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func saveCases(ctx context.Context, dbCfg common.DatabaseConfig, res *core.RunResult, logger *slog.Logger) error {
	db, err := server.ConnectDB(ctx, dbCfg, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := server.PingDB(ctx, db, logger, 5*time.Second); err != nil {
		return err
	}
	return repo.NewCaseRepository(db, logger).SaveCases(ctx, res.RunID, res.Records)
}

func overrideString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
