package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joseph-ayodele/foreclosure-parser/constants"
	"github.com/joseph-ayodele/foreclosure-parser/internal/common"
	"github.com/joseph-ayodele/foreclosure-parser/internal/core/fields"
	"github.com/joseph-ayodele/foreclosure-parser/internal/pdftext"
)

func main() {
	var (
		file   = flag.String("file", "", "path to a PDF (required)")
		method = flag.String("method", "", "auto, native, pdftotext, docconv (default from config)")
		raw    = flag.Bool("raw", false, "print extracted text without normalization")
	)
	flag.Parse()
	if *file == "" {
		fmt.Fprintln(os.Stderr, "usage: pdftext -file notice.pdf [-method native] [-raw]")
		os.Exit(2)
	}

	cfg, err := common.LoadConfig("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}
	if *method != "" {
		cfg.PDF.Method = *method
	}

	content, err := os.ReadFile(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read: %v\n", err)
		os.Exit(1)
	}

	logger := common.NewCLILogger(cfg.SlogLevel(), os.Stderr)
	ex := pdftext.NewExtractor(pdftext.Config{
		Method:    cfg.PDF.Method,
		Pdftotext: cfg.PDF.Pdftotext,
		Timeout:   cfg.PDF.Timeout,
	}, logger)

	res, err := ex.Extract(context.Background(), filepath.Base(*file), content)
	if err != nil {
		fmt.Fprintf(os.Stderr, "extract: %v\n", err)
		os.Exit(1)
	}

	text := res.Text
	if !*raw {
		text = fields.Normalize(text)
	}
	index, ok := fields.ExtractIndex(fields.Normalize(res.Text))
	if !ok {
		index = constants.NotAvailable
	}

	fmt.Printf("method=%s pages=%d chars=%d elapsed=%s\n", res.Method, res.Pages, len(text), res.Duration)
	for _, w := range res.Warnings {
		fmt.Printf("warning: %s\n", w)
	}
	fmt.Printf("index=%s\n\n", index)
	fmt.Println(text)
}
