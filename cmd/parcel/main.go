package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/joseph-ayodele/foreclosure-parser/internal/common"
	"github.com/joseph-ayodele/foreclosure-parser/internal/nyc"
)

func main() {
	address := flag.String("address", "", `street address, e.g. "145-47 157 Street, Jamaica, NY 11434"`)
	flag.Parse()
	if *address == "" {
		fmt.Fprintln(os.Stderr, "Error: -address is required")
		os.Exit(2)
	}

	cfg, err := common.LoadConfig("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}
	if cfg.NYC.SocrataAppToken == "" {
		fmt.Fprintln(os.Stderr, "Set SOCRATA_APP_TOKEN for higher NYC Open Data rate limits.")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	lookup := nyc.NewLookup(cfg.NYC, common.NewCLILogger(cfg.SlogLevel(), os.Stderr))
	p, err := lookup.Parcel(ctx, *address)
	if errors.Is(err, common.ErrNotFound) {
		fmt.Println("BBL not found via Geoclient (check key); cannot fetch PLUTO.")
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "lookup: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("BBL: %s  (Boro=%s, Block=%s, Lot=%s)\n", p.ID, p.BBL.Borough, p.BBL.Block, p.BBL.Lot)
	fmt.Println("\nPLUTO summary:")
	if len(p.Summary) == 0 {
		fmt.Println(" - No PLUTO record found.")
	}
	for _, f := range p.Summary {
		fmt.Printf(" - %s: %s\n", f.Label, f.Value)
	}
}
