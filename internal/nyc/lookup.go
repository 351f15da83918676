package nyc

import (
	"context"
	"errors"
	"log/slog"

	"github.com/joseph-ayodele/foreclosure-parser/internal/common"
)

// Parcel is the due-diligence view of one address.
type Parcel struct {
	Address string         `json:"address"`
	BBL     BBL            `json:"bbl"`
	ID      string         `json:"bbl_id"`
	Summary []SummaryField `json:"summary"`
}

// Lookup chains Geoclient and PLUTO.
type Lookup struct {
	geo    *Geoclient
	pluto  *PlutoClient
	logger *slog.Logger
}

func NewLookup(cfg common.NYCConfig, logger *slog.Logger) *Lookup {
	if logger == nil {
		logger = slog.Default()
	}
	return &Lookup{
		geo: NewGeoclient(GeoclientConfig{
			BaseURL:         cfg.GeoclientURL,
			SubscriptionKey: cfg.GeoclientKey,
			Timeout:         cfg.Timeout,
		}, logger),
		pluto: NewPlutoClient(PlutoConfig{
			Endpoint: cfg.PlutoEndpoint,
			AppToken: cfg.SocrataAppToken,
			Timeout:  cfg.Timeout,
		}, logger),
		logger: logger,
	}
}

// Parcel resolves address to a BBL and attaches the PLUTO summary.
// A BBL without a PLUTO record yields a Parcel with an empty summary.
func (l *Lookup) Parcel(ctx context.Context, address string) (*Parcel, error) {
	bbl, err := l.geo.LookupBBL(ctx, address)
	if err != nil {
		return nil, err
	}
	p := &Parcel{Address: address, BBL: *bbl, ID: bbl.String()}

	row, err := l.pluto.Lot(ctx, p.ID)
	switch {
	case errors.Is(err, common.ErrNotFound):
		l.logger.Info("no PLUTO record", "bbl", p.ID)
		return p, nil
	case err != nil:
		return nil, err
	}
	p.Summary = Summarize(row)
	return p, nil
}
