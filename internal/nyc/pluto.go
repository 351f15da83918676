package nyc

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/joseph-ayodele/foreclosure-parser/constants"
	"github.com/joseph-ayodele/foreclosure-parser/internal/common"
)

// DefaultPlutoEndpoint is the NYC Open Data PLUTO dataset.
const DefaultPlutoEndpoint = "https://data.cityofnewyork.us/resource/64uk-42ks.json"

type PlutoConfig struct {
	Endpoint string
	AppToken string
	Timeout  time.Duration
}

// PlutoClient reads tax-lot attributes from the Socrata PLUTO dataset.
type PlutoClient struct {
	endpoint string
	appToken string
	client   *http.Client
	logger   *slog.Logger
}

func NewPlutoClient(cfg PlutoConfig, logger *slog.Logger) *PlutoClient {
	if logger == nil {
		logger = slog.Default()
	}
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultPlutoEndpoint
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &PlutoClient{
		endpoint: endpoint,
		appToken: cfg.AppToken,
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

// Lot returns the first PLUTO row for bbl.
func (p *PlutoClient) Lot(ctx context.Context, bbl string) (map[string]any, error) {
	if strings.TrimSpace(bbl) == "" {
		return nil, common.NewAppError("INVALID_BBL", "bbl is required", common.ErrInvalidInput)
	}
	headers := map[string]string{}
	if p.appToken != "" {
		headers["X-App-Token"] = p.appToken
	}

	var rows []map[string]any
	if _, err := GetJSON(ctx, p.client, p.endpoint, url.Values{"bbl": {bbl}}, headers, &rows, p.logger); err != nil {
		return nil, fmt.Errorf("pluto lookup: %w", err)
	}
	if len(rows) == 0 {
		return nil, common.NewAppError("PLUTO_NOT_FOUND", fmt.Sprintf("no PLUTO record for bbl %s", bbl), common.ErrNotFound)
	}
	return rows[0], nil
}

// SummaryField is one labelled PLUTO attribute.
type SummaryField struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Summarize picks the due-diligence attributes from a PLUTO row, in display order.
// Missing attributes render as constants.NotAvailable; the owner name is masked.
func Summarize(row map[string]any) []SummaryField {
	if len(row) == 0 {
		return nil
	}
	get := func(k string) string { return strings.TrimSpace(str(row[k])) }

	var zoning []string
	for _, k := range []string{"zoningdist1", "zoningdist2", "zoningdist3", "zoningdist4"} {
		if z := get(k); z != "" {
			zoning = append(zoning, z)
		}
	}

	fields := []SummaryField{
		{"Building Class", get("bldgclass")},
		{"Land Use", get("landuse")},
		{"Year Built", get("yearbuilt")},
		{"Stories", get("numfloors")},
		{"Residential Units", get("unitsres")},
		{"Lot Area (sqft)", get("lotarea")},
		{"Building Area (sqft)", get("bldgarea")},
		{"Zoning", strings.Join(zoning, " / ")},
		{"Built FAR", get("builtfar")},
		{"Max FAR", get("maxfar")},
		{"Neighborhood (NTA)", get("nta")},
		{"School District", get("schooldist")},
		{"Condo #", get("condono")},
		{"Owner (masked)", MaskOwner(get("ownername"))},
	}
	for i := range fields {
		if fields[i].Value == "" {
			fields[i].Value = constants.NotAvailable
		}
	}
	return fields
}

// MaskOwner keeps the first two characters of an owner name.
func MaskOwner(name string) string {
	if name == "" {
		return ""
	}
	r := []rune(name)
	return string(r[:min(2, len(r))]) + "***"
}
