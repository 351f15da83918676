package nyc

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/joseph-ayodele/foreclosure-parser/constants"
	"github.com/joseph-ayodele/foreclosure-parser/internal/common"
)

// GeoclientConfig configures the NYC Geoclient v2 address endpoint.
type GeoclientConfig struct {
	BaseURL         string
	SubscriptionKey string
	Timeout         time.Duration
}

// Geoclient resolves street addresses to borough/block/lot identifiers.
type Geoclient struct {
	baseURL string
	key     string
	client  *http.Client
	logger  *slog.Logger
}

func NewGeoclient(cfg GeoclientConfig, logger *slog.Logger) *Geoclient {
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Geoclient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		key:     cfg.SubscriptionKey,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// BBL is a borough/block/lot tax identifier.
type BBL struct {
	Borough string `json:"borough"`
	Block   string `json:"block"`
	Lot     string `json:"lot"`
}

func (b BBL) String() string {
	return b.Borough + b.Block + b.Lot
}

// AddressParts is a free-form address split the way Geoclient expects it.
type AddressParts struct {
	HouseNumber string
	Street      string
	Borough     constants.Borough
}

var (
	commaRe   = regexp.MustCompile(`,`)
	stateRe   = regexp.MustCompile(`(?i)\b(?:NY|New York)\b`)
	zipRe     = regexp.MustCompile(`\b\d{5}\b`)
	ordinalRe = regexp.MustCompile(`(?i)(\d+)(?:st|nd|rd|th)\b`)

	boroughWords = map[string]constants.Borough{
		"manhattan": constants.Manhattan,
		"bronx":     constants.Bronx,
		"brooklyn":  constants.Brooklyn,
		"queens":    constants.Queens,
		"staten":    constants.StatenIsland,
	}
	boroughOrder = []string{"manhattan", "bronx", "brooklyn", "queens", "staten"}
	dropWords    = []string{"ny", "new", "york"}
)

// ParseAddress splits an address like "145-47 157 Street, Jamaica, NY 11434".
// The borough defaults to Queens when none is named.
func ParseAddress(address string) AddressParts {
	addr := strings.Join(strings.Fields(commaRe.ReplaceAllString(address, " ")), " ")

	borough := constants.Queens
	lower := strings.ToLower(addr)
	for _, w := range boroughOrder {
		if strings.Contains(lower, w) {
			borough = boroughWords[w]
			break
		}
	}

	addr = stateRe.ReplaceAllString(addr, "")
	addr = zipRe.ReplaceAllString(addr, "")
	tokens := strings.Fields(addr)

	var house string
	for _, t := range tokens {
		if t[0] >= '0' && t[0] <= '9' {
			house = t
			break
		}
	}

	var street []string
	for _, t := range tokens {
		lt := strings.ToLower(t)
		if t == house || slices.Contains(dropWords, lt) {
			continue
		}
		if _, ok := boroughWords[lt]; ok {
			continue
		}
		if borough == constants.StatenIsland && lt == "island" {
			continue
		}
		street = append(street, t)
	}

	return AddressParts{
		HouseNumber: house,
		Street:      ordinalRe.ReplaceAllString(strings.Join(street, " "), "$1"),
		Borough:     borough,
	}
}

type geoclientResponse struct {
	Address map[string]any `json:"address"`
}

// LookupBBL resolves an address to its BBL. A missing subscription key or an
// incomplete response is reported as common.ErrNotFound.
func (g *Geoclient) LookupBBL(ctx context.Context, address string) (*BBL, error) {
	if g.key == "" {
		g.logger.Warn("geoclient subscription key not set, BBL lookup disabled")
		return nil, common.NewAppError("GEOCLIENT_DISABLED", "geoclient subscription key not set", common.ErrNotFound)
	}

	parts := ParseAddress(address)
	q := url.Values{}
	q.Set("houseNumber", parts.HouseNumber)
	q.Set("street", parts.Street)
	q.Set("borough", string(parts.Borough))

	headers := map[string]string{
		"Ocp-Apim-Subscription-Key": g.key,
		"Cache-Control":             "no-cache",
	}

	var resp geoclientResponse
	if _, err := GetJSON(ctx, g.client, g.baseURL+"/address", q, headers, &resp, g.logger); err != nil {
		return nil, fmt.Errorf("geoclient address: %w", err)
	}

	bbl, ok := bblFromAddress(resp.Address)
	if !ok {
		g.logger.Info("geoclient returned no BBL", "house", parts.HouseNumber, "street", parts.Street, "borough", parts.Borough)
		return nil, common.NewAppError("BBL_NOT_FOUND", fmt.Sprintf("no BBL for %q", address), common.ErrNotFound)
	}
	return bbl, nil
}

func bblFromAddress(data map[string]any) (*BBL, bool) {
	full := str(data["bbl"])
	bbl := BBL{
		Borough: firstNonEmpty(str(data["bblBoroughCode"]), slice(full, 0, 1)),
		Block:   firstNonEmpty(str(data["bblTaxBlock"]), str(data["bblBlock"]), slice(full, 1, 6)),
		Lot:     firstNonEmpty(str(data["bblTaxLot"]), str(data["bblLot"]), slice(full, 6, len(full))),
	}
	if bbl.Borough == "" || bbl.Block == "" || bbl.Lot == "" {
		return nil, false
	}
	return &bbl, true
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func slice(s string, from, to int) string {
	if from >= len(s) {
		return ""
	}
	return s[from:min(to, len(s))]
}
