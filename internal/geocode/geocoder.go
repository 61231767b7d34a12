package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/sassil1/petmap/internal/models"
)

const (
	// DefaultBaseURL is the Nominatim search endpoint.
	DefaultBaseURL = "https://nominatim.openstreetmap.org/search"

	// DefaultRegion is appended to every query to anchor results.
	DefaultRegion = "Montgomery County, MD"

	// DefaultPacing keeps lookups under the public Nominatim policy of at
	// most one request per second.
	DefaultPacing = 1100 * time.Millisecond

	userAgent = "petmap/1.0 (+https://github.com/sassil1/petmap)"
)

// Geocoder resolves a free-text address to a coordinate. Lookups are paced
// by a token bucket owned by the geocoder, so concurrent callers are
// serialized safely; cache hits bypass both the bucket and the network.
// Every failure mode degrades to "no result" — Resolve never errors.
type Geocoder struct {
	store      Store
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	region     string
	pacing     time.Duration
	logger     zerolog.Logger
}

// Option customizes a Geocoder.
type Option func(*Geocoder)

// WithBaseURL overrides the search endpoint.
func WithBaseURL(u string) Option {
	return func(g *Geocoder) { g.baseURL = u }
}

// WithRegion overrides the region qualifier appended to queries. An empty
// region disables the qualifier.
func WithRegion(region string) Option {
	return func(g *Geocoder) { g.region = region }
}

// WithPacing overrides the minimum interval between network lookups.
func WithPacing(d time.Duration) Option {
	return func(g *Geocoder) {
		if d > 0 {
			g.pacing = d
		}
	}
}

// WithHTTPClient overrides the HTTP client, including its timeout.
func WithHTTPClient(c *http.Client) Option {
	return func(g *Geocoder) {
		if c != nil {
			g.httpClient = c
		}
	}
}

// NewGeocoder builds a geocoder over the given cache store.
func NewGeocoder(store Store, logger zerolog.Logger, opts ...Option) *Geocoder {
	g := &Geocoder{
		store:      store,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    DefaultBaseURL,
		region:     DefaultRegion,
		pacing:     DefaultPacing,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(g)
	}

	g.limiter = rate.NewLimiter(rate.Every(g.pacing), 1)
	// Drain the initial token so the very first miss also waits out the
	// pacing interval.
	g.limiter.Allow()

	return g
}

// Resolve maps addressText to a coordinate. It returns false for blank
// input, lookup failures of any kind, and results that do not parse to a
// finite in-range coordinate. Successful lookups are written to the cache
// under the original address text.
func (g *Geocoder) Resolve(ctx context.Context, addressText string) (models.Coordinate, bool) {
	addressText = strings.TrimSpace(addressText)
	if addressText == "" {
		return models.Coordinate{}, false
	}

	if coord, ok := g.store.Get(ctx, addressText); ok {
		return coord, true
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return models.Coordinate{}, false
	}

	coord, err := g.lookup(ctx, addressText)
	if err != nil {
		g.logger.Debug().Err(err).Str("address", addressText).Msg("Geocode lookup failed")
		return models.Coordinate{}, false
	}

	g.store.Put(ctx, addressText, coord)
	g.logger.Debug().
		Str("address", addressText).
		Float64("lat", coord.Latitude).
		Float64("lon", coord.Longitude).
		Msg("Address geocoded")

	return coord, true
}

type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// lookup issues a single search request for the region-qualified address.
func (g *Geocoder) lookup(ctx context.Context, addressText string) (models.Coordinate, error) {
	query := addressText
	if g.region != "" {
		query = addressText + ", " + g.region
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "1")
	params.Set("accept-language", "en")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return models.Coordinate{}, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return models.Coordinate{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return models.Coordinate{}, fmt.Errorf("status %d", resp.StatusCode)
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return models.Coordinate{}, err
	}
	if len(results) == 0 {
		return models.Coordinate{}, errors.New("no results")
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return models.Coordinate{}, fmt.Errorf("latitude %q: %w", results[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return models.Coordinate{}, fmt.Errorf("longitude %q: %w", results[0].Lon, err)
	}

	coord := models.Coordinate{Latitude: lat, Longitude: lon}
	if !coord.Valid() {
		return models.Coordinate{}, fmt.Errorf("coordinate out of range: %v, %v", lat, lon)
	}

	return coord, nil
}
