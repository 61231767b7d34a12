// Package feed fetches raw records from the public open-data endpoints.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/sassil1/petmap/internal/models"
)

// Client downloads record sets from Socrata-style JSON endpoints. The
// endpoint returns one JSON array; a fixed record cap is requested through
// the $limit parameter, no pagination is attempted.
type Client struct {
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient wraps the given HTTP client. The caller controls transport
// tuning and the request timeout through it.
func NewClient(httpClient *http.Client, logger zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{httpClient: httpClient, logger: logger}
}

// Fetch retrieves up to limit records from url. Records are returned as
// opaque field→value mappings; no field is assumed to exist.
func (c *Client) Fetch(ctx context.Context, url string, limit int) ([]models.RawRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("feed: build request: %w", err)
	}
	if limit > 0 {
		q := req.URL.Query()
		q.Set("$limit", strconv.Itoa(limit))
		req.URL.RawQuery = q.Encode()
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("feed: fetch %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed: fetch %s: status %d", url, resp.StatusCode)
	}

	var records []models.RawRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("feed: decode response: %w", err)
	}

	c.logger.Debug().
		Str("url", url).
		Int("records", len(records)).
		Dur("duration", time.Since(start)).
		Msg("Feed fetched")

	return records, nil
}
