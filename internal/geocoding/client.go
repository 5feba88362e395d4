// Package geocoding resolves free-text addresses to coordinates through the
// Nominatim search API. Resolution is best effort: every failure mode
// (timeout, transport error, bad status, malformed body, empty result set,
// open circuit) collapses to "no result" and is only logged. Callers must
// treat a nil result as a normal outcome.
package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"

	"github.com/devsdeimpacto/coleta-service/internal/config"
)

type Coordinates struct {
	Latitude  float64
	Longitude float64
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	cb         *gobreaker.CircuitBreaker
	log        zerolog.Logger
}

func NewClient(cfg config.GeocodingConfig, log zerolog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		userAgent:  cfg.UserAgent,
		cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "geocoding",
			MaxRequests: 3,
			Interval:    30 * time.Second,
			Timeout:     10 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
				return counts.Requests >= 5 && failureRatio >= 0.6
			},
		}),
		log: log,
	}
}

// nominatimResult is the subset of the search response we care about.
// Coordinates come back as strings.
type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Resolve returns the coordinates for an address, or nil when the address
// could not be resolved for any reason.
func (c *Client) Resolve(ctx context.Context, address string) *Coordinates {
	result, err := c.cb.Execute(func() (interface{}, error) {
		return c.search(ctx, address)
	})
	if err != nil {
		c.log.Warn().Err(err).Str("endereco", address).Msg("geocoding failed")
		return nil
	}
	coords, ok := result.(*Coordinates)
	if !ok || coords == nil {
		c.log.Warn().Str("endereco", address).Msg("no coordinates found for address")
		return nil
	}
	return coords
}

func (c *Client) search(ctx context.Context, address string) (*Coordinates, error) {
	query := url.Values{}
	query.Set("q", address)
	query.Set("format", "json")
	query.Set("limit", "1")
	query.Set("addressdetails", "0")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoding status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var results []nominatimResult
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("malformed latitude %q", results[0].Lat)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("malformed longitude %q", results[0].Lon)
	}

	return &Coordinates{Latitude: lat, Longitude: lon}, nil
}
