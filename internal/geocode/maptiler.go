// Package geocode resolves free-text locations to map coordinates via the
// MapTiler geocoding API.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://api.maptiler.com/geocoding"

// Point is a WGS84 coordinate pair, longitude first (GeoJSON order).
type Point struct {
	Longitude float64
	Latitude  float64
}

type Client struct {
	HTTPClient *http.Client
	BaseURL    string
	Key        string
}

// NewClient builds a geocoding client. An empty key disables geocoding:
// Forward then reports no result instead of failing.
func NewClient(key string) *Client {
	return &Client{
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		BaseURL:    defaultBaseURL,
		Key:        key,
	}
}

type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// Forward geocodes a free-text location. Returns (nil, nil) when the service
// has no match or the client has no key; the campground is then stored
// without coordinates rather than rejected.
func (c *Client) Forward(ctx context.Context, query string) (*Point, error) {
	if c == nil || c.Key == "" {
		return nil, nil
	}

	u := fmt.Sprintf("%s/%s.json?key=%s&limit=1", c.BaseURL, url.PathEscape(query), url.QueryEscape(c.Key))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocode: unexpected status %d", resp.StatusCode)
	}

	var out geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("geocode decode: %w", err)
	}
	if len(out.Features) == 0 || len(out.Features[0].Geometry.Coordinates) < 2 {
		return nil, nil
	}

	coords := out.Features[0].Geometry.Coordinates
	return &Point{Longitude: coords[0], Latitude: coords[1]}, nil
}
