package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"field-service/internal/config"
)

type reverseGeocodeResponse struct {
	DisplayName string `json:"display_name"`
}

// GeocoderClient resolves coordinates to place names through a
// Nominatim-compatible reverse endpoint.
type GeocoderClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewGeocoderClient(cfg *config.Config) *GeocoderClient {
	return &GeocoderClient{
		baseURL: cfg.Geocoder.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Geocoder.Timeout,
		},
	}
}

// Resolve returns a human-readable label for the coordinate. Transient
// network errors are retried with a short backoff.
func (c *GeocoderClient) Resolve(ctx context.Context, lat, lng float64) (string, error) {
	if c.baseURL == "" {
		return "", fmt.Errorf("geocoder URL is not configured")
	}

	u, err := url.Parse(c.baseURL + "/reverse")
	if err != nil {
		return "", fmt.Errorf("invalid geocoder URL: %w", err)
	}

	q := u.Query()
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lng, 'f', -1, 64))
	q.Set("format", "json")
	u.RawQuery = q.Encode()

	var resp *http.Response
	var lastErr error
	maxRetries := 3
	for attempt := 0; attempt < maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return "", fmt.Errorf("failed to create request: %w", err)
		}

		resp, lastErr = c.httpClient.Do(req)
		if lastErr == nil {
			break
		}
		if attempt == maxRetries-1 {
			return "", fmt.Errorf("failed to execute request after %d attempts: %w", maxRetries, lastErr)
		}
		time.Sleep(time.Duration(attempt+1) * 500 * time.Millisecond)
	}
	if resp == nil {
		return "", fmt.Errorf("failed to execute request: %w", lastErr)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("geocoder returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed reverseGeocodeResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	return parsed.DisplayName, nil
}
