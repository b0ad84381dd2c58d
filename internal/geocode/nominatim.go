package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const DefaultEndpoint = "https://nominatim.openstreetmap.org"

// Nominatim looks up addresses against a Nominatim reverse-geocoding
// endpoint (the public OpenStreetMap instance by default).
type Nominatim struct {
	endpoint string
	client   *http.Client
}

func NewNominatim(endpoint string) *Nominatim {
	endpoint = strings.TrimRight(strings.TrimSpace(endpoint), "/")
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Nominatim{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

type reverseResponse struct {
	DisplayName string `json:"display_name"`
	Error       string `json:"error"`
}

func (n *Nominatim) Reverse(ctx context.Context, lat, lon float64) (string, error) {
	q := url.Values{}
	q.Set("format", "jsonv2")
	q.Set("lat", strconv.FormatFloat(lat, 'f', 6, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', 6, 64))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.endpoint+"/reverse?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}
	// Nominatim usage policy requires an identifying agent.
	req.Header.Set("User-Agent", "neogps/1.0")

	resp, err := n.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("geocode request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("geocode request failed: status %d", resp.StatusCode)
	}

	var rr reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&rr); err != nil {
		return "", fmt.Errorf("geocode response malformed: %w", err)
	}
	if rr.Error != "" {
		return "", fmt.Errorf("geocode: %s", rr.Error)
	}
	if rr.DisplayName == "" {
		return "", fmt.Errorf("geocode: no address for %.6f, %.6f", lat, lon)
	}
	return rr.DisplayName, nil
}
