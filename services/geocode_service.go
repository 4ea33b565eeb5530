package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const geocodeTimeout = 20 * time.Second

// ReverseGeocodeResult is the place info derived from a coordinate lookup.
type ReverseGeocodeResult struct {
	Country string
	// Name is the geocoder's short place name, used as a fallback title when
	// recognition produced none.
	Name string
}

// nominatimReverseResponse is shaped for the jsonv2 reverse payload.
type nominatimReverseResponse struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Address     struct {
		City        string `json:"city"`
		Town        string `json:"town"`
		Village     string `json:"village"`
		Country     string `json:"country"`
		CountryCode string `json:"country_code"`
	} `json:"address"`
}

// GeocodeService resolves coordinates to an address via the Nominatim
// reverse endpoint. Lookups are best-effort enrichment: callers treat any
// returned error as "no country, no fallback title".
type GeocodeService struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewGeocodeService(logger *zap.Logger) *GeocodeService {
	return &GeocodeService{
		baseURL:    "https://nominatim.openstreetmap.org",
		userAgent:  "SnapHistory/1.0 (support@snaphistory.app)",
		httpClient: &http.Client{Timeout: geocodeTimeout},
		logger:     logger,
	}
}

// Reverse looks up the address for a coordinate pair.
func (s *GeocodeService) Reverse(ctx context.Context, lat, lon float64) (*ReverseGeocodeResult, error) {
	params := url.Values{}
	params.Set("lat", fmt.Sprintf("%f", lat))
	params.Set("lon", fmt.Sprintf("%f", lon))
	params.Set("format", "jsonv2")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/reverse?%s", s.baseURL, params.Encode()), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("reverse geocode: unexpected status %s", resp.Status)
	}

	var payload nominatimReverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	result := &ReverseGeocodeResult{Country: payload.Address.Country, Name: payload.Name}
	if result.Name == "" && payload.DisplayName != "" {
		// First comma-delimited segment of the display name.
		result.Name = strings.TrimSpace(strings.SplitN(payload.DisplayName, ",", 2)[0])
	}
	return result, nil
}
