package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"travel-assistant/internal/models"

	"go.uber.org/zap"
)

// ServiceInterface resolves free-text place names to coordinates.
type ServiceInterface interface {
	Lookup(ctx context.Context, place string) (models.Coordinates, error)
}

// Service is a client for a Nominatim-compatible geocoding API.
type Service struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewService creates a new geocoding service.
func NewService(baseURL string, client *http.Client, logger *zap.Logger) *Service {
	return &Service{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		logger:  logger,
	}
}

// searchResult is the subset of the geocoding response we care about.
// Nominatim returns lat/lon as strings.
type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Lookup resolves a place name to coordinates. An empty result set from the
// provider yields models.ErrPlaceNotFound; no retries are attempted.
func (s *Service) Lookup(ctx context.Context, place string) (models.Coordinates, error) {
	place = strings.TrimSpace(place)
	if place == "" {
		return models.Coordinates{}, models.ErrPlaceNotFound
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/search", nil)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("geo: build request: %w", err)
	}

	q := req.URL.Query()
	q.Set("q", place)
	q.Set("format", "json")
	q.Set("limit", "1")
	req.URL.RawQuery = q.Encode()

	// Nominatim's usage policy requires an identifying User-Agent.
	req.Header.Set("User-Agent", "travel-assistant/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("geo: search %q: %w", place, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Coordinates{}, fmt.Errorf("geo: search %q: unexpected status %d", place, resp.StatusCode)
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return models.Coordinates{}, fmt.Errorf("geo: decode response: %w", err)
	}

	if len(results) == 0 {
		s.logger.Warn("no geocode results", zap.String("place", place))
		return models.Coordinates{}, models.ErrPlaceNotFound
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("geo: parse latitude %q: %w", results[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("geo: parse longitude %q: %w", results[0].Lon, err)
	}

	return models.Coordinates{Lat: lat, Lon: lon}, nil
}
