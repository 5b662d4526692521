package lodging

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"travel-assistant/internal/models"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// maxHotels caps the number of recommendations per request.
const maxHotels = 5

const (
	fallbackRating   = "N/A"
	fallbackCategory = "Hotel"
)

// ServiceInterface retrieves lodging recommendations near a coordinate.
type ServiceInterface interface {
	NearbyHotels(ctx context.Context, at models.Coordinates) ([]models.Hotel, error)
}

// Service is a client for a places-search API. Rating order is delegated to
// the provider's own sort parameter.
type Service struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  *zap.Logger
}

// NewService creates a new lodging service.
func NewService(baseURL, apiKey string, client *http.Client, logger *zap.Logger) *Service {
	return &Service{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  client,
		logger:  logger,
	}
}

type searchResponse struct {
	Results []venue `json:"results"`
}

type venue struct {
	Name     string  `json:"name"`
	Rating   float64 `json:"rating"`
	Location struct {
		FormattedAddress string `json:"formatted_address"`
	} `json:"location"`
	Categories []struct {
		Name string `json:"name"`
	} `json:"categories"`
	Website string `json:"website"`
	Link    string `json:"link"`
}

// NearbyHotels returns up to maxHotels venues around the given coordinates,
// ranked by the provider. Missing ratings render as "N/A" and missing
// categories as "Hotel".
func (s *Service) NearbyHotels(ctx context.Context, at models.Coordinates) ([]models.Hotel, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/v3/places/search", nil)
	if err != nil {
		return nil, fmt.Errorf("lodging: build request: %w", err)
	}

	q := req.URL.Query()
	q.Set("ll", fmt.Sprintf("%f,%f", at.Lat, at.Lon))
	q.Set("query", "hotel")
	q.Set("sort", "RATING")
	q.Set("limit", strconv.Itoa(maxHotels))
	req.URL.RawQuery = q.Encode()

	req.Header.Set("Authorization", s.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("lodging: search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.logger.Warn("places search failed", zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("lodging: search: unexpected status %d", resp.StatusCode)
	}

	var decoded searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("lodging: decode response: %w", err)
	}

	results := lo.Subset(decoded.Results, 0, maxHotels)
	hotels := lo.Map(results, func(v venue, _ int) models.Hotel {
		return models.Hotel{
			Name:     v.Name,
			Rating:   ratingText(v.Rating),
			Address:  v.Location.FormattedAddress,
			Category: categoryText(v.Categories),
			Link:     s.venueLink(v),
		}
	})

	return hotels, nil
}

func ratingText(rating float64) string {
	if rating <= 0 {
		return fallbackRating
	}
	return strconv.FormatFloat(rating, 'f', 1, 64)
}

func categoryText(categories []struct {
	Name string `json:"name"`
}) string {
	if len(categories) == 0 || categories[0].Name == "" {
		return fallbackCategory
	}
	return categories[0].Name
}

// venueLink prefers the venue's own website; otherwise the provider link,
// resolved against the API base when it is a relative path.
func (s *Service) venueLink(v venue) string {
	if v.Website != "" {
		return v.Website
	}
	if v.Link == "" {
		return ""
	}
	if strings.HasPrefix(v.Link, "http") {
		return v.Link
	}
	return s.baseURL + v.Link
}
