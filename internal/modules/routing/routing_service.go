package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"travel-assistant/internal/models"
	"travel-assistant/pkg/format"

	"github.com/twpayne/go-polyline"
	"go.uber.org/zap"
)

// ServiceInterface retrieves a route between two coordinate pairs.
type ServiceInterface interface {
	GetRoute(ctx context.Context, origin, destination models.Coordinates, mode string) (*models.RouteSummary, error)
}

// Service is a client for an OSRM-compatible directions API.
type Service struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewService creates a new directions service.
func NewService(baseURL string, client *http.Client, logger *zap.Logger) *Service {
	return &Service{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		logger:  logger,
	}
}

// routeResponse is the subset of the OSRM route response we care about.
type routeResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
		Geometry string  `json:"geometry"`
		Legs     []struct {
			Steps []routeStep `json:"steps"`
		} `json:"legs"`
	} `json:"routes"`
}

type routeStep struct {
	Name     string  `json:"name"`
	Distance float64 `json:"distance"`
	Duration float64 `json:"duration"`
	Maneuver struct {
		Type     string `json:"type"`
		Modifier string `json:"modifier"`
	} `json:"maneuver"`
}

// GetRoute requests the provider's best route and flattens the first leg's
// maneuver steps. Steps with a named road go into PlacesAlongRoute; steps
// without a name still contribute their instruction to the joined
// directions string. Zero routes yield models.ErrNoRoutes.
func (s *Service) GetRoute(ctx context.Context, origin, destination models.Coordinates, mode string) (*models.RouteSummary, error) {
	endpoint := fmt.Sprintf("%s/route/v1/%s/%s,%s;%s,%s",
		s.baseURL, mode,
		formatCoord(origin.Lon), formatCoord(origin.Lat),
		formatCoord(destination.Lon), formatCoord(destination.Lat),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("routing: build request: %w", err)
	}

	q := req.URL.Query()
	q.Set("overview", "full")
	q.Set("steps", "true")
	req.URL.RawQuery = q.Encode()

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("routing: fetch route: %w", err)
	}
	defer resp.Body.Close()

	// OSRM signals "no route" with a non-200 status and a NoRoute code, so
	// decode the body before judging the status.
	var decoded routeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("routing: decode response (status %d): %w", resp.StatusCode, err)
	}

	if decoded.Code != "Ok" || len(decoded.Routes) == 0 {
		s.logger.Warn("no routes returned",
			zap.String("code", decoded.Code),
			zap.String("mode", mode),
		)
		return nil, models.ErrNoRoutes
	}

	route := decoded.Routes[0]
	if len(route.Legs) == 0 {
		return nil, models.ErrNoRoutes
	}

	var directions []string
	var places []models.RouteStep
	for _, step := range route.Legs[0].Steps {
		text := instruction(step)
		if text != "" {
			directions = append(directions, text)
		}
		if step.Name == "" {
			continue
		}
		places = append(places, models.RouteStep{
			Name:            step.Name,
			Instruction:     text,
			DistanceMeters:  step.Distance,
			DurationSeconds: step.Duration,
		})
	}

	return &models.RouteSummary{
		DurationText:     format.Minutes(route.Duration),
		DistanceText:     format.Kilometers(route.Distance),
		DirectionsJoined: strings.Join(directions, " -> "),
		PlacesAlongRoute: places,
		MapURL:           s.mapURL(route.Geometry),
	}, nil
}

// instruction builds a readable maneuver description from the step's
// maneuver type, modifier and road name.
func instruction(step routeStep) string {
	text := step.Maneuver.Type
	if step.Maneuver.Modifier != "" {
		text += " " + step.Maneuver.Modifier
	}
	if step.Name != "" {
		text += " onto " + step.Name
	}
	return strings.TrimSpace(text)
}

// mapURL decodes the overview polyline and derives a bounding-box link to
// an embeddable OpenStreetMap view of the whole route. Returns an empty
// string when the geometry cannot be decoded; the plan degrades without it.
func (s *Service) mapURL(geometry string) string {
	coords, _, err := polyline.DecodeCoords([]byte(geometry))
	if err != nil || len(coords) == 0 {
		if err != nil {
			s.logger.Warn("failed to decode route geometry", zap.Error(err))
		}
		return ""
	}

	minLat, maxLat := coords[0][0], coords[0][0]
	minLon, maxLon := coords[0][1], coords[0][1]
	for _, c := range coords[1:] {
		minLat = min(minLat, c[0])
		maxLat = max(maxLat, c[0])
		minLon = min(minLon, c[1])
		maxLon = max(maxLon, c[1])
	}

	return fmt.Sprintf(
		"https://www.openstreetmap.org/export/embed.html?bbox=%s,%s,%s,%s&layer=mapnik",
		formatCoord(minLon), formatCoord(minLat),
		formatCoord(maxLon), formatCoord(maxLat),
	)
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
