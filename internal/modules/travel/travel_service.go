package travel

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"travel-assistant/internal/models"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Geocoder resolves a free-text place name to coordinates.
type Geocoder interface {
	Lookup(ctx context.Context, place string) (models.Coordinates, error)
}

// DirectionsProvider retrieves a route between two coordinate pairs.
type DirectionsProvider interface {
	GetRoute(ctx context.Context, origin, destination models.Coordinates, mode string) (*models.RouteSummary, error)
}

// KnowledgeProvider retrieves notable places and historical background for
// a destination.
type KnowledgeProvider interface {
	PopularPlaces(ctx context.Context, destination string) ([]models.PopularPlace, error)
	HistoricalInfo(ctx context.Context, destination string) (*models.HistoricalInfo, error)
}

// HotelFinder retrieves lodging recommendations near a coordinate.
type HotelFinder interface {
	NearbyHotels(ctx context.Context, at models.Coordinates) ([]models.Hotel, error)
}

// ServiceInterface defines the contract for the travel aggregator.
type ServiceInterface interface {
	Plan(ctx context.Context, req models.PlanRequest) (*models.TravelPlan, error)
	PlanText(ctx context.Context, req models.PlanRequest) string
}

// Service orchestrates the four providers into one travel plan per request.
// Each Plan invocation is a one-shot pipeline with no retained state.
type Service struct {
	geocoder     Geocoder
	directions   DirectionsProvider
	knowledge    KnowledgeProvider
	hotels       HotelFinder
	allowedModes []string
	logger       *zap.Logger
}

// NewService creates a new travel aggregator. allowedModes must be
// non-empty; its first entry is the default travel mode.
func NewService(
	geocoder Geocoder,
	directions DirectionsProvider,
	knowledge KnowledgeProvider,
	hotels HotelFinder,
	allowedModes []string,
	logger *zap.Logger,
) *Service {
	return &Service{
		geocoder:     geocoder,
		directions:   directions,
		knowledge:    knowledge,
		hotels:       hotels,
		allowedModes: allowedModes,
		logger:       logger,
	}
}

// Plan resolves both endpoints, fans out to the four providers and merges
// their results. Coordinate resolution and routing failures are fatal; the
// three auxiliary lookups independently degrade to empty/nil.
func (s *Service) Plan(ctx context.Context, req models.PlanRequest) (*models.TravelPlan, error) {
	mode, err := s.resolveMode(req.TravelMode)
	if err != nil {
		return nil, err
	}

	// Phase 1: the two lookups have no ordering dependency between them.
	var wg sync.WaitGroup
	var origin, destination models.Coordinates
	var originErr, destErr error

	wg.Add(2)
	go func() {
		defer wg.Done()
		origin, originErr = s.geocoder.Lookup(ctx, req.Origin)
	}()
	go func() {
		defer wg.Done()
		destination, destErr = s.geocoder.Lookup(ctx, req.Destination)
	}()
	wg.Wait()

	if originErr != nil || destErr != nil {
		s.logger.Warn("coordinate resolution failed",
			zap.String("origin", req.Origin),
			zap.String("destination", req.Destination),
			zap.NamedError("origin_error", originErr),
			zap.NamedError("destination_error", destErr),
		)
		return nil, models.ErrCoordinatesNotFound
	}

	// Phase 2: result-collecting join. Each goroutine writes a disjoint
	// slot, so the merged plan is deterministic regardless of completion
	// order. The auxiliary calls are read-only, so no cancellation is
	// needed when routing fails.
	var (
		route      *models.RouteSummary
		routeErr   error
		places     []models.PopularPlace
		placesErr  error
		history    *models.HistoricalInfo
		historyErr error
		hotels     []models.Hotel
		hotelsErr  error
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		route, routeErr = s.directions.GetRoute(ctx, origin, destination, mode)
	}()
	go func() {
		defer wg.Done()
		places, placesErr = s.knowledge.PopularPlaces(ctx, req.Destination)
	}()
	go func() {
		defer wg.Done()
		history, historyErr = s.knowledge.HistoricalInfo(ctx, req.Destination)
	}()
	go func() {
		defer wg.Done()
		hotels, hotelsErr = s.hotels.NearbyHotels(ctx, destination)
	}()
	wg.Wait()

	if routeErr != nil {
		if errors.Is(routeErr, models.ErrNoRoutes) {
			return nil, models.ErrNoRoutes
		}
		return nil, fmt.Errorf("fetch route: %w", routeErr)
	}

	if placesErr != nil {
		s.logger.Warn("popular places lookup degraded", zap.Error(placesErr))
		places = nil
	}
	if historyErr != nil {
		s.logger.Warn("historical info lookup degraded", zap.Error(historyErr))
		history = nil
	}
	if hotelsErr != nil {
		s.logger.Warn("hotel lookup degraded", zap.Error(hotelsErr))
		hotels = nil
	}

	return &models.TravelPlan{
		Duration:         route.DurationText,
		Distance:         route.DistanceText,
		Directions:       route.DirectionsJoined,
		PlacesAlongRoute: route.PlacesAlongRoute,
		PopularPlaces:    places,
		HistoricalInfo:   history,
		Hotels:           hotels,
		MapURL:           route.MapURL,
		GoogleMapsURL:    googleMapsURL(origin, destination, mode),
	}, nil
}

// PlanText builds the plan and renders it as the chat reply text. Fatal
// failures come back as their plain-text explanation so the LLM layer can
// relay them verbatim.
func (s *Service) PlanText(ctx context.Context, req models.PlanRequest) string {
	plan, err := s.Plan(ctx, req)
	if err != nil {
		if errors.Is(err, models.ErrCoordinatesNotFound) ||
			errors.Is(err, models.ErrNoRoutes) ||
			errors.Is(err, models.ErrUnsupportedTravelMode) {
			return err.Error()
		}
		s.logger.Error("travel plan failed", zap.Error(err))
		return "Something went wrong while building the travel plan. Please try again."
	}
	return RenderPlan(req.Origin, req.Destination, plan)
}

// resolveMode validates the requested travel mode against the configured
// enumeration; an empty mode falls back to the first configured one.
func (s *Service) resolveMode(mode string) (string, error) {
	if strings.TrimSpace(mode) == "" {
		return s.allowedModes[0], nil
	}
	m := strings.ToLower(strings.TrimSpace(mode))
	if lo.Contains(s.allowedModes, m) {
		return m, nil
	}
	return "", fmt.Errorf("%w: %q (allowed: %s)",
		models.ErrUnsupportedTravelMode, mode, strings.Join(s.allowedModes, ", "))
}

// googleMapsURL builds the deep link into Google Maps directions.
func googleMapsURL(origin, destination models.Coordinates, mode string) string {
	// Google Maps calls the cycling mode "bicycling".
	travelMode := mode
	if travelMode == "cycling" {
		travelMode = "bicycling"
	}

	v := url.Values{}
	v.Set("api", "1")
	v.Set("origin", fmt.Sprintf("%f,%f", origin.Lat, origin.Lon))
	v.Set("destination", fmt.Sprintf("%f,%f", destination.Lat, destination.Lon))
	v.Set("travelmode", travelMode)
	return "https://www.google.com/maps/dir/?" + v.Encode()
}
