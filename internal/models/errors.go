package models

import "errors"

var (
	// ErrCoordinatesNotFound aborts the whole aggregation when either the
	// origin or the destination cannot be resolved. The text is user-facing
	// and returned verbatim in place of a plan.
	ErrCoordinatesNotFound = errors.New("Failed to get coordinates for origin or destination.")

	// ErrNoRoutes aborts the whole aggregation when the directions provider
	// returns zero routes. The text is user-facing.
	ErrNoRoutes = errors.New("No routes found. Please check the origin and destination.")

	// ErrPlaceNotFound is returned by the geocoding provider when a place
	// name yields an empty result set.
	ErrPlaceNotFound = errors.New("place not found")

	// ErrPageNotFound is returned by the knowledge provider when a search
	// yields no pages. Non-fatal to the aggregate.
	ErrPageNotFound = errors.New("no matching page found")

	// ErrUnsupportedTravelMode is returned when the requested travel mode is
	// not in the configured enumeration.
	ErrUnsupportedTravelMode = errors.New("unsupported travel mode")
)
