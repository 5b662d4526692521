package models

// Coordinates is a geographic point resolved by the geocoding provider.
// It is request-scoped and never persisted.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// RouteStep is a single maneuver along the route, in travel order.
type RouteStep struct {
	Name            string  `json:"name"`
	Instruction     string  `json:"instruction"`
	DistanceMeters  float64 `json:"distance_meters"`
	DurationSeconds float64 `json:"duration_seconds"`
}

// RouteSummary is the successful output of the directions provider.
// PlacesAlongRoute contains only steps that carry a named road or path;
// unnamed steps still contribute their instruction to DirectionsJoined.
type RouteSummary struct {
	DurationText     string      `json:"duration_text"`
	DistanceText     string      `json:"distance_text"`
	DirectionsJoined string      `json:"directions"`
	PlacesAlongRoute []RouteStep `json:"places_along_route"`
	MapURL           string      `json:"map_url"`
}

// PopularPlace is one notable/tourist place near the destination.
type PopularPlace struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// HistoricalInfo is a prose historical summary of the destination with a
// canonical source link. A nil value means the lookup failed or found
// nothing; the aggregate treats that as a degraded, non-fatal result.
type HistoricalInfo struct {
	Summary string `json:"summary"`
	Source  string `json:"source"`
}

// Hotel is one lodging recommendation near the destination.
// Rating falls back to "N/A" and Category to "Hotel" when the provider
// supplies none.
type Hotel struct {
	Name     string `json:"name"`
	Rating   string `json:"rating"`
	Address  string `json:"address"`
	Category string `json:"category"`
	Link     string `json:"link"`
}

// TravelPlan is the aggregate built once per request. It is only
// constructed when both coordinate lookups and the routing call succeed;
// the three auxiliary fields independently default to empty/nil on failure.
type TravelPlan struct {
	Duration         string          `json:"duration"`
	Distance         string          `json:"distance"`
	Directions       string          `json:"directions"`
	PlacesAlongRoute []RouteStep     `json:"places_along_route"`
	PopularPlaces    []PopularPlace  `json:"popular_places"`
	HistoricalInfo   *HistoricalInfo `json:"historical_info"`
	Hotels           []Hotel         `json:"hotels"`
	MapURL           string          `json:"map_url"`
	GoogleMapsURL    string          `json:"google_maps_url"`
}

// PlanRequest is the input to the travel aggregator, either from the
// REST endpoint or from the LLM tool-calling layer. An empty TravelMode
// falls back to the first configured mode.
type PlanRequest struct {
	Origin      string `json:"origin" validate:"required"`
	Destination string `json:"destination" validate:"required"`
	TravelMode  string `json:"travel_mode,omitempty"`
}
