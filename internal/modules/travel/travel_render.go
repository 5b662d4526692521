package travel

import (
	"fmt"
	"strings"
	"travel-assistant/internal/models"

	"github.com/samber/lo"
)

// maxDisplayedPlaces caps the places-along-route list in the rendered text,
// even when the route discovered more internally.
const maxDisplayedPlaces = 5

const noHistoryText = "No historical information available."

// RenderPlan turns the aggregate into the human-readable text block handed
// back to the chat layer. List items are numbered from 1 in iteration order.
func RenderPlan(origin, destination string, plan *models.TravelPlan) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Here is your travel plan from %s to %s:\n\n", origin, destination)
	fmt.Fprintf(&b, "Duration: %s\n", plan.Duration)
	fmt.Fprintf(&b, "Distance: %s\n\n", plan.Distance)

	if plan.Directions != "" {
		fmt.Fprintf(&b, "Directions: %s\n\n", plan.Directions)
	}

	b.WriteString("Historical Information:\n")
	if plan.HistoricalInfo != nil {
		b.WriteString(plan.HistoricalInfo.Summary)
		b.WriteString("\n")
		if plan.HistoricalInfo.Source != "" {
			fmt.Fprintf(&b, "Source: %s\n", plan.HistoricalInfo.Source)
		}
	} else {
		b.WriteString(noHistoryText)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(plan.PlacesAlongRoute) > 0 {
		b.WriteString("Places Along the Route:\n")
		for i, step := range lo.Subset(plan.PlacesAlongRoute, 0, maxDisplayedPlaces) {
			fmt.Fprintf(&b, "%d. %s\n", i+1, step.Name)
		}
		b.WriteString("\n")
	}

	if len(plan.PopularPlaces) > 0 {
		fmt.Fprintf(&b, "Popular Places in %s:\n", destination)
		for i, place := range plan.PopularPlaces {
			fmt.Fprintf(&b, "%d. %s: %s\n", i+1, place.Title, place.Description)
			if place.URL != "" {
				fmt.Fprintf(&b, "   More info: %s\n", place.URL)
			}
		}
		b.WriteString("\n")
	}

	if len(plan.Hotels) > 0 {
		b.WriteString("Hotel Recommendations:\n")
		for i, hotel := range plan.Hotels {
			fmt.Fprintf(&b, "%d. %s (Rating: %s) - %s [%s]\n",
				i+1, hotel.Name, hotel.Rating, hotel.Address, hotel.Category)
			if hotel.Link != "" {
				fmt.Fprintf(&b, "   %s\n", hotel.Link)
			}
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "View the route on Google Maps: %s\n", plan.GoogleMapsURL)

	return b.String()
}
