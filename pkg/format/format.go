// Package format renders provider measurements into the display strings
// used throughout the travel plan.
package format

import "fmt"

// Kilometers converts meters into a kilometer string with two decimals,
// e.g. 1500 -> "1.50 km".
func Kilometers(meters float64) string {
	return fmt.Sprintf("%.2f km", meters/1000)
}

// Minutes converts seconds into whole minutes by floor division,
// e.g. 125 -> "2 minutes".
func Minutes(seconds float64) string {
	m := int(seconds / 60)
	if m == 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", m)
}
