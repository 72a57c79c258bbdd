package model

import "fmt"

// Granularity selects the calendar unit used for a pivot grid's row axis.
type Granularity string

const (
	Daily   Granularity = "daily"   // day-of-month x hour
	Weekly  Granularity = "weekly"  // weekday x hour, fixed Mon..Sun axis
	Monthly Granularity = "monthly" // month x hour, fixed Jan..Dec axis
	Yearly  Granularity = "yearly"  // calendar date x hour, chronological
	Hourly  Granularity = "hourly"  // single row collapsing all dates
)

// ParseGranularity validates a granularity string from a spec or query param.
func ParseGranularity(s string) (Granularity, error) {
	switch Granularity(s) {
	case Daily, Weekly, Monthly, Yearly, Hourly:
		return Granularity(s), nil
	case "":
		return Daily, nil
	default:
		return "", fmt.Errorf("unknown granularity: %q", s)
	}
}
