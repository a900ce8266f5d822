package booking

import (
	"time"

	"toolshare/models"
)

const (
	ReasonToolNotAvailable = "Tool is not available"
	ReasonDatesUnavailable = "Tool is unavailable for the selected dates"
	ReasonAvailable        = "Tool is available"
)

// Overlaps reports whether [start, end] touches period. Both bounds are inclusive,
// so a request starting on a blackout's last day conflicts.
func Overlaps(start, end time.Time, period models.DateRange) bool {
	return !start.After(period.To) && !end.Before(period.From)
}

// CheckAvailability decides whether tool can be rented for [start, end].
// It has no side effects and is used both standalone and during booking creation.
func CheckAvailability(tool *models.Tool, start, end time.Time) models.AvailabilityResult {
	if !tool.Availability.IsAvailable {
		return models.AvailabilityResult{Available: false, Reason: ReasonToolNotAvailable}
	}
	for _, period := range tool.Availability.UnavailableDates {
		if Overlaps(start, end, period) {
			return models.AvailabilityResult{Available: false, Reason: ReasonDatesUnavailable}
		}
	}
	return models.AvailabilityResult{Available: true, Reason: ReasonAvailable}
}
