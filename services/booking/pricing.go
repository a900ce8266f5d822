package booking

import (
	"math"
	"time"

	"toolshare/models"
)

const day = 24 * time.Hour

// DayCount is the number of started days in [start, end). Any positive duration counts at least one day.
func DayCount(start, end time.Time) int {
	d := end.Sub(start)
	if d <= 0 {
		return 0
	}
	return int((d + day - 1) / day)
}

// CalculatePrice returns dailyRate times the number of started days.
func CalculatePrice(dailyRate float64, start, end time.Time) float64 {
	return dailyRate * float64(DayCount(start, end))
}

// PricingSnapshot freezes the tool's current rates onto a new booking.
func PricingSnapshot(tool *models.Tool, start, end time.Time) models.BookingPricing {
	return models.BookingPricing{
		Hourly: tool.Price.Hourly,
		Daily:  tool.Price.Daily,
		Total:  CalculatePrice(tool.Price.Daily, start, end),
	}
}

// ToMinorUnits converts a currency amount to cents.
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
