package aqi

import (
	"math"
	"math/rand"
)

// NoiseFunc supplies the per-hour random perturbation for forecast
// projection. It is injected so callers (and tests) control the randomness.
type NoiseFunc func(hourOffset int) float64

// ZeroNoise disables the random component
func ZeroNoise(int) float64 { return 0 }

// RandomNoise returns a NoiseFunc producing uniform jitter in
// [-amplitude, +amplitude] from a seeded source
func RandomNoise(r *rand.Rand, amplitude float64) NoiseFunc {
	return func(int) float64 {
		return (r.Float64()*2 - 1) * amplitude
	}
}

// timeOfDayAdjustment models the diurnal pollution cycle: morning and evening
// rush hours add to the index, night hours subtract.
func timeOfDayAdjustment(hour int) float64 {
	switch {
	case hour >= 7 && hour <= 9:
		return 15
	case hour >= 17 && hour <= 19:
		return 20
	case hour >= 22 || hour <= 5:
		return -10
	default:
		return 0
	}
}

// Forecast projects the current AQI over the next hoursAhead hours.
// startHour is the local hour of day (0-23) at projection time. For each
// hour offset h the current value is perturbed by the deterministic
// time-of-day adjustment plus the injected noise term, then reclassified.
// Confidence decays linearly: round(90 - (h/hoursAhead)*30).
func Forecast(current *Result, hoursAhead, startHour int, noise NoiseFunc) ([]ForecastPoint, error) {
	if current == nil {
		return nil, newInvalidInput("nil AQI result")
	}
	if hoursAhead < 1 {
		return nil, newInvalidInput("hoursAhead must be >= 1, got %d", hoursAhead)
	}
	if startHour < 0 || startHour > 23 {
		return nil, newInvalidInput("startHour must be in [0,23], got %d", startHour)
	}
	if noise == nil {
		noise = ZeroNoise
	}

	points := make([]ForecastPoint, 0, hoursAhead)
	for h := 1; h <= hoursAhead; h++ {
		hour := (startHour + h) % 24
		projected := float64(current.Value) + timeOfDayAdjustment(hour) + noise(h)
		value := int(math.Round(projected))
		if value < 0 {
			value = 0
		}

		confidence := int(math.Round(90 - float64(h)/float64(hoursAhead)*30))

		points = append(points, ForecastPoint{
			HourOffset: h,
			AQI:        value,
			Category:   Categorize(value),
			Confidence: confidence,
		})
	}

	return points, nil
}
