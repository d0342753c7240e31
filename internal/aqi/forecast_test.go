package aqi

import (
	"errors"
	"math/rand"
	"testing"
)

func TestForecast_ConfidenceDecay(t *testing.T) {
	result := &Result{Value: 80, Category: Categorize(80)}

	points, err := Forecast(result, 48, 12, ZeroNoise)
	if err != nil {
		t.Fatalf("Forecast failed: %v", err)
	}
	if len(points) != 48 {
		t.Fatalf("Expected 48 points, got %d", len(points))
	}

	// round(90 - (1/48)*30) = 89, round(90 - (48/48)*30) = 60
	if points[0].Confidence != 89 {
		t.Errorf("Expected confidence 89 at h=1, got %d", points[0].Confidence)
	}
	if points[47].Confidence != 60 {
		t.Errorf("Expected confidence 60 at h=48, got %d", points[47].Confidence)
	}

	for i := 1; i < len(points); i++ {
		if points[i].Confidence > points[i-1].Confidence {
			t.Errorf("Confidence increased at h=%d: %d > %d", i+1, points[i].Confidence, points[i-1].Confidence)
		}
	}
}

func TestForecast_TimeOfDayAdjustment(t *testing.T) {
	result := &Result{Value: 100, Category: Categorize(100)}

	// Starting at 06:00, h=1 lands at 07:00 (morning rush, +15), h=12 at
	// 18:00 (evening rush, +20), h=17 at 23:00 (night, -10).
	points, err := Forecast(result, 24, 6, ZeroNoise)
	if err != nil {
		t.Fatalf("Forecast failed: %v", err)
	}

	if points[0].AQI != 115 {
		t.Errorf("Expected 115 at morning rush, got %d", points[0].AQI)
	}
	if points[11].AQI != 120 {
		t.Errorf("Expected 120 at evening rush, got %d", points[11].AQI)
	}
	if points[16].AQI != 90 {
		t.Errorf("Expected 90 at night, got %d", points[16].AQI)
	}

	// Categories are reclassified from the projected value.
	if points[0].Category != CategoryUnhealthySensitive {
		t.Errorf("Expected unhealthy_sensitive at 115, got %s", points[0].Category)
	}
	if points[16].Category != CategoryModerate {
		t.Errorf("Expected moderate at 90, got %s", points[16].Category)
	}
}

func TestForecast_SeededNoiseIsReproducible(t *testing.T) {
	result := &Result{Value: 60, Category: Categorize(60)}

	a, err := Forecast(result, 12, 0, RandomNoise(rand.New(rand.NewSource(42)), 8))
	if err != nil {
		t.Fatalf("Forecast failed: %v", err)
	}
	b, err := Forecast(result, 12, 0, RandomNoise(rand.New(rand.NewSource(42)), 8))
	if err != nil {
		t.Fatalf("Forecast failed: %v", err)
	}

	for i := range a {
		if a[i] != b[i] {
			t.Errorf("Point %d differs between identically seeded runs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestForecast_NeverNegative(t *testing.T) {
	result := &Result{Value: 3, Category: Categorize(3)}

	points, err := Forecast(result, 24, 22, ZeroNoise)
	if err != nil {
		t.Fatalf("Forecast failed: %v", err)
	}
	for _, p := range points {
		if p.AQI < 0 {
			t.Errorf("Projected AQI went negative at h=%d: %d", p.HourOffset, p.AQI)
		}
	}
}

func TestForecast_InvalidHorizon(t *testing.T) {
	result := &Result{Value: 50}
	if _, err := Forecast(result, 0, 0, nil); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}
}
