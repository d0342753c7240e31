package aqi

import (
	"errors"
	"testing"
)

func TestSubIndex_BracketBoundaries(t *testing.T) {
	// At every bracket edge the interpolation must land exactly on the
	// bracket's AQI bound: no gap or overlap in derived AQI even though the
	// concentration brackets are disjoint.
	for p, table := range breakpoints {
		for i, bp := range table {
			got, err := SubIndex(p, bp.ConcHigh)
			if err != nil {
				t.Fatalf("%s bracket %d: SubIndex failed: %v", p, i, err)
			}
			if got != bp.AQIHigh {
				t.Errorf("%s at ConcHigh %v: expected %d, got %d", p, bp.ConcHigh, bp.AQIHigh, got)
			}

			got, err = SubIndex(p, bp.ConcLow)
			if err != nil {
				t.Fatalf("%s bracket %d: SubIndex failed: %v", p, i, err)
			}
			if got != bp.AQILow {
				t.Errorf("%s at ConcLow %v: expected %d, got %d", p, bp.ConcLow, bp.AQILow, got)
			}
		}
	}
}

func TestSubIndex_Saturation(t *testing.T) {
	got, err := SubIndex(PollutantPM25, 1000)
	if err != nil {
		t.Fatalf("SubIndex failed: %v", err)
	}
	if got != 500 {
		t.Errorf("Expected saturation at 500, got %d", got)
	}
}

func TestSubIndex_NegativeConcentration(t *testing.T) {
	_, err := SubIndex(PollutantPM25, -5)
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}
}

func TestSubIndex_UnknownPollutant(t *testing.T) {
	_, err := SubIndex(Pollutant("lead"), 10)
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}
}

func TestCompute_MaxAggregation(t *testing.T) {
	// PM2.5 at 9.6 interpolates to AQI 40, NO2 at 90.6 to AQI 90. The worst
	// pollutant wins; no averaging.
	readings := []Reading{
		{Pollutant: PollutantPM25, Value: 9.6},
		{Pollutant: PollutantNO2, Value: 90.6},
	}

	result, err := Compute(readings)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	if result.SubIndices[PollutantPM25] != 40 {
		t.Errorf("Expected PM2.5 sub-index 40, got %d", result.SubIndices[PollutantPM25])
	}
	if result.SubIndices[PollutantNO2] != 90 {
		t.Errorf("Expected NO2 sub-index 90, got %d", result.SubIndices[PollutantNO2])
	}
	if result.Value != 90 {
		t.Errorf("Expected AQI 90, got %d", result.Value)
	}
	if result.Category != CategoryModerate {
		t.Errorf("Expected category moderate, got %s", result.Category)
	}
	if result.Dominant != PollutantNO2 {
		t.Errorf("Expected dominant no2, got %s", result.Dominant)
	}
}

func TestCompute_SinglePollutantScenario(t *testing.T) {
	// PM2.5 at 35.5 sits on the low edge of the [35.5, 55.4] -> [101, 150]
	// bracket, so the AQI is exactly 101.
	result, err := Compute([]Reading{{Pollutant: PollutantPM25, Value: 35.5}})
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	if result.Value != 101 {
		t.Errorf("Expected AQI 101, got %d", result.Value)
	}
	if result.Category != CategoryUnhealthySensitive {
		t.Errorf("Expected category unhealthy_sensitive, got %s", result.Category)
	}
}

func TestCompute_MissingPollutantsExcluded(t *testing.T) {
	// Absent pollutants must not be treated as zero readings.
	result, err := Compute([]Reading{{Pollutant: PollutantO3, Value: 60}})
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if len(result.SubIndices) != 1 {
		t.Errorf("Expected 1 sub-index, got %d", len(result.SubIndices))
	}
}

func TestCompute_EmptyReadings(t *testing.T) {
	_, err := Compute(nil)
	if !errors.Is(err, ErrInsufficientData) {
		t.Errorf("Expected ErrInsufficientData, got %v", err)
	}
}

func TestCompute_InvalidReadingFailsFast(t *testing.T) {
	readings := []Reading{
		{Pollutant: PollutantPM25, Value: 10},
		{Pollutant: PollutantNO2, Value: -1},
	}
	_, err := Compute(readings)
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}
}

func TestCategorize_Thresholds(t *testing.T) {
	cases := []struct {
		value    int
		expected Category
	}{
		{0, CategoryGood},
		{50, CategoryGood},
		{51, CategoryModerate},
		{100, CategoryModerate},
		{101, CategoryUnhealthySensitive},
		{150, CategoryUnhealthySensitive},
		{151, CategoryUnhealthy},
		{200, CategoryUnhealthy},
		{201, CategoryVeryUnhealthy},
		{300, CategoryVeryUnhealthy},
		{301, CategoryHazardous},
		{500, CategoryHazardous},
	}

	for _, c := range cases {
		if got := Categorize(c.value); got != c.expected {
			t.Errorf("Categorize(%d): expected %s, got %s", c.value, c.expected, got)
		}
	}
}

func TestParsePollutant(t *testing.T) {
	p, err := ParsePollutant("pm25")
	if err != nil {
		t.Fatalf("ParsePollutant failed: %v", err)
	}
	if p != PollutantPM25 {
		t.Errorf("Expected pm25, got %s", p)
	}

	if _, err := ParsePollutant("smoke"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}
}
