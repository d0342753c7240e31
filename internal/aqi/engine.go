package aqi

import (
	"math"
)

// SubIndex computes the AQI contribution of a single pollutant by linear
// interpolation within its breakpoint bracket. Concentrations beyond the top
// bracket saturate at the bracket's AQIHigh rather than extrapolating.
func SubIndex(p Pollutant, concentration float64) (int, error) {
	table, err := Breakpoints(p)
	if err != nil {
		return 0, err
	}

	if concentration < 0 || math.IsNaN(concentration) || math.IsInf(concentration, 0) {
		return 0, newInvalidInput("concentration %v for %s", concentration, p)
	}

	for _, bp := range table {
		if concentration > bp.ConcHigh {
			continue
		}
		c := concentration
		if c < bp.ConcLow {
			// Between brackets (reporting granularity gap), snap to the
			// bracket floor.
			c = bp.ConcLow
		}
		span := bp.ConcHigh - bp.ConcLow
		aqi := float64(bp.AQIHigh-bp.AQILow)/span*(c-bp.ConcLow) + float64(bp.AQILow)
		return int(math.Round(aqi)), nil
	}

	// Above every bracket: saturate.
	return table[len(table)-1].AQIHigh, nil
}

// Compute derives the AQI for a set of readings. Pollutants not present are
// excluded, not treated as zero. The overall value is the maximum sub-index:
// a location is as polluted as its worst pollutant.
func Compute(readings []Reading) (*Result, error) {
	if len(readings) == 0 {
		return nil, ErrInsufficientData
	}

	result := &Result{
		Value:      -1,
		SubIndices: make(map[Pollutant]int, len(readings)),
	}

	for _, r := range readings {
		sub, err := SubIndex(r.Pollutant, r.Value)
		if err != nil {
			return nil, err
		}
		result.SubIndices[r.Pollutant] = sub
		if sub > result.Value {
			result.Value = sub
			result.Dominant = r.Pollutant
		}
	}

	result.Category = Categorize(result.Value)
	return result, nil
}

// Categorize maps an AQI value onto its category using the fixed thresholds
func Categorize(value int) Category {
	switch {
	case value <= 50:
		return CategoryGood
	case value <= 100:
		return CategoryModerate
	case value <= 150:
		return CategoryUnhealthySensitive
	case value <= 200:
		return CategoryUnhealthy
	case value <= 300:
		return CategoryVeryUnhealthy
	default:
		return CategoryHazardous
	}
}
