package simulator

import (
	"math/rand"
	"time"

	"github.com/cityair/cityair-server/internal/aqi"
)

// Generator produces synthetic pollutant readings with a diurnal pattern.
// It is seeded so fixtures and demos are reproducible; the core engine never
// depends on it.
type Generator struct {
	rand *rand.Rand
}

// NewGenerator creates a generator from a seed
func NewGenerator(seed int64) *Generator {
	return &Generator{rand: rand.New(rand.NewSource(seed))}
}

// baseline concentrations roughly matching a moderately polluted city day
var baselines = map[aqi.Pollutant]float64{
	aqi.PollutantPM25: 14,
	aqi.PollutantPM10: 40,
	aqi.PollutantNO2:  35,
	aqi.PollutantSO2:  12,
	aqi.PollutantCO:   1.8,
	aqi.PollutantO3:   38,
}

var units = map[aqi.Pollutant]string{
	aqi.PollutantPM25: "ug/m3",
	aqi.PollutantPM10: "ug/m3",
	aqi.PollutantNO2:  "ppb",
	aqi.PollutantSO2:  "ppb",
	aqi.PollutantCO:   "ppm",
	aqi.PollutantO3:   "ppb",
}

// diurnalFactor scales the baseline by hour of day: traffic peaks raise
// combustion pollutants, afternoons raise ozone, nights are calmer.
func diurnalFactor(p aqi.Pollutant, hour int) float64 {
	switch p {
	case aqi.PollutantO3:
		// Ozone forms photochemically: afternoon peak
		if hour >= 12 && hour <= 17 {
			return 1.6
		}
		if hour >= 0 && hour <= 6 {
			return 0.5
		}
		return 1.0
	default:
		if (hour >= 7 && hour <= 9) || (hour >= 17 && hour <= 19) {
			return 1.5
		}
		if hour >= 22 || hour <= 5 {
			return 0.6
		}
		return 1.0
	}
}

// ReadingsAt generates one full reading set for the given instant
func (g *Generator) ReadingsAt(t time.Time) []aqi.Reading {
	readings := make([]aqi.Reading, 0, len(aqi.Pollutants))
	for _, p := range aqi.Pollutants {
		base := baselines[p] * diurnalFactor(p, t.Hour())

		// +/-30% jitter around the diurnal baseline
		value := base * (1 + (g.rand.Float64()*2-1)*0.3)
		if value < 0 {
			value = 0
		}

		readings = append(readings, aqi.Reading{
			Pollutant: p,
			Value:     value,
			Unit:      units[p],
		})
	}
	return readings
}

// PartialReadingsAt generates a reading set with some pollutants missing,
// simulating stations that carry only a subset of sensors
func (g *Generator) PartialReadingsAt(t time.Time, keep int) []aqi.Reading {
	all := g.ReadingsAt(t)
	if keep >= len(all) {
		return all
	}
	if keep < 1 {
		keep = 1
	}

	g.rand.Shuffle(len(all), func(i, j int) {
		all[i], all[j] = all[j], all[i]
	})
	return all[:keep]
}
