package aqi

// Pollutant identifies one of the six tracked pollutants
type Pollutant string

const (
	PollutantPM25 Pollutant = "pm25"
	PollutantPM10 Pollutant = "pm10"
	PollutantNO2  Pollutant = "no2"
	PollutantSO2  Pollutant = "so2"
	PollutantCO   Pollutant = "co"
	PollutantO3   Pollutant = "o3"
)

// Pollutants lists all tracked pollutants in a stable order
var Pollutants = []Pollutant{
	PollutantPM25,
	PollutantPM10,
	PollutantNO2,
	PollutantSO2,
	PollutantCO,
	PollutantO3,
}

// ParsePollutant converts a string into a Pollutant
func ParsePollutant(s string) (Pollutant, error) {
	switch Pollutant(s) {
	case PollutantPM25, PollutantPM10, PollutantNO2, PollutantSO2, PollutantCO, PollutantO3:
		return Pollutant(s), nil
	}
	return "", newInvalidInput("unknown pollutant %q", s)
}

// Category is the qualitative AQI classification
type Category string

const (
	CategoryGood               Category = "good"
	CategoryModerate           Category = "moderate"
	CategoryUnhealthySensitive Category = "unhealthy_sensitive"
	CategoryUnhealthy          Category = "unhealthy"
	CategoryVeryUnhealthy      Category = "very_unhealthy"
	CategoryHazardous          Category = "hazardous"
)

// RiskLevel is the six-tier health risk classification derived from AQI
type RiskLevel string

const (
	RiskMinimal  RiskLevel = "minimal"
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
	RiskVeryHigh RiskLevel = "very_high"
	RiskSevere   RiskLevel = "severe"
)

// rank orders risk levels for threshold comparisons
func (r RiskLevel) rank() int {
	switch r {
	case RiskMinimal:
		return 0
	case RiskLow:
		return 1
	case RiskModerate:
		return 2
	case RiskHigh:
		return 3
	case RiskVeryHigh:
		return 4
	case RiskSevere:
		return 5
	}
	return -1
}

// AtLeast reports whether r is at or above level
func (r RiskLevel) AtLeast(level RiskLevel) bool {
	return r.rank() >= level.rank()
}

// DemographicGroup is a population segment with a distinct risk multiplier
type DemographicGroup string

const (
	GroupGeneral        DemographicGroup = "general"
	GroupElderly        DemographicGroup = "elderly"
	GroupChildren       DemographicGroup = "children"
	GroupRespiratory    DemographicGroup = "respiratory"
	GroupCardiovascular DemographicGroup = "cardiovascular"
)

// Groups lists all demographic groups in a stable order
var Groups = []DemographicGroup{
	GroupGeneral,
	GroupElderly,
	GroupChildren,
	GroupRespiratory,
	GroupCardiovascular,
}

// ParseGroup converts a string into a DemographicGroup
func ParseGroup(s string) (DemographicGroup, error) {
	switch DemographicGroup(s) {
	case GroupGeneral, GroupElderly, GroupChildren, GroupRespiratory, GroupCardiovascular:
		return DemographicGroup(s), nil
	}
	return "", newInvalidInput("unknown demographic group %q", s)
}

// Reading is one pollutant concentration measurement
type Reading struct {
	Pollutant Pollutant `json:"pollutant"`
	Value     float64   `json:"value"`
	Unit      string    `json:"unit,omitempty"`
}

// Result is the AQI derived from a set of readings. Value is the maximum of
// the per-pollutant sub-indices; Dominant names the pollutant that produced it.
type Result struct {
	Value      int               `json:"value"`
	Category   Category          `json:"category"`
	Dominant   Pollutant         `json:"dominant"`
	SubIndices map[Pollutant]int `json:"sub_indices"`
}

// HealthRiskProfile is the demographic-specific risk derived from a Result.
// Level is the unscaled base level; the group multiplier affects Score only.
type HealthRiskProfile struct {
	Group           DemographicGroup `json:"group"`
	Level           RiskLevel        `json:"level"`
	Score           int              `json:"score"`
	Recommendations []string         `json:"recommendations"`
}

// ForecastPoint is a projected future AQI value
type ForecastPoint struct {
	HourOffset int      `json:"hour_offset"`
	AQI        int      `json:"aqi"`
	Category   Category `json:"category"`
	Confidence int      `json:"confidence"`
}
