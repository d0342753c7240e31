package aqi

import (
	"math"
)

// riskLevelFor maps a raw AQI value onto the six-tier risk scale. The
// thresholds mirror the category thresholds, so level and category always
// agree for the same value.
func riskLevelFor(value int) RiskLevel {
	switch {
	case value <= 50:
		return RiskMinimal
	case value <= 100:
		return RiskLow
	case value <= 150:
		return RiskModerate
	case value <= 200:
		return RiskHigh
	case value <= 300:
		return RiskVeryHigh
	default:
		return RiskSevere
	}
}

// baseScores holds the numeric score per risk level before the group
// multiplier is applied
var baseScores = map[RiskLevel]int{
	RiskMinimal:  10,
	RiskLow:      30,
	RiskModerate: 50,
	RiskHigh:     70,
	RiskVeryHigh: 85,
	RiskSevere:   100,
}

// groupFactors holds the per-group risk multiplier
var groupFactors = map[DemographicGroup]float64{
	GroupGeneral:        1.0,
	GroupElderly:        1.5,
	GroupChildren:       1.3,
	GroupRespiratory:    2.0,
	GroupCardiovascular: 1.8,
}

// generalAdvice is the per-level message catalog shared by all groups
var generalAdvice = map[RiskLevel]string{
	RiskMinimal:  "Air quality is satisfactory; enjoy normal outdoor activities.",
	RiskLow:      "Air quality is acceptable; unusually sensitive people should consider limiting prolonged exertion.",
	RiskModerate: "Members of sensitive groups may experience health effects.",
	RiskHigh:     "Everyone may begin to experience health effects; sensitive groups more seriously.",
	RiskVeryHigh: "Health alert: everyone may experience more serious health effects.",
	RiskSevere:   "Health warning of emergency conditions affecting the entire population.",
}

// HealthRisk derives a demographic-specific risk profile from an AQI result.
// The reported Level is the unscaled base level; the group factor only scales
// the numeric Score, which is clamped to [0,100].
func HealthRisk(result *Result, group DemographicGroup) (*HealthRiskProfile, error) {
	if result == nil {
		return nil, newInvalidInput("nil AQI result")
	}
	factor, ok := groupFactors[group]
	if !ok {
		return nil, newInvalidInput("unknown demographic group %q", group)
	}

	level := riskLevelFor(result.Value)

	score := int(math.Round(float64(baseScores[level]) * factor))
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	return &HealthRiskProfile{
		Group:           group,
		Level:           level,
		Score:           score,
		Recommendations: recommendations(group, level),
	}, nil
}

// recommendations concatenates the general per-level message with the
// group-specific advice gated on level thresholds.
func recommendations(group DemographicGroup, level RiskLevel) []string {
	advice := []string{generalAdvice[level]}

	switch group {
	case GroupElderly:
		if level.AtLeast(RiskModerate) {
			advice = append(advice, "Limit prolonged outdoor exertion.")
		}
		if level.AtLeast(RiskHigh) {
			advice = append(advice, "Stay indoors with filtered air if possible.")
		}

	case GroupChildren:
		if level.AtLeast(RiskModerate) {
			advice = append(advice, "Limit outdoor play and take frequent breaks.")
		}
		if level.AtLeast(RiskHigh) {
			advice = append(advice, "Move activities indoors.")
		}

	case GroupRespiratory:
		if level.AtLeast(RiskModerate) {
			advice = append(advice, "Consider wearing a mask outdoors.")
		}
		if level.AtLeast(RiskHigh) {
			advice = append(advice, "Keep rescue medication available and contact your provider if symptoms worsen.")
		}

	case GroupCardiovascular:
		if level.AtLeast(RiskModerate) {
			advice = append(advice, "Avoid strenuous activity.")
		}
		if level.AtLeast(RiskHigh) {
			advice = append(advice, "Watch for palpitations or shortness of breath and contact your provider.")
		}

	case GroupGeneral:
		if level.AtLeast(RiskHigh) {
			advice = append(advice, "Reduce prolonged outdoor exertion.")
		}
		if level.AtLeast(RiskVeryHigh) {
			advice = append(advice, "Stay indoors and keep windows closed.")
		}
	}

	return advice
}
