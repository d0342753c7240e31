package aqi

import (
	"errors"
	"strings"
	"testing"
)

func TestHealthRisk_Scores(t *testing.T) {
	cases := []struct {
		aqi           int
		group         DemographicGroup
		expectedLevel RiskLevel
		expectedScore int
	}{
		{40, GroupGeneral, RiskMinimal, 10},
		{40, GroupRespiratory, RiskMinimal, 20},
		{90, GroupElderly, RiskLow, 45},
		{120, GroupGeneral, RiskModerate, 50},
		{120, GroupChildren, RiskModerate, 65},
		{120, GroupCardiovascular, RiskModerate, 90},
		{180, GroupRespiratory, RiskHigh, 100}, // 70*2.0 clamped
		{250, GroupGeneral, RiskVeryHigh, 85},
		{400, GroupGeneral, RiskSevere, 100},
	}

	for _, c := range cases {
		result := &Result{Value: c.aqi, Category: Categorize(c.aqi)}
		profile, err := HealthRisk(result, c.group)
		if err != nil {
			t.Fatalf("HealthRisk(%d, %s) failed: %v", c.aqi, c.group, err)
		}
		if profile.Level != c.expectedLevel {
			t.Errorf("HealthRisk(%d, %s): expected level %s, got %s", c.aqi, c.group, c.expectedLevel, profile.Level)
		}
		if profile.Score != c.expectedScore {
			t.Errorf("HealthRisk(%d, %s): expected score %d, got %d", c.aqi, c.group, c.expectedScore, profile.Score)
		}
	}
}

func TestHealthRisk_LevelStaysUnscaled(t *testing.T) {
	// The group factor scales the score only; the reported level is the
	// base level for every group.
	result := &Result{Value: 120, Category: Categorize(120)}
	for _, group := range Groups {
		profile, err := HealthRisk(result, group)
		if err != nil {
			t.Fatalf("HealthRisk failed for %s: %v", group, err)
		}
		if profile.Level != RiskModerate {
			t.Errorf("Group %s: expected level moderate, got %s", group, profile.Level)
		}
	}
}

func TestHealthRisk_ScoreMonotonicInFactor(t *testing.T) {
	// Factor ordering: general < children < elderly < cardiovascular <
	// respiratory. Scores must follow, except where clamping at 100 ties.
	ordered := []DemographicGroup{
		GroupGeneral,
		GroupChildren,
		GroupElderly,
		GroupCardiovascular,
		GroupRespiratory,
	}

	for _, value := range []int{40, 90, 120, 180, 250, 400} {
		result := &Result{Value: value, Category: Categorize(value)}
		prev := -1
		for _, group := range ordered {
			profile, err := HealthRisk(result, group)
			if err != nil {
				t.Fatalf("HealthRisk failed: %v", err)
			}
			if profile.Score < prev {
				t.Errorf("AQI %d: score for %s (%d) dropped below previous (%d)", value, group, profile.Score, prev)
			}
			if profile.Score == prev && prev != 100 {
				t.Errorf("AQI %d: unexpected tie at %d for %s without clamping", value, prev, group)
			}
			prev = profile.Score
		}
	}
}

func TestHealthRisk_RespiratoryRecommendations(t *testing.T) {
	// AQI 101 is the bracket low edge for PM2.5 35.5: a respiratory profile
	// must carry the sensitive-groups message plus the mask advice.
	result, err := Compute([]Reading{{Pollutant: PollutantPM25, Value: 35.5}})
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	profile, err := HealthRisk(result, GroupRespiratory)
	if err != nil {
		t.Fatalf("HealthRisk failed: %v", err)
	}

	if !containsSubstring(profile.Recommendations, "sensitive groups may experience") {
		t.Errorf("Expected sensitive-groups message, got %v", profile.Recommendations)
	}
	if !containsSubstring(profile.Recommendations, "mask") {
		t.Errorf("Expected mask advice, got %v", profile.Recommendations)
	}
	// Provider contact is gated at high and above.
	if containsSubstring(profile.Recommendations, "contact your provider") {
		t.Errorf("Provider advice should not appear at moderate level: %v", profile.Recommendations)
	}
}

func TestHealthRisk_GeneralGating(t *testing.T) {
	result := &Result{Value: 120, Category: Categorize(120)}
	profile, err := HealthRisk(result, GroupGeneral)
	if err != nil {
		t.Fatalf("HealthRisk failed: %v", err)
	}
	// General public gets no extra advice below high.
	if len(profile.Recommendations) != 1 {
		t.Errorf("Expected only the general message, got %v", profile.Recommendations)
	}

	result = &Result{Value: 250, Category: Categorize(250)}
	profile, err = HealthRisk(result, GroupGeneral)
	if err != nil {
		t.Fatalf("HealthRisk failed: %v", err)
	}
	if !containsSubstring(profile.Recommendations, "Stay indoors") {
		t.Errorf("Expected stay-indoors advice at very high, got %v", profile.Recommendations)
	}
}

func TestHealthRisk_UnknownGroup(t *testing.T) {
	result := &Result{Value: 50}
	_, err := HealthRisk(result, DemographicGroup("athletes"))
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}
}

func containsSubstring(list []string, substr string) bool {
	for _, s := range list {
		if strings.Contains(s, substr) {
			return true
		}
	}
	return false
}
