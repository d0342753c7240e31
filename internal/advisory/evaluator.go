package advisory

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cityair/cityair-server/internal/aqi"
	"github.com/cityair/cityair-server/internal/database"
	"github.com/cityair/cityair-server/internal/protocol"
	"github.com/cityair/cityair-server/internal/queue"
)

// Evaluator computes AQI for incoming readings, compares it against per-zone
// advisory thresholds, and manages the sustained-breach state machine
type Evaluator struct {
	db             *database.DB
	stateManager   *StateManager
	producer       *queue.Producer
	thresholdCache map[string][]*database.AdvisoryThreshold
	lastCacheLoad  time.Time
	cacheValidity  time.Duration
}

// NewEvaluator creates a new advisory evaluator
func NewEvaluator(db *database.DB, stateManager *StateManager, producer *queue.Producer) *Evaluator {
	return &Evaluator{
		db:             db,
		stateManager:   stateManager,
		producer:       producer,
		thresholdCache: make(map[string][]*database.AdvisoryThreshold),
		cacheValidity:  5 * time.Minute,
	}
}

// EvaluateReading computes the AQI for a reading message and evaluates it
// against all thresholds configured for the zone
func (e *Evaluator) EvaluateReading(ctx context.Context, msg *protocol.ReadingMessage) error {
	parsed, err := msg.Data.Parse()
	if err != nil {
		return fmt.Errorf("failed to parse reading data: %w", err)
	}

	result, err := aqi.Compute(parsed.Readings)
	if err != nil {
		return fmt.Errorf("failed to compute AQI: %w", err)
	}

	thresholds, err := e.getThresholds(msg.Zone)
	if err != nil {
		return fmt.Errorf("failed to get thresholds: %w", err)
	}

	for _, threshold := range thresholds {
		if err := e.evaluateThreshold(ctx, msg, threshold, result); err != nil {
			fmt.Printf("Failed to evaluate threshold: %v\n", err)
		}
	}

	return nil
}

func (e *Evaluator) evaluateThreshold(ctx context.Context, msg *protocol.ReadingMessage, threshold *database.AdvisoryThreshold, result *aqi.Result) error {
	breached := result.Value >= threshold.MinAQI

	state, err := e.stateManager.GetState(ctx, msg.Zone, threshold.ID)
	if err != nil {
		return err
	}

	now := time.Now()

	if breached {
		return e.handleBreach(ctx, msg, threshold, result, state, now)
	}
	return e.handleNoBreach(ctx, msg, threshold, state, now)
}

func (e *Evaluator) handleBreach(ctx context.Context, msg *protocol.ReadingMessage, threshold *database.AdvisoryThreshold, result *aqi.Result, state *BreachState, now time.Time) error {
	switch state.Status {
	case StateClear:
		// New breach detected
		newState := &BreachState{
			Status:          StatePending,
			BreachStartTime: now,
			LastChecked:     now,
			BreachAQI:       result.Value,
		}
		return e.stateManager.SetState(ctx, msg.Zone, threshold.ID, newState)

	case StatePending:
		durationMet := now.Sub(state.BreachStartTime) >= time.Duration(threshold.DurationMinutes)*time.Minute

		if durationMet {
			return e.issueAdvisory(ctx, msg, threshold, result, state, now)
		}

		state.LastChecked = now
		state.BreachAQI = result.Value
		return e.stateManager.SetState(ctx, msg.Zone, threshold.ID, state)

	case StateActive:
		// Advisory already active, update last checked
		state.LastChecked = now
		return e.stateManager.SetState(ctx, msg.Zone, threshold.ID, state)
	}

	return nil
}

func (e *Evaluator) handleNoBreach(ctx context.Context, msg *protocol.ReadingMessage, threshold *database.AdvisoryThreshold, state *BreachState, now time.Time) error {
	switch state.Status {
	case StateClear:
		return nil

	case StatePending:
		// Breach ended before the advisory was issued
		return e.stateManager.DeleteState(ctx, msg.Zone, threshold.ID)

	case StateActive:
		return e.liftAdvisory(ctx, msg, threshold, state, now)
	}

	return nil
}

func (e *Evaluator) issueAdvisory(ctx context.Context, msg *protocol.ReadingMessage, threshold *database.AdvisoryThreshold, result *aqi.Result, state *BreachState, now time.Time) error {
	fmt.Printf("ADVISORY ISSUED: %s (zone=%s, aqi=%d, category=%s, threshold=%d)\n",
		msg.City, msg.Zone, result.Value, result.Category, threshold.MinAQI)

	thresholdConfig, _ := json.Marshal(threshold)
	advisoryLog := &database.AdvisoryLog{
		Zone:            msg.Zone,
		AQIValue:        result.Value,
		Category:        string(result.Category),
		Dominant:        string(result.Dominant),
		ThresholdConfig: string(thresholdConfig),
		StartTime:       state.BreachStartTime,
		Status:          database.AdvisoryStatusActive,
	}

	if err := e.db.InsertAdvisoryLog(advisoryLog); err != nil {
		return fmt.Errorf("failed to insert advisory log: %w", err)
	}

	state.Status = StateActive
	state.AdvisoryID = advisoryLog.AdvisoryID
	state.LastChecked = now
	if err := e.stateManager.SetState(ctx, msg.Zone, threshold.ID, state); err != nil {
		return err
	}

	notification := &protocol.AdvisoryNotification{
		Type:        protocol.AdvisoryTypeIssued,
		Zone:        msg.Zone,
		City:        msg.City,
		AQI:         result.Value,
		Category:    result.Category,
		Dominant:    result.Dominant,
		Threshold:   threshold.MinAQI,
		Duration:    threshold.DurationMinutes,
		StartTime:   state.BreachStartTime,
		AdvisoryID:  advisoryLog.AdvisoryID,
		RiskByGroup: riskProfiles(result),
	}

	return e.sendNotification(ctx, notification)
}

func (e *Evaluator) liftAdvisory(ctx context.Context, msg *protocol.ReadingMessage, threshold *database.AdvisoryThreshold, state *BreachState, now time.Time) error {
	fmt.Printf("ADVISORY LIFTED: %s (zone=%s)\n", msg.City, msg.Zone)

	if state.AdvisoryID > 0 {
		if err := e.db.UpdateAdvisoryLogLifted(state.AdvisoryID, now); err != nil {
			return fmt.Errorf("failed to update advisory log: %w", err)
		}
	}

	if err := e.stateManager.DeleteState(ctx, msg.Zone, threshold.ID); err != nil {
		return err
	}

	notification := &protocol.AdvisoryNotification{
		Type:       protocol.AdvisoryTypeLifted,
		Zone:       msg.Zone,
		City:       msg.City,
		Threshold:  threshold.MinAQI,
		AdvisoryID: state.AdvisoryID,
	}

	return e.sendNotification(ctx, notification)
}

// riskProfiles builds the per-group health risk breakdown for a result
func riskProfiles(result *aqi.Result) []aqi.HealthRiskProfile {
	profiles := make([]aqi.HealthRiskProfile, 0, len(aqi.Groups))
	for _, group := range aqi.Groups {
		profile, err := aqi.HealthRisk(result, group)
		if err != nil {
			continue
		}
		profiles = append(profiles, *profile)
	}
	return profiles
}

func (e *Evaluator) sendNotification(ctx context.Context, notification *protocol.AdvisoryNotification) error {
	data, err := protocol.EncodeAdvisoryNotification(notification)
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}

	return e.producer.Publish(ctx, notification.Zone, data)
}

func (e *Evaluator) getThresholds(zone string) ([]*database.AdvisoryThreshold, error) {
	// Check cache
	if time.Since(e.lastCacheLoad) < e.cacheValidity {
		if thresholds, ok := e.thresholdCache[zone]; ok {
			return thresholds, nil
		}
	}

	thresholds, err := e.db.GetActiveAdvisoryThresholds(zone)
	if err != nil {
		return nil, err
	}

	e.thresholdCache[zone] = thresholds
	e.lastCacheLoad = time.Now()

	return thresholds, nil
}
