package advisory

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// BreachState represents the current advisory state for a zone threshold
type BreachState struct {
	Status          string    `json:"status"` // CLEAR, PENDING_ADVISORY, ADVISING
	BreachStartTime time.Time `json:"breach_start_time"`
	LastChecked     time.Time `json:"last_checked"`
	BreachAQI       int       `json:"breach_aqi"`
	AdvisoryID      int64     `json:"advisory_id,omitempty"`
}

const (
	StateClear   = "CLEAR"
	StatePending = "PENDING_ADVISORY"
	StateActive  = "ADVISING"
)

// StateManager manages advisory breach states in Redis
type StateManager struct {
	redis *redis.Client
}

// NewStateManager creates a new state manager
func NewStateManager(redisClient *redis.Client) *StateManager {
	return &StateManager{redis: redisClient}
}

func stateKey(zone string, thresholdID int) string {
	return fmt.Sprintf("advisory_state:%s:%d", zone, thresholdID)
}

// GetState retrieves the breach state for a zone threshold
func (sm *StateManager) GetState(ctx context.Context, zone string, thresholdID int) (*BreachState, error) {
	data, err := sm.redis.Get(ctx, stateKey(zone, thresholdID)).Result()
	if err == redis.Nil {
		// No state exists, return CLEAR state
		return &BreachState{
			Status: StateClear,
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get state from Redis: %w", err)
	}

	var state BreachState
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal state: %w", err)
	}

	return &state, nil
}

// SetState saves the breach state for a zone threshold
func (sm *StateManager) SetState(ctx context.Context, zone string, thresholdID int, state *BreachState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	// Expiration auto-cleans stale states
	if err := sm.redis.Set(ctx, stateKey(zone, thresholdID), data, 7*24*time.Hour).Err(); err != nil {
		return fmt.Errorf("failed to set state in Redis: %w", err)
	}

	return nil
}

// DeleteState removes the breach state (returns to CLEAR)
func (sm *StateManager) DeleteState(ctx context.Context, zone string, thresholdID int) error {
	return sm.redis.Del(ctx, stateKey(zone, thresholdID)).Err()
}

// GetAllStates returns all breach states (for monitoring)
func (sm *StateManager) GetAllStates(ctx context.Context) (map[string]*BreachState, error) {
	keys, err := sm.redis.Keys(ctx, "advisory_state:*").Result()
	if err != nil {
		return nil, err
	}

	states := make(map[string]*BreachState)
	for _, key := range keys {
		data, err := sm.redis.Get(ctx, key).Result()
		if err != nil {
			continue
		}

		var state BreachState
		if err := json.Unmarshal([]byte(data), &state); err != nil {
			continue
		}

		states[key] = &state
	}

	return states, nil
}
