package aggregation

import (
	"fmt"
	"time"

	"github.com/cityair/cityair-server/internal/database"
)

// HourlyAggregator rolls AQI snapshots up into hourly per-zone rows
type HourlyAggregator struct {
	db *database.DB
}

// NewHourlyAggregator creates a new hourly aggregator
func NewHourlyAggregator(db *database.DB) *HourlyAggregator {
	return &HourlyAggregator{db: db}
}

// Aggregate performs hourly aggregation for the specified hour
func (h *HourlyAggregator) Aggregate(targetHour time.Time) error {
	// Truncate to the beginning of the hour
	startTime := targetHour.Truncate(time.Hour)
	endTime := startTime.Add(time.Hour)

	fmt.Printf("Running hourly AQI aggregation for %s\n", startTime.Format("2006-01-02 15:04:05"))

	query := `
		INSERT INTO hourly_aqi (zone, hour_timestamp, avg_aqi, max_aqi, sample_count)
		SELECT
			zone,
			$1 AS hour_timestamp,
			AVG(value) AS avg_aqi,
			MAX(value) AS max_aqi,
			COUNT(*) AS sample_count
		FROM
			aqi_snapshots
		WHERE
			timestamp >= $1 AND timestamp < $2
		GROUP BY
			zone
		ON CONFLICT (zone, hour_timestamp) DO UPDATE
		SET
			avg_aqi = EXCLUDED.avg_aqi,
			max_aqi = EXCLUDED.max_aqi,
			sample_count = EXCLUDED.sample_count
	`

	result, err := h.db.Exec(query, startTime, endTime)
	if err != nil {
		return fmt.Errorf("failed to aggregate hourly AQI: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	fmt.Printf("Hourly aggregation completed: %d zones processed\n", rowsAffected)

	return nil
}

// AggregatePreviousHour aggregates the previous full hour
func (h *HourlyAggregator) AggregatePreviousHour() error {
	previousHour := time.Now().Add(-1 * time.Hour).Truncate(time.Hour)
	return h.Aggregate(previousHour)
}

// CalculateNextRunTime calculates when the hourly aggregation should next run.
// It runs at a fixed delay past each hour.
func (h *HourlyAggregator) CalculateNextRunTime(delay time.Duration) time.Time {
	now := time.Now()

	nextRun := now.Truncate(time.Hour).Add(time.Hour).Add(delay)
	if now.After(nextRun) {
		nextRun = nextRun.Add(time.Hour)
	}

	return nextRun
}
