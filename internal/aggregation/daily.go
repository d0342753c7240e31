package aggregation

import (
	"fmt"
	"time"

	"github.com/cityair/cityair-server/internal/database"
)

// DailyAggregator rolls AQI snapshots up into daily per-zone rows
type DailyAggregator struct {
	db *database.DB
}

// NewDailyAggregator creates a new daily aggregator
func NewDailyAggregator(db *database.DB) *DailyAggregator {
	return &DailyAggregator{db: db}
}

// Aggregate performs daily aggregation for the specified date
func (d *DailyAggregator) Aggregate(targetDate time.Time) error {
	// Truncate to beginning of day
	date := targetDate.Truncate(24 * time.Hour)

	fmt.Printf("Running daily AQI aggregation for %s\n", date.Format("2006-01-02"))

	query := `
		INSERT INTO daily_aqi (zone, date, avg_aqi, min_aqi, max_aqi, sample_count)
		SELECT
			zone,
			$1::date AS date,
			AVG(value) AS avg_aqi,
			MIN(value) AS min_aqi,
			MAX(value) AS max_aqi,
			COUNT(*) AS sample_count
		FROM
			aqi_snapshots
		WHERE
			DATE(timestamp) = $1::date
		GROUP BY
			zone
		ON CONFLICT (zone, date) DO UPDATE
		SET
			avg_aqi = EXCLUDED.avg_aqi,
			min_aqi = EXCLUDED.min_aqi,
			max_aqi = EXCLUDED.max_aqi,
			sample_count = EXCLUDED.sample_count
	`

	result, err := d.db.Exec(query, date)
	if err != nil {
		return fmt.Errorf("failed to aggregate daily AQI: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	fmt.Printf("Daily aggregation completed: %d zones processed\n", rowsAffected)

	return nil
}

// AggregatePreviousDay aggregates the previous full day
func (d *DailyAggregator) AggregatePreviousDay() error {
	yesterday := time.Now().AddDate(0, 0, -1).Truncate(24 * time.Hour)
	return d.Aggregate(yesterday)
}

// CalculateNextRunTime calculates when the daily aggregation should next run.
// It runs at a specific time each day (e.g., 00:05).
func (d *DailyAggregator) CalculateNextRunTime(timeOfDay string) (time.Time, error) {
	now := time.Now()

	var hour, minute int
	if _, err := fmt.Sscanf(timeOfDay, "%d:%d", &hour, &minute); err != nil {
		return time.Time{}, fmt.Errorf("invalid time format: %s (expected HH:MM)", timeOfDay)
	}

	todayRun := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if now.After(todayRun) {
		return todayRun.AddDate(0, 0, 1), nil
	}

	return todayRun, nil
}
