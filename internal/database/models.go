package database

import (
	"time"

	"github.com/cityair/cityair-server/internal/aqi"
)

// Zone represents a monitored city zone
type Zone struct {
	Zone      string
	CityName  string
	Lat       *float64
	Lon       *float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RawReading represents one sampling interval's pollutant concentrations.
// Absent pollutants stay NULL; they are excluded from AQI computation, not
// treated as zero.
type RawReading struct {
	ID         int64
	Zone       string
	Timestamp  time.Time
	PM25       *float64
	PM10       *float64
	NO2        *float64
	SO2        *float64
	CO         *float64
	O3         *float64
	ReceivedAt time.Time
}

// SetConcentration stores a pollutant value on the matching column
func (r *RawReading) SetConcentration(p aqi.Pollutant, value float64) {
	v := value
	switch p {
	case aqi.PollutantPM25:
		r.PM25 = &v
	case aqi.PollutantPM10:
		r.PM10 = &v
	case aqi.PollutantNO2:
		r.NO2 = &v
	case aqi.PollutantSO2:
		r.SO2 = &v
	case aqi.PollutantCO:
		r.CO = &v
	case aqi.PollutantO3:
		r.O3 = &v
	}
}

// AQISnapshot is the computed AQI persisted alongside each raw reading
type AQISnapshot struct {
	ID        int64
	Zone      string
	Timestamp time.Time
	Value     int
	Category  string
	Dominant  string
	CreatedAt time.Time
}

// HourlyAQI represents an hourly rollup of snapshots for a zone
type HourlyAQI struct {
	ID            int64
	Zone          string
	HourTimestamp time.Time
	AvgAQI        *float64
	MaxAQI        *int
	SampleCount   int
	CreatedAt     time.Time
}

// DailyAQI represents a daily rollup of snapshots for a zone
type DailyAQI struct {
	ID          int64
	Zone        string
	Date        time.Time
	AvgAQI      *float64
	MinAQI      *int
	MaxAQI      *int
	SampleCount int
	CreatedAt   time.Time
}

// AdvisoryThreshold configures when a zone enters advisory state: the AQI
// must stay at or above MinAQI for DurationMinutes.
type AdvisoryThreshold struct {
	ID              int
	Zone            string
	MinAQI          int
	DurationMinutes int
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// AdvisoryLog represents a logged advisory event
type AdvisoryLog struct {
	AdvisoryID      int64
	Zone            string
	AQIValue        int
	Category        string
	Dominant        string
	ThresholdConfig string // JSON
	StartTime       time.Time
	EndTime         *time.Time
	Status          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

const (
	AdvisoryStatusActive = "ACTIVE"
	AdvisoryStatusLifted = "LIFTED"
)
