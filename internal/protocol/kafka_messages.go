package protocol

import (
	"encoding/json"
	"time"

	"github.com/cityair/cityair-server/internal/aqi"
)

// ReadingMessage is the internal message format for the readings topic
type ReadingMessage struct {
	ConnectionID string      `json:"connection_id"`
	Zone         string      `json:"zone"`
	City         string      `json:"city"`
	ReceivedAt   time.Time   `json:"received_at"`
	Data         ReadingData `json:"data"`
}

// ParsedReadingData contains the reading set with a parsed timestamp
type ParsedReadingData struct {
	Timestamp time.Time
	Readings  []aqi.Reading
}

// Parse converts ReadingData to ParsedReadingData
func (d *ReadingData) Parse() (*ParsedReadingData, error) {
	ts, err := time.Parse(time.RFC3339, d.Timestamp)
	if err != nil {
		return nil, err
	}
	return &ParsedReadingData{
		Timestamp: ts,
		Readings:  d.Readings,
	}, nil
}

// AdvisoryNotification is the message format for the advisories topic
type AdvisoryNotification struct {
	Type        string                  `json:"type"` // ADVISORY_ISSUED, ADVISORY_LIFTED
	Zone        string                  `json:"zone"`
	City        string                  `json:"city"`
	AQI         int                     `json:"aqi"`
	Category    aqi.Category            `json:"category"`
	Dominant    aqi.Pollutant           `json:"dominant"`
	Threshold   int                     `json:"threshold"`
	Duration    int                     `json:"duration_minutes"`
	StartTime   time.Time               `json:"start_time"`
	AdvisoryID  int64                   `json:"advisory_id,omitempty"`
	RiskByGroup []aqi.HealthRiskProfile `json:"risk_by_group,omitempty"`
}

const (
	AdvisoryTypeIssued = "ADVISORY_ISSUED"
	AdvisoryTypeLifted = "ADVISORY_LIFTED"
)

// EncodeReadingMessage encodes a ReadingMessage to JSON
func EncodeReadingMessage(msg *ReadingMessage) ([]byte, error) {
	return json.Marshal(msg)
}

// DecodeReadingMessage decodes JSON to ReadingMessage
func DecodeReadingMessage(data []byte) (*ReadingMessage, error) {
	var msg ReadingMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// EncodeAdvisoryNotification encodes an AdvisoryNotification to JSON
func EncodeAdvisoryNotification(adv *AdvisoryNotification) ([]byte, error) {
	return json.Marshal(adv)
}

// DecodeAdvisoryNotification decodes JSON to AdvisoryNotification
func DecodeAdvisoryNotification(data []byte) (*AdvisoryNotification, error) {
	var adv AdvisoryNotification
	if err := json.Unmarshal(data, &adv); err != nil {
		return nil, err
	}
	return &adv, nil
}
