package protocol

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/cityair/cityair-server/internal/aqi"
)

// MessageType represents the type of message
type MessageType string

const (
	// Station to Server
	MsgTypeIdentify  MessageType = "identify"
	MsgTypeReadings  MessageType = "readings"
	MsgTypeKeepalive MessageType = "keepalive"

	// Server to Station
	MsgTypeAck MessageType = "ack"
)

// BaseMessage is the common structure for all messages
type BaseMessage struct {
	Type MessageType `json:"type"`
}

// IdentifyMessage is sent by a sensor station on connection
type IdentifyMessage struct {
	Type MessageType `json:"type"`
	Zone string      `json:"zone"`
	City string      `json:"city"`
}

// ReadingData contains a timestamped set of pollutant concentrations
type ReadingData struct {
	Timestamp string        `json:"timestamp"`
	Readings  []aqi.Reading `json:"readings"`
}

// ReadingsMessage is sent by a station every sampling interval
type ReadingsMessage struct {
	Type MessageType `json:"type"`
	Data ReadingData `json:"data"`
}

// KeepaliveMessage is sent by a station between sampling intervals
type KeepaliveMessage struct {
	Type MessageType `json:"type"`
}

// AckMessage is sent by the server in response to messages
type AckMessage struct {
	Type   MessageType `json:"type"`
	Status string      `json:"status"`
}

// AckStatus constants
const (
	AckStatusIdentified = "identified"
	AckStatusAlive      = "alive"
	AckStatusError      = "error"
)

// ParseMessage parses a JSON line into the appropriate message type
func ParseMessage(data []byte) (interface{}, error) {
	var base BaseMessage
	if err := json.Unmarshal(data, &base); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	switch base.Type {
	case MsgTypeIdentify:
		var msg IdentifyMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			return nil, fmt.Errorf("invalid identify message: %w", err)
		}
		if err := validateIdentify(&msg); err != nil {
			return nil, err
		}
		return &msg, nil

	case MsgTypeReadings:
		var msg ReadingsMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			return nil, fmt.Errorf("invalid readings message: %w", err)
		}
		if err := validateReadings(&msg); err != nil {
			return nil, err
		}
		return &msg, nil

	case MsgTypeKeepalive:
		var msg KeepaliveMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			return nil, fmt.Errorf("invalid keepalive message: %w", err)
		}
		return &msg, nil

	default:
		return nil, fmt.Errorf("unknown message type: %s", base.Type)
	}
}

// validateIdentify validates an identify message
func validateIdentify(msg *IdentifyMessage) error {
	if msg.Zone == "" {
		return fmt.Errorf("zone is required")
	}
	if msg.City == "" {
		return fmt.Errorf("city is required")
	}
	return nil
}

// validateReadings validates a readings message
func validateReadings(msg *ReadingsMessage) error {
	if msg.Data.Timestamp == "" {
		return fmt.Errorf("timestamp is required")
	}
	if _, err := time.Parse(time.RFC3339, msg.Data.Timestamp); err != nil {
		return fmt.Errorf("invalid timestamp format (must be RFC3339): %w", err)
	}
	if len(msg.Data.Readings) == 0 {
		return fmt.Errorf("at least one reading is required")
	}
	for _, r := range msg.Data.Readings {
		if _, err := aqi.ParsePollutant(string(r.Pollutant)); err != nil {
			return fmt.Errorf("invalid reading: %w", err)
		}
		if r.Value < 0 || math.IsNaN(r.Value) || math.IsInf(r.Value, 0) {
			return fmt.Errorf("invalid concentration %v for %s", r.Value, r.Pollutant)
		}
	}
	return nil
}

// EncodeMessage encodes a message to JSON
func EncodeMessage(msg interface{}) ([]byte, error) {
	return json.Marshal(msg)
}

// NewAckMessage creates a new acknowledgment message
func NewAckMessage(status string) *AckMessage {
	return &AckMessage{
		Type:   MsgTypeAck,
		Status: status,
	}
}
