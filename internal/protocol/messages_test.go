package protocol

import (
	"testing"
)

func TestParseMessage_Identify(t *testing.T) {
	line := `{"type":"identify","zone":"Z-04","city":"Springfield"}`

	msg, err := ParseMessage([]byte(line))
	if err != nil {
		t.Fatalf("ParseMessage failed: %v", err)
	}

	identify, ok := msg.(*IdentifyMessage)
	if !ok {
		t.Fatalf("Expected IdentifyMessage, got %T", msg)
	}
	if identify.Zone != "Z-04" {
		t.Errorf("Expected zone Z-04, got %s", identify.Zone)
	}
}

func TestParseMessage_IdentifyMissingZone(t *testing.T) {
	line := `{"type":"identify","city":"Springfield"}`
	if _, err := ParseMessage([]byte(line)); err == nil {
		t.Error("Expected error for missing zone")
	}
}

func TestParseMessage_Readings(t *testing.T) {
	line := `{"type":"readings","data":{"timestamp":"2026-08-30T10:00:00Z","readings":[{"pollutant":"pm25","value":18.2,"unit":"ug/m3"},{"pollutant":"o3","value":41,"unit":"ppb"}]}}`

	msg, err := ParseMessage([]byte(line))
	if err != nil {
		t.Fatalf("ParseMessage failed: %v", err)
	}

	readings, ok := msg.(*ReadingsMessage)
	if !ok {
		t.Fatalf("Expected ReadingsMessage, got %T", msg)
	}
	if len(readings.Data.Readings) != 2 {
		t.Errorf("Expected 2 readings, got %d", len(readings.Data.Readings))
	}
}

func TestParseMessage_ReadingsRejectsUnknownPollutant(t *testing.T) {
	line := `{"type":"readings","data":{"timestamp":"2026-08-30T10:00:00Z","readings":[{"pollutant":"lead","value":1}]}}`
	if _, err := ParseMessage([]byte(line)); err == nil {
		t.Error("Expected error for unknown pollutant")
	}
}

func TestParseMessage_ReadingsRejectsNegativeValue(t *testing.T) {
	line := `{"type":"readings","data":{"timestamp":"2026-08-30T10:00:00Z","readings":[{"pollutant":"pm25","value":-3}]}}`
	if _, err := ParseMessage([]byte(line)); err == nil {
		t.Error("Expected error for negative concentration")
	}
}

func TestParseMessage_ReadingsRejectsEmptySet(t *testing.T) {
	line := `{"type":"readings","data":{"timestamp":"2026-08-30T10:00:00Z","readings":[]}}`
	if _, err := ParseMessage([]byte(line)); err == nil {
		t.Error("Expected error for empty reading set")
	}
}

func TestParseMessage_UnknownType(t *testing.T) {
	if _, err := ParseMessage([]byte(`{"type":"telemetry"}`)); err == nil {
		t.Error("Expected error for unknown message type")
	}
}

func TestReadingData_Parse(t *testing.T) {
	data := &ReadingData{Timestamp: "2026-08-30T10:00:00Z"}
	parsed, err := data.Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if parsed.Timestamp.Hour() != 10 {
		t.Errorf("Expected hour 10, got %d", parsed.Timestamp.Hour())
	}

	data = &ReadingData{Timestamp: "yesterday"}
	if _, err := data.Parse(); err == nil {
		t.Error("Expected error for bad timestamp")
	}
}
