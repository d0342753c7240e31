package aqi

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput indicates a negative or non-finite concentration, or an
	// unrecognized pollutant/group
	ErrInvalidInput = errors.New("invalid input")

	// ErrInsufficientData indicates an AQI was requested from an empty reading set
	ErrInsufficientData = errors.New("insufficient data")
)

func newInvalidInput(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
