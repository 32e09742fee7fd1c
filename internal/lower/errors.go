package lower

import (
	"errors"
	"fmt"
)

// PassError reports a configuration the lowering pass cannot compile.
// The pass aborts on the first one; no partial output is meaningful.
type PassError struct {
	// Code identifies the error category.
	Code PassErrorCode

	// Producer names the producer node the error was detected under.
	Producer string

	// Message is a human-readable description.
	Message string
}

// PassErrorCode categorizes pass errors.
type PassErrorCode string

const (
	// ErrCodeProducerNoOutputs indicates a lock-requiring atomic region
	// under a producer that has neither an allocation node nor declared
	// output buffers, leaving its mutex array nowhere to live.
	ErrCodeProducerNoOutputs PassErrorCode = "PRODUCER_NO_OUTPUTS"

	// ErrCodeUnknownProducer indicates a producer node whose name is
	// missing from the function environment.
	ErrCodeUnknownProducer PassErrorCode = "UNKNOWN_PRODUCER"
)

// Error implements the error interface.
func (e *PassError) Error() string {
	if e.Producer != "" {
		return fmt.Sprintf("%s: %s (producer=%s)", e.Code, e.Message, e.Producer)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsProducerError reports whether err is a PassError for the given code.
// Uses errors.As to handle wrapped errors.
func IsProducerError(err error, code PassErrorCode) bool {
	var pe *PassError
	if errors.As(err, &pe) {
		return pe.Code == code
	}
	return false
}
