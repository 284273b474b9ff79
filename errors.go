package encodium

import (
	"errors"
	"strings"
)

// Error codes (exported consts for IDE completion and type safety by convention)
const (
	CodeRequired      = "required"       // Missing value for a non-optional field.
	CodeInvalidType   = "invalid_type"   // Runtime kind does not match the declared kind.
	CodeTooLong       = "too_long"       // String length reached max_length.
	CodeNegative      = "negative"       // Negative value on a non-negative Integer.
	CodeInvalidFormat = "invalid_format" // Malformed base64 inside a JSON string.
	CodeParseError    = "parse_error"    // Malformed JSON text.
	CodeCheckFailed   = "check_failed"   // Whole-record check vetoed the batch.
	CodeTruncated     = "truncated"      // Byte stream ended mid-frame.
)

// ValidationError is the single failure kind surfaced by this package. The
// message is a fragment meant to be read as "<field> <message>", e.g. field
// "age" with message "must not be negative". Field is empty for root-level
// failures (malformed JSON, whole-record check).
type ValidationError struct {
	Field   string // Possibly nested, e.g. "children[2] age".
	Code    string // One of the codes listed above.
	Message string
	Cause   error // Optional: underlying error.
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + " " + e.Message
}

func (e *ValidationError) Unwrap() error { return e.Cause }

// NewValidationError builds a root-level ValidationError. Whole-record check
// hooks use it to veto a batch.
func NewValidationError(code, message string) *ValidationError {
	return &ValidationError{Code: code, Message: message}
}

// AsValidationError extracts a *ValidationError using errors.As internally.
func AsValidationError(err error) (*ValidationError, bool) {
	if err == nil {
		return nil, false
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// prefixError rebases err under the given field name or index segment, so a
// nested failure reads as "parties[0] people[0] name cannot be None".
// Segments starting with '[' attach without a separating space.
func prefixError(segment string, err error) error {
	ve, ok := AsValidationError(err)
	if !ok {
		ve = &ValidationError{Code: CodeParseError, Message: err.Error(), Cause: err}
	}
	field := segment
	if ve.Field != "" {
		if strings.HasPrefix(ve.Field, "[") {
			field = segment + ve.Field
		} else {
			field = segment + " " + ve.Field
		}
	}
	return &ValidationError{Field: field, Code: ve.Code, Message: ve.Message, Cause: ve.Cause}
}
