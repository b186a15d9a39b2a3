package errors

import (
	stderrors "errors"
	"fmt"
)

// Error codes for the achievement engine.
const (
	// Definition errors (load-time, fatal to startup)
	ErrCodeMalformedRelation   = "MALFORMED_RELATION"
	ErrCodeUnknownKind         = "UNKNOWN_ACHIEVEMENT_KIND"
	ErrCodeUndeclaredEvent     = "UNDECLARED_EVENT"
	ErrCodeMalformedDefinition = "MALFORMED_DEFINITION"

	// Runtime errors
	ErrCodeAchievementNotFound = "ACHIEVEMENT_NOT_FOUND"
	ErrCodeMissingProvider     = "MISSING_PROVIDER"

	// Database errors
	ErrCodeDatabaseError = "DATABASE_ERROR"

	// Validation errors
	ErrCodeValidationFailed = "VALIDATION_FAILED"
)

// EngineError represents an error raised by the achievement engine.
type EngineError struct {
	Code    string
	Message string
	Err     error
}

func (e *EngineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *EngineError) Unwrap() error {
	return e.Err
}

// NewEngineError creates a new EngineError.
func NewEngineError(code, message string, err error) *EngineError {
	return &EngineError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// HasCode reports whether err or anything it wraps is an *EngineError
// carrying the given code.
func HasCode(err error, code string) bool {
	var engineErr *EngineError
	return stderrors.As(err, &engineErr) && engineErr.Code == code
}

// Domain-specific error constructors

// ErrMalformedRelation returns an error for an invalid relation expression.
func ErrMalformedRelation(reason string) *EngineError {
	return &EngineError{
		Code:    ErrCodeMalformedRelation,
		Message: fmt.Sprintf("malformed relation expression: %s", reason),
		Err:     nil,
	}
}

// ErrUnknownKind returns an error for an unrecognized achievement kind tag.
func ErrUnknownKind(tag string) *EngineError {
	return &EngineError{
		Code:    ErrCodeUnknownKind,
		Message: fmt.Sprintf("unknown achievement kind: %s", tag),
		Err:     nil,
	}
}

// ErrUndeclaredEvent returns an error when an achievement subscribes to an
// event that is missing from the declared event vocabulary.
func ErrUndeclaredEvent(achievementID, event string) *EngineError {
	return &EngineError{
		Code:    ErrCodeUndeclaredEvent,
		Message: fmt.Sprintf("achievement '%s' subscribes to undeclared event: %s", achievementID, event),
		Err:     nil,
	}
}

// ErrMalformedDefinition returns an error for an invalid achievement definition.
func ErrMalformedDefinition(reason string, err error) *EngineError {
	return &EngineError{
		Code:    ErrCodeMalformedDefinition,
		Message: fmt.Sprintf("malformed achievement definition: %s", reason),
		Err:     err,
	}
}

// ErrAchievementNotFound returns an error when an achievement id is not defined.
func ErrAchievementNotFound(id string) *EngineError {
	return &EngineError{
		Code:    ErrCodeAchievementNotFound,
		Message: fmt.Sprintf("achievement not found: %s", id),
		Err:     nil,
	}
}

// ErrMissingProvider returns an error when no unlock provider is registered
// for a declared achievement kind.
func ErrMissingProvider(kind string) *EngineError {
	return &EngineError{
		Code:    ErrCodeMissingProvider,
		Message: fmt.Sprintf("no unlock provider registered for kind: %s", kind),
		Err:     nil,
	}
}

// ErrDatabaseError wraps database errors.
func ErrDatabaseError(operation string, err error) *EngineError {
	return &EngineError{
		Code:    ErrCodeDatabaseError,
		Message: fmt.Sprintf("database error during %s", operation),
		Err:     err,
	}
}

// ErrValidationFailed returns a validation error.
func ErrValidationFailed(field, reason string) *EngineError {
	return &EngineError{
		Code:    ErrCodeValidationFailed,
		Message: fmt.Sprintf("validation failed for %s: %s", field, reason),
		Err:     nil,
	}
}
