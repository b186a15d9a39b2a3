package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEngineError_Error(t *testing.T) {
	err := ErrAchievementNotFound("combo")
	assert.Equal(t, "ACHIEVEMENT_NOT_FOUND: achievement not found: combo", err.Error())

	wrapped := ErrDatabaseError("unlock", fmt.Errorf("connection refused"))
	assert.Contains(t, wrapped.Error(), "DATABASE_ERROR")
	assert.Contains(t, wrapped.Error(), "connection refused")
}

func TestEngineError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := ErrDatabaseError("unlock", cause)

	assert.Equal(t, cause, err.Unwrap())
}

func TestHasCode(t *testing.T) {
	err := ErrMalformedRelation("unterminated group")

	assert.True(t, HasCode(err, ErrCodeMalformedRelation))
	assert.False(t, HasCode(err, ErrCodeUnknownKind))
	assert.False(t, HasCode(fmt.Errorf("plain"), ErrCodeMalformedRelation))
	assert.False(t, HasCode(nil, ErrCodeMalformedRelation))
}

func TestHasCode_SeesThroughWrapping(t *testing.T) {
	err := fmt.Errorf("achievement 'combo': %w", ErrMalformedRelation("dangling operator"))

	assert.True(t, HasCode(err, ErrCodeMalformedRelation))
}
