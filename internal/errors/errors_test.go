package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundError(t *testing.T) {
	t.Run("Error message", func(t *testing.T) {
		err := &NotFoundError{Entity: "team"}
		assert.Equal(t, "team not found", err.Error())
	})

	t.Run("errors.Is comparison with same entity", func(t *testing.T) {
		err1 := &NotFoundError{Entity: "team"}
		err2 := &NotFoundError{Entity: "team"}
		assert.True(t, errors.Is(err1, err2))
	})

	t.Run("errors.Is comparison with different entity", func(t *testing.T) {
		assert.False(t, errors.Is(ErrTeamNotFound, ErrScheduleNotFound))
	})

	t.Run("wrapped sentinel", func(t *testing.T) {
		err := fmt.Errorf("lookup: %w", ErrResultNotFound)
		assert.True(t, errors.Is(err, ErrResultNotFound))
		assert.True(t, IsNotFound(err))
	})

	t.Run("IsNotFound helper", func(t *testing.T) {
		assert.True(t, IsNotFound(ErrTeamNotFound))
		assert.False(t, IsNotFound(ErrDuplicateTeam))
	})
}

func TestAlreadyExistsError(t *testing.T) {
	t.Run("Error message with context", func(t *testing.T) {
		assert.Equal(t, "team already exists for this captain", ErrDuplicateTeam.Error())
	})

	t.Run("Error message without context", func(t *testing.T) {
		err := &AlreadyExistsError{Entity: "team"}
		assert.Equal(t, "team already exists", err.Error())
	})

	t.Run("IsAlreadyExists helper", func(t *testing.T) {
		assert.True(t, IsAlreadyExists(fmt.Errorf("create: %w", ErrDuplicateTeam)))
		assert.False(t, IsAlreadyExists(ErrTeamNotFound))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("Error message with field", func(t *testing.T) {
		err := &ValidationError{Field: "tag", Message: "must be at most 5 characters"}
		assert.Equal(t, "validation error: tag - must be at most 5 characters", err.Error())
	})

	t.Run("Error message without field", func(t *testing.T) {
		err := &ValidationError{Message: "invalid body"}
		assert.Equal(t, "validation error: invalid body", err.Error())
	})

	t.Run("Multiple fields", func(t *testing.T) {
		err := ValidationErrors{
			{Field: "name", Message: "is required"},
			{Field: "player1", Message: "must be at least 3 characters"},
		}
		assert.Equal(t, "validation error: name - is required; player1 - must be at least 3 characters", err.Error())
		assert.True(t, IsValidation(err))
		assert.Len(t, ValidationDetails(fmt.Errorf("wrap: %w", err)), 2)
	})

	t.Run("IsValidation helper", func(t *testing.T) {
		err := NewValidationError("slot", "must be positive")
		assert.True(t, IsValidation(err))
		assert.Equal(t, []ValidationError{{Field: "slot", Message: "must be positive"}}, ValidationDetails(err))
		assert.False(t, IsValidation(ErrTeamNotFound))
		assert.Nil(t, ValidationDetails(ErrTeamNotFound))
	})
}

func TestAuthErrors(t *testing.T) {
	assert.True(t, IsAuthentication(ErrUnauthenticated))
	assert.True(t, IsAuthentication(ErrInvalidSession))
	assert.False(t, IsAuthentication(ErrForbidden))
	assert.True(t, IsAuthorization(ErrForbidden))
	assert.True(t, IsAuthorization(fmt.Errorf("gate: %w", ErrForbidden)))
	assert.True(t, IsConfiguration(ErrProviderNotEnabled))
	assert.Equal(t, "admin role required", ErrForbidden.Error())
}
