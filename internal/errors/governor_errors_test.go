package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigurationError(t *testing.T) {
	err := NewConfigurationError("session", "New", "initial capital must be positive")

	assert.Equal(t, ErrorCategoryConfiguration, err.Category)
	assert.True(t, err.IsFatal())
	assert.False(t, err.IsRetryable())
	assert.Contains(t, err.Error(), "CONFIG")
	assert.Contains(t, err.Error(), "session")
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("pipeline", "Evaluate", "strategy id is required")

	assert.Equal(t, ErrorCategoryValidation, err.Category)
	assert.False(t, err.IsFatal())
	assert.False(t, err.IsRetryable())
}

func TestNewStorageError(t *testing.T) {
	underlying := fmt.Errorf("disk full")
	err := NewStorageError("session", "persist", underlying)

	require.NotNil(t, err)
	assert.Equal(t, ErrorCategoryStorage, err.Category)
	assert.True(t, err.IsRetryable())
	assert.False(t, err.IsFatal())
	assert.ErrorIs(t, err, underlying)
	assert.Contains(t, err.Error(), "disk full")
}

func TestWrapError(t *testing.T) {
	assert.Nil(t, WrapError(nil, ErrorCategoryStorage, "session", "persist"))

	sentinel := errors.New("boom")
	wrapped := WrapError(sentinel, ErrorCategoryValidation, "pipeline", "Evaluate")
	require.NotNil(t, wrapped)
	assert.Equal(t, sentinel, wrapped.Unwrap())
	assert.False(t, wrapped.IsRetryable())
}
