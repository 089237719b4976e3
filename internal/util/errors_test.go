package util

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidationError(t *testing.T) {
	err := NewValidationError("score", "must be within [0,1]")
	assert.True(t, IsValidationError(err))
	assert.Equal(t, "score: must be within [0,1]", err.Error())

	wrapped := fmt.Errorf("rejected: %w", err)
	assert.True(t, IsValidationError(wrapped))

	assert.False(t, IsValidationError(errors.New("plain")))
	assert.False(t, IsValidationError(ErrPatternNotFound))
}
