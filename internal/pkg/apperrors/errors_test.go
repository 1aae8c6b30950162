package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomErrorUnwrapsToSentinel(t *testing.T) {
	err := fmt.Errorf("creating year: %w", NewResourceNotFoundError("Course not found"))

	assert.True(t, errors.Is(err, ErrResourceNotFound))
	assert.Equal(t, "Course not found", Message(err, "fallback"))
}

func TestMessageFallsBack(t *testing.T) {
	assert.Equal(t, "fallback", Message(errors.New("raw"), "fallback"))
	assert.Equal(t, "fallback", Message(NewCustomError(ErrBadRequest, ""), "fallback"))
}

func TestIsMatchesAnyTarget(t *testing.T) {
	err := NewCustomError(ErrBackendTimeout, "timed out")

	assert.True(t, Is(err, ErrBackendFailed, ErrBackendTimeout))
	assert.False(t, Is(err, ErrBackendFailed, ErrBackendMalformed))
}

func TestCustomErrorDecorators(t *testing.T) {
	err := NewCustomError(ErrBackendFailed, "Backend responded with status 404").
		WithStatus(404).
		WithDetails("not found")

	assert.Equal(t, 404, err.Status)
	assert.Equal(t, "not found", err.Details)
	assert.Equal(t, "Backend responded with status 404", err.Error())
}
