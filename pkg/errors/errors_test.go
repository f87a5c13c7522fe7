package errors_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	pkgerrors "github.com/cellarlens/cellarlens/pkg/errors"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Field:   "image",
			Message: "cannot be empty",
		}
		assert.Equal(t, "validation failed for field image: cannot be empty", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrInvalidInput))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Message: "invalid configuration",
		}
		assert.Equal(t, "validation failed: invalid configuration", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})

	t.Run("constructor", func(t *testing.T) {
		err := pkgerrors.NewValidationError("hits", 0, "must not be empty")
		assert.Contains(t, err.Error(), "hits")
		assert.Contains(t, err.Error(), "must not be empty")
	})
}

func TestFormatError(t *testing.T) {
	err := pkgerrors.NewFormatError("gif", []string{"jpeg", "png"})
	assert.Contains(t, err.Error(), "gif")
	assert.Contains(t, err.Error(), "jpeg")
	assert.True(t, pkgerrors.IsInvalidFormat(err))
	assert.True(t, pkgerrors.IsValidationError(err))
}

func TestAPIError(t *testing.T) {
	t.Run("with status code", func(t *testing.T) {
		err := &pkgerrors.APIError{
			Provider:   "catalog",
			StatusCode: 429,
			Message:    "rate limit exceeded",
		}
		assert.Contains(t, err.Error(), "catalog")
		assert.Contains(t, err.Error(), "429")
		assert.True(t, pkgerrors.IsRateLimited(err))
	})

	t.Run("server error maps to provider unavailable", func(t *testing.T) {
		err := pkgerrors.NewAPIError("vision", 503, "backend down")
		assert.True(t, pkgerrors.IsProviderUnavailable(err))
	})

	t.Run("with wrapped error", func(t *testing.T) {
		baseErr := errors.New("connection timeout")
		err := &pkgerrors.APIError{
			Provider: "catalog",
			Message:  "request failed",
			Err:      baseErr,
		}
		assert.Equal(t, baseErr, err.Unwrap())
	})
}

func TestParseError(t *testing.T) {
	t.Run("basic", func(t *testing.T) {
		err := pkgerrors.NewParseError("json", "vision response", "unexpected token", nil)
		assert.Contains(t, err.Error(), "vision response")
		assert.True(t, pkgerrors.IsUpstreamParse(err))
	})

	t.Run("wrap helper", func(t *testing.T) {
		base := errors.New("unexpected end of JSON input")
		err := pkgerrors.WrapParse("json", "catalog response", base)
		assert.True(t, errors.Is(err, pkgerrors.ErrUpstreamParse))
		assert.True(t, errors.Is(err, base))
	})

	t.Run("wrap nil is nil", func(t *testing.T) {
		assert.NoError(t, pkgerrors.WrapParse("json", "x", nil))
	})
}

func TestWrapHelpers(t *testing.T) {
	assert.NoError(t, pkgerrors.WrapAPI("catalog", 0, nil))
	assert.NoError(t, pkgerrors.WrapIO("fetch", "image", nil))
	assert.NoError(t, pkgerrors.WrapValidation("year", nil))

	base := errors.New("boom")
	wrapped := pkgerrors.WrapAPI("catalog", 502, base)
	assert.True(t, errors.Is(wrapped, base))
	assert.True(t, pkgerrors.IsProviderUnavailable(wrapped))
}
