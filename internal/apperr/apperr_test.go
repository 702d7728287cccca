package apperr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKinds(t *testing.T) {
	t.Run("Validationf", func(t *testing.T) {
		err := Validationf("missing fields: %s", "name")
		assert.True(t, errors.Is(err, ErrValidation))
		assert.False(t, errors.Is(err, ErrConflict))
		assert.Equal(t, "missing fields: name", err.Error())
	})

	t.Run("NotFoundf", func(t *testing.T) {
		err := NotFoundf("guest not found")
		assert.True(t, errors.Is(err, ErrNotFound))
		assert.Equal(t, "guest not found", err.Error())
	})

	t.Run("Conflictf", func(t *testing.T) {
		err := Conflictf("room %s already exists", "205")
		assert.True(t, errors.Is(err, ErrConflict))
		assert.Equal(t, "room 205 already exists", err.Error())
	})
}
