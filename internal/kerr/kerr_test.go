package kerr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifiedErrorsCarryKindAndEntity(t *testing.T) {
	err := NewDomainError("CS101", "course year must be positive, got %d", -1)
	assert.True(t, Is(err, Domain))
	assert.False(t, Is(err, Import))
	assert.Contains(t, err.Error(), "DomainError")
	assert.Contains(t, err.Error(), "CS101", "the offending entity is named in the error text")
}

func TestWrappedErrorUnwraps(t *testing.T) {
	cause := errors.New("boom")
	err := WrapModelError(cause, "solver failed")

	assert.True(t, Is(err, Model))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "boom")
}

func TestIsReturnsFalseForPlainErrors(t *testing.T) {
	assert.False(t, Is(errors.New("plain"), Internal))
}
