package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSizeValidator(t *testing.T) {
	v := NewSizeValidator(8)

	assert.NoError(t, v.ValidateSize([]byte("12345678")))
	assert.NoError(t, v.ValidateSize(nil))

	err := v.ValidateSize([]byte("123456789"))
	assert.ErrorIs(t, err, ErrTooLarge)
	assert.Contains(t, err.Error(), "9 bytes exceeds maximum 8 bytes")
}

func TestDefaultMessageValidator(t *testing.T) {
	v := DefaultMessageValidator()
	assert.Equal(t, MaxMessageSize, v.MaxSize())
	assert.ErrorIs(t, v.ValidateSize([]byte(strings.Repeat("x", MaxMessageSize+1))), ErrTooLarge)
}
