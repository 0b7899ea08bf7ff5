package utils

import (
	"errors"
	"fmt"
)

// MaxMessageSize bounds a single host message (1MB).
const MaxMessageSize = 1 * 1024 * 1024

// ErrTooLarge is returned for payloads over the size limit.
var ErrTooLarge = errors.New("payload too large")

// SizeValidator validates payload size limits
type SizeValidator struct {
	maxSize int
}

// NewSizeValidator creates a new validator with the specified max size
func NewSizeValidator(maxSize int) *SizeValidator {
	return &SizeValidator{maxSize: maxSize}
}

// DefaultMessageValidator returns a validator with the host message limit
func DefaultMessageValidator() *SizeValidator {
	return NewSizeValidator(MaxMessageSize)
}

// MaxSize returns the limit in bytes
func (v *SizeValidator) MaxSize() int {
	return v.maxSize
}

// ValidateSize checks if the data size is within limits
func (v *SizeValidator) ValidateSize(data []byte) error {
	if size := len(data); size > v.maxSize {
		return fmt.Errorf("%w: %d bytes exceeds maximum %d bytes", ErrTooLarge, size, v.maxSize)
	}
	return nil
}
