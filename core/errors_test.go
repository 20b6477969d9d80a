package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	verr := &ValidationError{Field: "radius", Reason: "must be positive"}
	assert.Contains(t, verr.Error(), "radius")
	assert.Contains(t, verr.Error(), "must be positive")

	ierr := &InitializationError{Stage: "adapter", Err: errors.New("no backend")}
	assert.Contains(t, ierr.Error(), "adapter")

	rerr := &ResourceError{Resource: "vertex buffer", Err: errors.New("device lost")}
	assert.Contains(t, rerr.Error(), "vertex buffer")
}

func TestErrorUnwrapping(t *testing.T) {
	cause := errors.New("root cause")

	ierr := fmt.Errorf("wrapped: %w", &InitializationError{Stage: "device", Err: cause})
	assert.ErrorIs(t, ierr, cause)

	var target *InitializationError
	assert.ErrorAs(t, ierr, &target)
	assert.Equal(t, "device", target.Stage)

	rerr := &ResourceError{Resource: "depth texture", Err: cause}
	assert.ErrorIs(t, rerr, cause)
}
