package core

import "fmt"

// ValidationError reports a rejected setter argument. The state the setter
// would have touched is left unchanged.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// InitializationError is fatal to the engine instance: the render loop never
// starts. It is reported once with the underlying diagnostic and not retried.
type InitializationError struct {
	Stage string
	Err   error
}

func (e *InitializationError) Error() string {
	return fmt.Sprintf("initialization failed at %s: %v", e.Stage, e.Err)
}

func (e *InitializationError) Unwrap() error { return e.Err }

// ResourceError reports a failed GPU resource allocation. Fatal for the
// current engine instance, no partial-frame rendering is attempted.
type ResourceError struct {
	Resource string
	Err      error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("resource %s: %v", e.Resource, e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }
