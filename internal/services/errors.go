package services

import "fmt"

// ConfigurationError means the relay cannot serve the request as deployed.
type ConfigurationError struct{ Message string }

func (e *ConfigurationError) Error() string { return e.Message }

type BadRequestError struct{ Message string }

func (e *BadRequestError) Error() string { return e.Message }

// UpstreamError carries a non-success answer from the model API back to the caller.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream status %d: %s", e.StatusCode, e.Message)
}

// InternalError wraps a local failure. Only Error() of the cause is logged; callers
// respond with a generic message.
type InternalError struct{ Err error }

func (e *InternalError) Error() string { return "internal error: " + e.Err.Error() }

func (e *InternalError) Unwrap() error { return e.Err }
