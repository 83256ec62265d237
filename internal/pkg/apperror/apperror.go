package apperror

import (
	"errors"
	"fmt"
)

// ValidationError covers malformed input: a bad request body or analyzer
// output that failed structural validation. The conversation falls back to a
// safe generic reply; the session is left unchanged.
type ValidationError struct {
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("validation: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("validation: %s", e.Reason)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// TransientStoreError marks a network/timeout failure on a store or broker.
// Idempotent steps may be retried with backoff.
type TransientStoreError struct {
	Store string
	Err   error
}

func (e *TransientStoreError) Error() string {
	return fmt.Sprintf("transient %s store failure: %v", e.Store, e.Err)
}

func (e *TransientStoreError) Unwrap() error { return e.Err }

// GatewayError marks a permanent send failure at the messaging gateway.
// Persistence still completes; the caller sees a degraded-success result.
type GatewayError struct {
	Err error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("gateway send failed: %v", e.Err)
}

func (e *GatewayError) Unwrap() error { return e.Err }

func NewValidation(reason string, err error) error {
	return &ValidationError{Reason: reason, Err: err}
}

func NewTransientStore(store string, err error) error {
	return &TransientStoreError{Store: store, Err: err}
}

func NewGateway(err error) error {
	return &GatewayError{Err: err}
}

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsTransientStore(err error) bool {
	var target *TransientStoreError
	return errors.As(err, &target)
}

func IsGateway(err error) bool {
	var target *GatewayError
	return errors.As(err, &target)
}
