// Package fault defines the coded error taxonomy shared by the service
// layer. Handlers map each category to an HTTP status; services construct
// them before any write so a rejected request leaves store and cache
// untouched.
package fault

import "fmt"

// Validation error codes.
const (
	CodeInvalidSlotFormat           = "invalidSlotFormat"
	CodeDurationOutOfRange          = "durationOutOfRange"
	CodeServiceCountExceedsDuration = "serviceCountExceedsDuration"
	CodeInvalidStatus               = "invalidStatus"
)

// Authorization error codes.
const (
	CodeNotProvider    = "notProvider"
	CodeNotParticipant = "notParticipant"
	CodeUnauthorized   = "unauthorized"
)

// Conflict error codes.
const (
	CodeReportLinked       = "reportLinked"
	CodeInvalidTransition  = "invalidTransition"
	CodeReportExists       = "reportExists"
	CodeAppointmentNotPast = "appointmentNotPast"
	CodeUsernameTaken      = "usernameTaken"
)

// ValidationError rejects malformed scheduling input.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewValidationError builds a ValidationError with a formatted message.
func NewValidationError(code, format string, args ...any) error {
	return &ValidationError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// AuthorizationError rejects an actor who may not perform the operation.
type AuthorizationError struct {
	Code    string
	Message string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewAuthorizationError(code, format string, args ...any) error {
	return &AuthorizationError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// ConflictError rejects an operation that is illegal in the entity's
// current state.
type ConflictError struct {
	Code    string
	Message string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewConflictError(code, format string, args ...any) error {
	return &ConflictError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a missing entity.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

func NewNotFoundError(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// StoreError wraps a persistence failure. The wrapped operation is treated
// as not having happened; no cache purge follows it.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func NewStoreError(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}
