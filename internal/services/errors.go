package services

import (
	"errors"
	"fmt"

	"github.com/internlink/internship-service/internal/validator"
)

// ===== AUTHENTICATION FAILURES =====
//
// Session resolution reports failures as values; mapping to redirects or
// status codes is the HTTP layer's job.

var (
	ErrCredentialMissing = errors.New("no session credential presented")
	ErrCredentialExpired = errors.New("session credential expired")
	ErrCredentialInvalid = errors.New("session credential invalid")
	ErrSessionUserGone   = errors.New("session user no longer exists")
	ErrUserInactive      = errors.New("user account is deactivated")
)

// IsAuthenticationError reports whether err is any session-resolution failure.
func IsAuthenticationError(err error) bool {
	return errors.Is(err, ErrCredentialMissing) ||
		errors.Is(err, ErrCredentialExpired) ||
		errors.Is(err, ErrCredentialInvalid) ||
		errors.Is(err, ErrSessionUserGone) ||
		errors.Is(err, ErrUserInactive)
}

// ===== DOMAIN ERRORS =====

var (
	ErrDuplicateApplication = errors.New("already applied for this internship")
	ErrInvalidCredentials   = errors.New("incorrect email or password")
	ErrEmailTaken           = errors.New("email is already registered")
)

// NotFoundError means the entity does not exist or is not visible to the
// actor; callers must not be able to distinguish the two.
type NotFoundError struct {
	Resource string
	ID       uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

func NewNotFoundError(resource string, id uint) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// PermissionError means the actor is authenticated but not allowed.
type PermissionError struct {
	UserID   uint
	Resource string
	Action   string
	Reason   string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("user %d may not %s %s: %s", e.UserID, e.Action, e.Resource, e.Reason)
}

func NewPermissionError(userID uint, resource, action, reason string) *PermissionError {
	return &PermissionError{UserID: userID, Resource: resource, Action: action, Reason: reason}
}

// ValidationError means the input is malformed: a bad date, an out-of-range
// progress value, an unknown role. The Reason is always specific.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// InvalidTransitionError means a status change is not defined from the
// current state.
type InvalidTransitionError struct {
	Resource string
	From     string
	To       string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s cannot move from %s to %s", e.Resource, e.From, e.To)
}

func NewInvalidTransitionError(resource, from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{Resource: resource, From: from, To: to}
}

// IntegrityError wraps a failure inside a multi-entity transaction. By the
// time a caller sees it the transaction has been fully rolled back.
type IntegrityError struct {
	Op  string
	Err error
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("%s failed, transaction rolled back: %v", e.Op, e.Err)
}

func (e *IntegrityError) Unwrap() error { return e.Err }

func NewIntegrityError(op string, err error) *IntegrityError {
	return &IntegrityError{Op: op, Err: err}
}

// ===== PREDICATES =====

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsPermissionDenied(err error) bool {
	var pe *PermissionError
	return errors.As(err, &pe)
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return true
	}
	var ves validator.ValidationErrors
	if errors.As(err, &ves) {
		return true
	}
	var it *InvalidTransitionError
	if errors.As(err, &it) {
		return true
	}
	return errors.Is(err, ErrDuplicateApplication)
}

func IsInvalidTransition(err error) bool {
	var it *InvalidTransitionError
	return errors.As(err, &it)
}
