// Package domainerrors defines the coded errors surfaced at service
// boundaries. Stores and clients return sentinel errors; services translate
// them into a DomainError carrying a coarse Code (drives the HTTP status) and
// an optional machine-readable Reason string that API clients branch on
// (e.g. SERVICE_ID_ALREADY_EXISTS, service_endpoint_invalid).
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies a domain error. Codes map 1:1 to HTTP statuses at the
// transport boundary via ToHTTPStatus.
type Code string

const (
	CodeBadRequest         Code = "bad_request"
	CodeValidation         Code = "validation_failed"
	CodeNotFound           Code = "not_found"
	CodeConflict           Code = "conflict"
	CodeForbidden          Code = "forbidden"
	CodeUnauthorized       Code = "unauthorized"
	CodeInvariantViolation Code = "invariant_violation"
	CodeTimeout            Code = "timeout"
	CodeInternal           Code = "internal"
)

// Reason strings used for client-side branching. These are part of the API
// contract and must stay stable.
const (
	ReasonMissingScopes            = "missing_scopes"
	ReasonCannotAccessGroup        = "cannot_access_group_of_another_organization"
	ReasonDIDResolutionFailed      = "did_resolution_failed"
	ReasonServiceIDExists          = "SERVICE_ID_ALREADY_EXISTS"
	ReasonServiceIDImmutable       = "SERVICE_ID_CANNOT_BE_UPDATED"
	ReasonServiceTypeImmutable     = "SERVICE_TYPE_CANNOT_BE_UPDATED"
	ReasonEndpointInvalid          = "service_endpoint_invalid"
	ReasonEndpointMustBeRef        = "service_endpoint_must_be_ref"
	ReasonEndpointRefNotFound      = "service_endpoint_ref_not_found"
	ReasonUnsupportedCredentialTypes = "unsupported_credential_types"
	ReasonMissingRequiredField     = "missing_required_field"
	ReasonUnknownServiceID         = "unknown_service_id"
	ReasonServiceNotActive         = "service_not_active"
	ReasonNoRequiredPurpose        = "no_required_purpose_for_service"
)

// DomainError is the error type returned from services.
type DomainError struct {
	Code    Code
	Reason  string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// New builds a DomainError with a code and human-readable message.
func New(code Code, message string) error {
	return &DomainError{Code: code, Message: message}
}

// NewWithReason builds a DomainError carrying a machine-readable reason.
func NewWithReason(code Code, reason, message string) error {
	return &DomainError{Code: code, Reason: reason, Message: message}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, message string) error {
	return &DomainError{Code: code, Message: message, Err: err}
}

// HasCode reports whether err (or anything it wraps) is a DomainError with
// the given code.
func HasCode(err error, code Code) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// Is is an alias of HasCode kept for call-site readability in handlers.
func Is(err error, code Code) bool {
	return HasCode(err, code)
}

// Reason extracts the machine-readable reason, or "" when absent.
func Reason(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Reason
	}
	return ""
}

// ToHTTPStatus maps a domain error code to an HTTP status code.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeBadRequest, CodeValidation, CodeInvariantViolation:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeForbidden:
		return http.StatusForbidden
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
