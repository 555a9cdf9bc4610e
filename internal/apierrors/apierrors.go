package apierrors

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindParse           Kind = "parse"
	KindValidation      Kind = "validation"
	KindAuth            Kind = "auth"
	KindTransport       Kind = "transport"
	KindInvalidResponse Kind = "invalid_response"
)

// Reason narrows down a validation failure.
type Reason string

const (
	ReasonNone          Reason = ""
	ReasonInvalidAmount Reason = "invalid_amount"
	ReasonInvalidNumber Reason = "invalid_number"
	ReasonInvalidDate   Reason = "invalid_date"
	ReasonMissingField  Reason = "missing_field"
)

// response bodies are cut to this size before they go into an error
const maxDetailsLength = 2048

type ErrorStatus struct {
	Kind      Kind
	Reason    Reason
	Operation string
	Message   string
	// Details holds the raw response body (possibly truncated) for invalid responses
	Details string
}

type APIStatus interface {
	Status() ErrorStatus
}

type StatusError struct {
	errStatus ErrorStatus
	cause     error
}

var _ APIStatus = (*StatusError)(nil)

func (se *StatusError) Error() string {
	msg := se.errStatus.Message
	if se.errStatus.Operation != "" {
		msg = fmt.Sprintf("%s: %s", se.errStatus.Operation, msg)
	}
	if se.cause != nil {
		msg = fmt.Sprintf("%s [error]: %v", msg, se.cause)
	}
	if se.errStatus.Details != "" {
		msg = fmt.Sprintf("%s [response]: %s", msg, se.errStatus.Details)
	}
	return msg
}

func (se *StatusError) Status() ErrorStatus {
	return se.errStatus
}

func (se *StatusError) Unwrap() error {
	return se.cause
}

func NewParseError(operation string, message string, cause error) error {
	return newStatusError(KindParse, ReasonNone, operation, message, "", cause)
}

func NewValidationError(operation string, reason Reason, message string, cause error) error {
	return newStatusError(KindValidation, reason, operation, message, "", cause)
}

func NewAuthError(operation string, message string) error {
	return newStatusError(KindAuth, ReasonNone, operation, message, "", nil)
}

func NewTransportError(operation string, message string, cause error) error {
	return newStatusError(KindTransport, ReasonNone, operation, message, "", cause)
}

func NewInvalidResponse(operation string, message string, rawBody []byte) error {
	return newStatusError(KindInvalidResponse, ReasonNone, operation, message, truncate(rawBody), nil)
}

func newStatusError(kind Kind, reason Reason, operation, message, details string, cause error) error {
	return &StatusError{
		errStatus: ErrorStatus{
			Kind:      kind,
			Reason:    reason,
			Operation: operation,
			Message:   message,
			Details:   details,
		},
		cause: cause,
	}
}

func truncate(rawBody []byte) string {
	if len(rawBody) > maxDetailsLength {
		return string(rawBody[:maxDetailsLength]) + "..."
	}
	return string(rawBody)
}

// AsAPIStatus returns the first APIStatus in the error chain, or nil.
func AsAPIStatus(err error) APIStatus {
	var status APIStatus
	if errors.As(err, &status) {
		return status
	}
	return nil
}

func IsParseError(err error) bool {
	return isKind(err, KindParse)
}

func IsValidationError(err error) bool {
	return isKind(err, KindValidation)
}

func IsAuthError(err error) bool {
	return isKind(err, KindAuth)
}

func IsTransportError(err error) bool {
	return isKind(err, KindTransport)
}

func IsInvalidResponse(err error) bool {
	return isKind(err, KindInvalidResponse)
}

// ReasonOf returns the validation reason of err, or ReasonNone for anything else.
func ReasonOf(err error) Reason {
	if status := AsAPIStatus(err); status != nil {
		return status.Status().Reason
	}
	return ReasonNone
}

func isKind(err error, kind Kind) bool {
	if status := AsAPIStatus(err); status != nil {
		return status.Status().Kind == kind
	}
	return false
}
