// Package domainerrors carries coded errors across layers. Services return
// these so transports can pick a status without inspecting message text.
package domainerrors

import (
	"errors"
	"net/http"
)

// Code classifies an error for the boundary layer.
type Code string

const (
	// Transport-level codes.
	CodeBadRequest  Code = "bad_request"
	CodeValidation  Code = "validation_error"
	CodeNotFound    Code = "not_found"
	CodeRateLimited Code = "rate_limited"
	CodeTimeout     Code = "timeout"
	CodeInternal    Code = "internal_error"

	// CodeInvariantViolation marks a broken domain invariant (bad config, impossible state).
	CodeInvariantViolation Code = "invariant_violation"

	// Loan decision codes.
	CodeInvalidPersonalCode Code = "invalid_personal_code"
	CodeInvalidLoanAmount   Code = "invalid_loan_amount"
	CodeInvalidLoanPeriod   Code = "invalid_loan_period"
	CodeInvalidCountry      Code = "invalid_country"
	CodeAgeOutOfRange       Code = "age_out_of_range"
	CodeNoValidLoan         Code = "no_valid_loan"
)

// Error is a coded domain error. Message is safe to show to callers unless
// the code maps to a 5xx status.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error by code, so errors.Is(err, New(code, "")) works.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// New creates a coded error.
func New(code Code, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, msg string) *Error {
	return &Error{Code: code, Message: msg, Err: err}
}

// Is reports whether err carries the given code anywhere in its chain.
func Is(err error, code Code) bool {
	return HasCode(err, code)
}

// HasCode reports whether the outermost coded error in the chain has code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf returns the code of the outermost coded error, or CodeInternal.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// MessageOf returns the caller-safe message of err. Internal errors and
// uncoded errors yield an empty string.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) && ToHTTPStatus(de.Code) < http.StatusInternalServerError {
		return de.Message
	}
	return ""
}

// ToHTTPStatus maps a code to an HTTP status.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeBadRequest, CodeValidation,
		CodeInvalidPersonalCode, CodeInvalidLoanAmount, CodeInvalidLoanPeriod,
		CodeInvalidCountry, CodeAgeOutOfRange:
		return http.StatusBadRequest
	case CodeNotFound, CodeNoValidLoan:
		return http.StatusNotFound
	case CodeRateLimited:
		return http.StatusTooManyRequests
	case CodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
