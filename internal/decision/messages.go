package decision

import (
	dErrors "loanengine/pkg/domain-errors"
)

// Caller-facing messages.
const (
	MsgInvalidPersonalCode = "Invalid personal ID code!"
	MsgInvalidLoanAmount   = "Invalid loan amount!"
	MsgInvalidLoanPeriod   = "Invalid loan period!"
	MsgNoValidLoan         = "No valid loan found!"
	MsgAgeOutOfRange       = "Unfortunately, we cannot offer a loan based on our age policy"
	MsgInvalidCountry      = "Invalid country!"
	MsgInvalidRequest      = "Invalid request!"
	MsgUnexpected          = "An unexpected error occurred"
)

// ErrorCode is the stable catalogue code reported alongside a message.
type ErrorCode string

const (
	ErrCodeInvalidPersonalCode ErrorCode = "E1001"
	ErrCodeInvalidLoanAmount   ErrorCode = "E1002"
	ErrCodeInvalidLoanPeriod   ErrorCode = "E1003"
	ErrCodeNoValidLoan         ErrorCode = "E1004"
	ErrCodeAgeOutOfRange       ErrorCode = "E1005"
	ErrCodeInvalidCountry      ErrorCode = "E1006"
	ErrCodeInvalidRequest      ErrorCode = "E1007"
	ErrCodeUnexpected          ErrorCode = "E1008"
)

var catalogue = map[dErrors.Code]ErrorCode{
	dErrors.CodeInvalidPersonalCode: ErrCodeInvalidPersonalCode,
	dErrors.CodeInvalidLoanAmount:   ErrCodeInvalidLoanAmount,
	dErrors.CodeInvalidLoanPeriod:   ErrCodeInvalidLoanPeriod,
	dErrors.CodeNoValidLoan:         ErrCodeNoValidLoan,
	dErrors.CodeAgeOutOfRange:       ErrCodeAgeOutOfRange,
	dErrors.CodeInvalidCountry:      ErrCodeInvalidCountry,
	dErrors.CodeBadRequest:          ErrCodeInvalidRequest,
	dErrors.CodeValidation:          ErrCodeInvalidRequest,
}

// ErrorCodeOf returns the catalogue code for err. Uncoded and internal errors
// map to ErrCodeUnexpected.
func ErrorCodeOf(err error) ErrorCode {
	if c, ok := catalogue[dErrors.CodeOf(err)]; ok {
		return c
	}
	return ErrCodeUnexpected
}

// MessageOf returns the caller-facing message for err.
func MessageOf(err error) string {
	switch ErrorCodeOf(err) {
	case ErrCodeInvalidRequest:
		return MsgInvalidRequest
	case ErrCodeUnexpected:
		return MsgUnexpected
	}
	return dErrors.MessageOf(err)
}

func errInvalidPersonalCode(cause error) error {
	return dErrors.Wrap(cause, dErrors.CodeInvalidPersonalCode, MsgInvalidPersonalCode)
}

func errInvalidLoanAmount() error {
	return dErrors.New(dErrors.CodeInvalidLoanAmount, MsgInvalidLoanAmount)
}

func errInvalidLoanPeriod() error {
	return dErrors.New(dErrors.CodeInvalidLoanPeriod, MsgInvalidLoanPeriod)
}

func errInvalidCountry() error {
	return dErrors.New(dErrors.CodeInvalidCountry, MsgInvalidCountry)
}

func errAgeOutOfRange() error {
	return dErrors.New(dErrors.CodeAgeOutOfRange, MsgAgeOutOfRange)
}

func errNoValidLoan() error {
	return dErrors.New(dErrors.CodeNoValidLoan, MsgNoValidLoan)
}
