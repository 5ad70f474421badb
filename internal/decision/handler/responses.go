package handler

import (
	"loanengine/internal/decision"
)

// DecisionResponse is the body of every /loan/decision response, including
// errors. Absent values serialize as null.
type DecisionResponse struct {
	LoanAmount   *int    `json:"loanAmount"`
	LoanPeriod   *int    `json:"loanPeriod"`
	ErrorMessage *string `json:"errorMessage"`
}

// FromDecision converts a domain Decision to an HTTP response.
func FromDecision(d decision.Decision) *DecisionResponse {
	return &DecisionResponse{
		LoanAmount:   d.LoanAmount,
		LoanPeriod:   d.LoanPeriod,
		ErrorMessage: d.ErrorMessage,
	}
}

// FromError builds an error response carrying only the caller-facing message.
func FromError(err error) *DecisionResponse {
	msg := decision.MessageOf(err)
	return &DecisionResponse{ErrorMessage: &msg}
}
