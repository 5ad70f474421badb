package handler

import (
	"strings"

	"loanengine/internal/decision"
	dErrors "loanengine/pkg/domain-errors"
)

// DecisionRequest is the HTTP request body for POST /loan/decision.
// Pointers distinguish absent fields from zero values.
type DecisionRequest struct {
	PersonalCode *string `json:"personalCode"`
	LoanAmount   *int    `json:"loanAmount"`
	LoanPeriod   *int    `json:"loanPeriod"`
	Country      *string `json:"country"`
}

// Validate checks that required fields are present. Value checks belong to
// the engine so their order and messages stay in one place. A missing country
// is left for the engine to report as an invalid country.
func (r *DecisionRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if r.PersonalCode == nil {
		return dErrors.New(dErrors.CodeBadRequest, "personalCode is required")
	}
	if r.LoanAmount == nil {
		return dErrors.New(dErrors.CodeBadRequest, "loanAmount is required")
	}
	if r.LoanPeriod == nil {
		return dErrors.New(dErrors.CodeBadRequest, "loanPeriod is required")
	}
	return nil
}

// ToDomain converts a validated request.
func (r *DecisionRequest) ToDomain() decision.Request {
	var country decision.Country
	if r.Country != nil {
		country = decision.ParseCountry(*r.Country)
	}
	return decision.Request{
		PersonalCode: strings.TrimSpace(*r.PersonalCode),
		LoanAmount:   *r.LoanAmount,
		LoanPeriod:   *r.LoanPeriod,
		Country:      country,
	}
}
