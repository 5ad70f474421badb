package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"loanengine/internal/decision"
	dErrors "loanengine/pkg/domain-errors"
)

func TestDecisionRequest_Validate(t *testing.T) {
	var nilReq *DecisionRequest
	assert.True(t, dErrors.HasCode(nilReq.Validate(), dErrors.CodeBadRequest))

	full := DecisionRequest{
		PersonalCode: ptr("50307172740"),
		LoanAmount:   ptr(2000),
		LoanPeriod:   ptr(24),
	}
	assert.NoError(t, full.Validate(), "country is optional at this layer")

	missing := full
	missing.LoanAmount = nil
	assert.True(t, dErrors.HasCode(missing.Validate(), dErrors.CodeBadRequest))
}

func TestDecisionRequest_ToDomain(t *testing.T) {
	req := DecisionRequest{
		PersonalCode: ptr(" 50307172740 "),
		LoanAmount:   ptr(2000),
		LoanPeriod:   ptr(24),
		Country:      ptr("lithuania"),
	}
	assert.Equal(t, decision.Request{
		PersonalCode: "50307172740",
		LoanAmount:   2000,
		LoanPeriod:   24,
		Country:      decision.CountryLithuania,
	}, req.ToDomain())

	req.Country = nil
	assert.Equal(t, decision.Country(""), req.ToDomain().Country)
}
