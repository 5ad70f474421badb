package decision

import "strings"

// Country selects the age policy applied to an applicant.
type Country string

const (
	CountryEstonia   Country = "ESTONIA"
	CountryLatvia    Country = "LATVIA"
	CountryLithuania Country = "LITHUANIA"
)

// ParseCountry normalizes s to a Country. The result is not checked against
// an AgePolicy; the engine does that.
func ParseCountry(s string) Country {
	return Country(strings.ToUpper(strings.TrimSpace(s)))
}

func (c Country) String() string { return string(c) }

// Request is a single loan application.
type Request struct {
	PersonalCode string
	LoanAmount   int
	LoanPeriod   int // months
	Country      Country
}

// Outcome classifies a computed decision.
type Outcome string

const (
	// OutcomeApproved: requested period accepted with the eligible amount.
	OutcomeApproved Outcome = "approved"
	// OutcomeCounterOffer: requested terms rejected, both amount and period suggested.
	OutcomeCounterOffer Outcome = "counter_offer"
	// OutcomeRejected: no loan, or only a partial suggestion.
	OutcomeRejected Outcome = "rejected"
)

// Decision is the result of a computable request. Nil fields are absent from
// the offer.
type Decision struct {
	LoanAmount   *int
	LoanPeriod   *int
	ErrorMessage *string
	Outcome      Outcome
}

// Approved reports whether the decision carries no error message.
func (d Decision) Approved() bool {
	return d.ErrorMessage == nil
}

func approved(amount, period int) Decision {
	return Decision{LoanAmount: &amount, LoanPeriod: &period, Outcome: OutcomeApproved}
}

func rejected(amount, period *int) Decision {
	msg := MsgNoValidLoan
	outcome := OutcomeRejected
	if amount != nil && period != nil {
		outcome = OutcomeCounterOffer
	}
	return Decision{LoanAmount: amount, LoanPeriod: period, ErrorMessage: &msg, Outcome: outcome}
}

func intPtr(v int) *int { return &v }
