package decision

import (
	"context"
	"fmt"

	"loanengine/internal/personalcode"
	"loanengine/pkg/requestcontext"
)

// Engine computes loan decisions. It holds only immutable configuration and
// is safe for concurrent use.
type Engine struct {
	cfg EngineConfig
}

// NewEngine validates cfg and returns an engine bound to a copy of it.
func NewEngine(cfg EngineConfig) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine config: %w", err)
	}
	policy := make(AgePolicy, len(cfg.AgePolicy))
	for k, v := range cfg.AgePolicy {
		policy[k] = v
	}
	cfg.AgePolicy = policy
	return &Engine{cfg: cfg}, nil
}

// Config returns the engine's configuration.
func (e *Engine) Config() EngineConfig {
	return e.cfg
}

// Decide validates req and computes a decision. Validation failures and an
// exhausted eligible-amount search are returned as coded errors; a low credit
// score is a Decision with an error message, not an error.
//
// Validation runs fail-fast in this order: personal code, amount, period,
// country, age policy. "Today" is requestcontext.Now(ctx).
func (e *Engine) Decide(ctx context.Context, req Request) (Decision, error) {
	code, err := personalcode.Parse(req.PersonalCode)
	if err != nil {
		return Decision{}, errInvalidPersonalCode(err)
	}
	if !e.cfg.amountInRange(req.LoanAmount) {
		return Decision{}, errInvalidLoanAmount()
	}
	if !e.cfg.periodInRange(req.LoanPeriod) || !e.cfg.periodAligned(req.LoanPeriod) {
		return Decision{}, errInvalidLoanPeriod()
	}
	bounds, err := e.ageBounds(req.Country)
	if err != nil {
		return Decision{}, err
	}
	if err := e.checkAge(ctx, code.String(), bounds); err != nil {
		return Decision{}, err
	}

	modifier := e.cfg.creditModifier(code.Segment())
	if modifier == 0 {
		return rejected(nil, nil), nil
	}

	eligible, ok := e.cfg.eligibleAmount(modifier, req.LoanPeriod)
	if !ok {
		return Decision{}, errNoValidLoan()
	}

	if creditScore(modifier, req.LoanAmount, req.LoanPeriod) >= minCreditScore {
		return approved(eligible, req.LoanPeriod), nil
	}

	expected := e.cfg.suitablePeriod(req.LoanAmount, modifier)
	switch {
	case !e.cfg.periodInRange(expected):
		return rejected(intPtr(eligible), nil), nil
	case !e.cfg.amountInRange(eligible):
		return rejected(nil, intPtr(expected)), nil
	default:
		return rejected(intPtr(eligible), intPtr(expected)), nil
	}
}

func (e *Engine) ageBounds(country Country) (AgeBounds, error) {
	if country == "" {
		return AgeBounds{}, errInvalidCountry()
	}
	bounds, ok := e.cfg.AgePolicy[country]
	if !ok {
		return AgeBounds{}, errInvalidCountry()
	}
	return bounds, nil
}

// checkAge applies the country policy at today and at the latest possible
// maturity date (today + MaxLoanPeriod months).
func (e *Engine) checkAge(ctx context.Context, code string, bounds AgeBounds) error {
	now := requestcontext.Now(ctx)
	age, birthDate, err := personalcode.Age(code, now)
	if err != nil {
		return errInvalidPersonalCode(err)
	}
	maturity := now.AddDate(0, e.cfg.MaxLoanPeriod, 0)
	ageAtMaturity := personalcode.YearsBetween(birthDate, maturity)
	if age < bounds.MinAge || ageAtMaturity > bounds.MaxAge {
		return errAgeOutOfRange()
	}
	return nil
}
