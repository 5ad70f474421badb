package decision

import (
	"errors"
	"fmt"
	"sort"
)

// SearchFloor selects the lower bound used while searching for an eligible
// amount.
type SearchFloor string

const (
	// SearchFloorPeriod compares modifier*period against the minimum loan
	// period. This matches the behavior existing clients were built against.
	SearchFloorPeriod SearchFloor = "period"
	// SearchFloorAmount compares modifier*period against the minimum loan amount.
	SearchFloorAmount SearchFloor = "amount"
)

// AgeBounds is the inclusive age window for one country.
type AgeBounds struct {
	MinAge int `mapstructure:"min_age" json:"min_age"`
	MaxAge int `mapstructure:"max_age" json:"max_age"`
}

// AgePolicy maps each supported country to its age bounds.
type AgePolicy map[Country]AgeBounds

// Countries returns the supported countries in sorted order.
func (p AgePolicy) Countries() []Country {
	out := make([]Country, 0, len(p))
	for c := range p {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// EngineConfig holds the loan bounds and credit parameters. It is read-only
// once passed to NewEngine.
type EngineConfig struct {
	MinLoanAmount  int
	MaxLoanAmount  int
	MinLoanPeriod  int
	MaxLoanPeriod  int
	LoanPeriodStep int

	Segment1Modifier int
	Segment2Modifier int
	Segment3Modifier int

	AgePolicy   AgePolicy
	SearchFloor SearchFloor
}

// DefaultConfig returns the production loan parameters.
func DefaultConfig() EngineConfig {
	return EngineConfig{
		MinLoanAmount:    2000,
		MaxLoanAmount:    10000,
		MinLoanPeriod:    12,
		MaxLoanPeriod:    48,
		LoanPeriodStep:   6,
		Segment1Modifier: 100,
		Segment2Modifier: 300,
		Segment3Modifier: 1000,
		AgePolicy: AgePolicy{
			CountryEstonia:   {MinAge: 18, MaxAge: 78},
			CountryLatvia:    {MinAge: 18, MaxAge: 95},
			CountryLithuania: {MinAge: 18, MaxAge: 90},
		},
		SearchFloor: SearchFloorPeriod,
	}
}

// Validate rejects configurations the engine cannot evaluate against.
func (c EngineConfig) Validate() error {
	var errs []error
	if c.MinLoanAmount <= 0 || c.MinLoanAmount > c.MaxLoanAmount {
		errs = append(errs, fmt.Errorf("loan amount bounds [%d, %d] are invalid", c.MinLoanAmount, c.MaxLoanAmount))
	}
	if c.MinLoanPeriod <= 0 || c.MinLoanPeriod > c.MaxLoanPeriod {
		errs = append(errs, fmt.Errorf("loan period bounds [%d, %d] are invalid", c.MinLoanPeriod, c.MaxLoanPeriod))
	}
	if c.LoanPeriodStep <= 0 {
		errs = append(errs, fmt.Errorf("loan period step must be positive, got %d", c.LoanPeriodStep))
	}
	if c.Segment1Modifier <= 0 || c.Segment2Modifier <= 0 || c.Segment3Modifier <= 0 {
		errs = append(errs, errors.New("credit modifiers must be positive"))
	}
	if len(c.AgePolicy) == 0 {
		errs = append(errs, errors.New("age policy must define at least one country"))
	}
	for _, country := range c.AgePolicy.Countries() {
		b := c.AgePolicy[country]
		if country == "" {
			errs = append(errs, errors.New("age policy contains an empty country"))
		}
		if b.MinAge < 0 || b.MinAge > b.MaxAge {
			errs = append(errs, fmt.Errorf("age bounds for %s [%d, %d] are invalid", country, b.MinAge, b.MaxAge))
		}
	}
	switch c.SearchFloor {
	case SearchFloorPeriod, SearchFloorAmount:
	default:
		errs = append(errs, fmt.Errorf("unknown search floor %q", c.SearchFloor))
	}
	return errors.Join(errs...)
}
