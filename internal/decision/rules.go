package decision

// Pure loan arithmetic. No I/O, no clock.

const (
	segment1Threshold = 2500
	segment2Threshold = 5000
	segment3Threshold = 7500

	// minCreditScore is the score at which the requested period is approved.
	minCreditScore = 0.1
)

// creditModifier maps the last four digits of a personal code to a modifier.
// Zero means the applicant has outstanding debt.
func (c EngineConfig) creditModifier(segment int) int {
	switch {
	case segment < segment1Threshold:
		return 0
	case segment < segment2Threshold:
		return c.Segment1Modifier
	case segment < segment3Threshold:
		return c.Segment2Modifier
	default:
		return c.Segment3Modifier
	}
}

// creditScore is (modifier / amount) * period / 10.
func creditScore(modifier, amount, period int) float64 {
	return float64(modifier) / float64(amount) * float64(period) / 10
}

// maxLoanForPeriod is the largest amount a modifier carries over period months.
func maxLoanForPeriod(modifier, period int) int {
	return modifier * period
}

func (c EngineConfig) searchFloor() int {
	if c.SearchFloor == SearchFloorAmount {
		return c.MinLoanAmount
	}
	return c.MinLoanPeriod
}

// eligibleAmount extends period one month at a time until the maximum loan
// reaches the search floor, then caps it at MaxLoanAmount. ok is false when
// the search runs past MaxLoanPeriod.
func (c EngineConfig) eligibleAmount(modifier, period int) (amount int, ok bool) {
	floor := c.searchFloor()
	for maxLoanForPeriod(modifier, period) < floor && period <= c.MaxLoanPeriod {
		period++
	}
	if period > c.MaxLoanPeriod {
		return 0, false
	}
	return min(c.MaxLoanAmount, maxLoanForPeriod(modifier, period)), true
}

// suitablePeriod is amount/modifier rounded up to the next step multiple.
func (c EngineConfig) suitablePeriod(amount, modifier int) int {
	period := amount / modifier
	if rem := period % c.LoanPeriodStep; rem != 0 {
		period += c.LoanPeriodStep - rem
	}
	return period
}

func (c EngineConfig) amountInRange(amount int) bool {
	return amount >= c.MinLoanAmount && amount <= c.MaxLoanAmount
}

func (c EngineConfig) periodInRange(period int) bool {
	return period >= c.MinLoanPeriod && period <= c.MaxLoanPeriod
}

func (c EngineConfig) periodAligned(period int) bool {
	return period%c.LoanPeriodStep == 0
}
