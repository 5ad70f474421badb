package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"loanengine/internal/decision"
	"loanengine/internal/decision/handler"
	"loanengine/pkg/requestcontext"
)

type decideOptions struct {
	personalCode string
	amount       int
	period       int
	country      string
}

type decideOutput struct {
	*handler.DecisionResponse
	Outcome string `json:"outcome,omitempty"`
}

func NewDecideCmd() *cobra.Command {
	opts := &decideOptions{}
	cmd := &cobra.Command{
		Use:   "decide",
		Short: "Evaluate one loan request with the configured engine",
		Example: `  loanctl decide --code 50307172740 --amount 4000 --period 12
  loanctl decide --code 38411266610 --amount 2000 --period 24 --country latvia`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDecide(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.personalCode, "code", "", "Personal identification code")
	cmd.Flags().IntVar(&opts.amount, "amount", 0, "Requested loan amount")
	cmd.Flags().IntVar(&opts.period, "period", 0, "Requested loan period in months")
	cmd.Flags().StringVar(&opts.country, "country", string(decision.CountryEstonia), "Applicant country")
	_ = cmd.MarkFlagRequired("code")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("period")
	return cmd
}

// runDecide prints the decision as JSON. Requests the engine refuses are
// printed the same way and reported as an error so the exit code is 1.
func runDecide(cmd *cobra.Command, opts *decideOptions) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	engine, err := decision.NewEngine(cfg.Engine.Decision())
	if err != nil {
		return err
	}
	now, err := evaluationTime()
	if err != nil {
		return fmt.Errorf("invalid --date: %w", err)
	}

	ctx := requestcontext.WithTime(context.Background(), now)
	result, err := engine.Decide(ctx, decision.Request{
		PersonalCode: opts.personalCode,
		LoanAmount:   opts.amount,
		LoanPeriod:   opts.period,
		Country:      decision.ParseCountry(opts.country),
	})
	if err != nil {
		if werr := writeJSON(cmd.OutOrStdout(), decideOutput{DecisionResponse: handler.FromError(err)}); werr != nil {
			return werr
		}
		return fmt.Errorf("%s: %s", decision.ErrorCodeOf(err), decision.MessageOf(err))
	}

	return writeJSON(cmd.OutOrStdout(), decideOutput{
		DecisionResponse: handler.FromDecision(result),
		Outcome:          string(result.Outcome),
	})
}
