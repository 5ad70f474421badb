package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"loanengine/internal/personalcode"
)

var errInvalidCode = errors.New("invalid personal code")

type codeOutput struct {
	Code      string `json:"code"`
	Valid     bool   `json:"valid"`
	BirthDate string `json:"birthDate,omitempty"`
	Sex       string `json:"sex,omitempty"`
	Age       *int   `json:"age,omitempty"`
	Segment   *int   `json:"segment,omitempty"`
	Error     string `json:"error,omitempty"`
}

func NewCodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "code <personal-code>",
		Short: "Validate and describe a personal identification code",
		Args:  cobra.ExactArgs(1),
		RunE:  runCode,
	}
}

func runCode(cmd *cobra.Command, args []string) error {
	now, err := evaluationTime()
	if err != nil {
		return fmt.Errorf("invalid --date: %w", err)
	}

	raw := args[0]
	code, err := personalcode.Parse(raw)
	if err != nil {
		if werr := writeJSON(cmd.OutOrStdout(), codeOutput{Code: raw, Error: err.Error()}); werr != nil {
			return werr
		}
		return fmt.Errorf("%w: %v", errInvalidCode, err)
	}

	out := codeOutput{
		Code:      code.String(),
		Valid:     true,
		BirthDate: code.BirthDate().Format(time.DateOnly),
		Sex:       string(code.Sex()),
		Segment:   intPtr(code.Segment()),
	}
	if age, _, err := personalcode.Age(raw, now); err == nil {
		out.Age = intPtr(age)
	} else {
		out.Error = err.Error()
	}
	return writeJSON(cmd.OutOrStdout(), out)
}

func intPtr(v int) *int { return &v }
