// Package commands implements the loanctl operator CLI.
package commands

import (
	"encoding/json"
	"io"
	"time"

	"github.com/spf13/cobra"

	"loanengine/internal/platform/config"
)

var (
	configPath string
	asOf       string
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "loanctl",
		Short:         "loanctl - offline loan decisions and identity code checks",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a loanengine YAML config (defaults apply when empty)")
	cmd.PersistentFlags().StringVar(&asOf, "date", "", "Evaluate as of this date (YYYY-MM-DD) instead of today")

	cmd.AddCommand(
		NewDecideCmd(),
		NewCodeCmd(),
	)
	return cmd
}

func loadConfig() (*config.Config, error) {
	return config.Load(configPath)
}

// evaluationTime resolves --date, defaulting to now.
func evaluationTime() (time.Time, error) {
	if asOf == "" {
		return time.Now(), nil
	}
	return time.Parse(time.DateOnly, asOf)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
