// Package cli is the crewd command tree.
package cli

import (
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	// LogLevel overrides LOG_LEVEL when set.
	LogLevel string
}

// NewRootCommand creates the root command for crewd.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "crewd",
		Short: "Crew scheduling API",
		Long: `crewd assigns workers to shifts, texts them about assignments and
schedule changes, and provisions worker accounts.

Configuration is read from the environment (DATABASE_URL, MONGO_URI,
REDIS_ADDR, JWT_SECRET, TWILIO_*, SMTP_*).`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level override (trace|debug|info|warn|error)")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))

	return cmd
}
