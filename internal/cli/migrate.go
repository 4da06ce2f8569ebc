package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stagecrew/crew-scheduler/internal/infrastructure/db/postgres"
)

// MigrateOptions holds flags for the migrate command.
type MigrateOptions struct {
	*RootOptions
	Steps int
}

// NewMigrateCommand creates the migrate command with its up and down
// subcommands.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &MigrateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back the relational schema",
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply every pending migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap(cmd.Context(), opts.RootOptions)
			if err != nil {
				return err
			}
			if err := postgres.MigrateUp(cfg.Postgres.URL); err != nil {
				return err
			}
			log.Info().Msg("migrations applied")
			return nil
		},
	}

	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Steps <= 0 {
				return fmt.Errorf("--steps must be positive, got %d", opts.Steps)
			}
			cfg, log, err := bootstrap(cmd.Context(), opts.RootOptions)
			if err != nil {
				return err
			}
			if err := postgres.MigrateDown(cfg.Postgres.URL, opts.Steps); err != nil {
				return err
			}
			log.Info().Int("steps", opts.Steps).Msg("migrations rolled back")
			return nil
		},
	}
	down.Flags().IntVar(&opts.Steps, "steps", 1, "number of migrations to roll back")

	cmd.AddCommand(up, down)
	return cmd
}
