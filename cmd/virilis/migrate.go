package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/virilis/backend/internal/config"
	"github.com/virilis/backend/internal/database"
	"github.com/virilis/backend/internal/logger"
)

func newMigrateCmd() *cobra.Command {
	var target int32

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Long:  "Apply the embedded migrations. --to rolls forward or back to a version; by default the latest is applied.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			log := logger.NewLoggerWithService(cfg.Observability, nil)

			return database.MigrateTo(cmd.Context(), &log, cfg, target)
		},
	}

	cmd.Flags().Int32Var(&target, "to", -1, "target migration version (-1 for latest)")

	return cmd
}
