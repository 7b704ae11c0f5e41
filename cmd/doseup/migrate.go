package main

import (
	pg "doseup-parent/internal/adapters/storage/postgres"

	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	// migrate up
	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := bootstrap(true)
			if err != nil {
				return err
			}
			defer rt.close()

			if err := pg.Migrate(cmd.Context(), rt.db); err != nil {
				rt.log.Error("migrate up failed", map[string]any{"error": err})
				return err
			}
			rt.log.Info("migrations applied", nil)
			return nil
		},
	})

	// migrate status
	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := bootstrap(true)
			if err != nil {
				return err
			}
			defer rt.close()

			return pg.MigrationStatus(cmd.Context(), rt.db)
		},
	})

	return cmd
}
