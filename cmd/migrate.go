package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/yungbote/restkit-backend/internal/app"
	"github.com/yungbote/restkit-backend/internal/data/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Auto-migrate the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := app.NewLogger()
		if err != nil {
			return err
		}
		defer log.Sync()

		cfg := app.LoadConfig(log)
		svc, err := db.NewService(cfg.DB, log)
		if err != nil {
			return err
		}
		defer svc.Close()
		if err := svc.AutoMigrateAll(); err != nil {
			return err
		}
		log.Info("Migration complete")
		return nil
	},
}

var seedRolesCmd = &cobra.Command{
	Use:   "seed-roles",
	Short: "Load the role fixtures",
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := app.NewLogger()
		if err != nil {
			return err
		}
		defer log.Sync()

		a, err := app.New(cmd.Context(), log)
		if err != nil {
			return err
		}
		defer a.Close(context.Background())
		if err := a.SeedRoles(cmd.Context()); err != nil {
			return err
		}
		log.Info("Roles seeded")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd, seedRolesCmd)
}
