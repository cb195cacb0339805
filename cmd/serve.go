package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yungbote/restkit-backend/internal/app"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := app.NewLogger()
		if err != nil {
			return err
		}
		defer log.Sync()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := app.New(ctx, log)
		if err != nil {
			return err
		}
		defer a.Close(context.Background())

		if seed, _ := cmd.Flags().GetBool("seed-roles"); seed {
			if err := a.SeedRoles(ctx); err != nil {
				return err
			}
		}

		if err := a.Run(ctx); err != nil {
			return err
		}
		log.Info("Shut down")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().Bool("seed-roles", false, "Load role fixtures before serving")
}
