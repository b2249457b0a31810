package main

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"immobiliare-gpt-backend/internal/database"
	"immobiliare-gpt-backend/internal/models"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required to run migrations")
		}

		db, err := database.Open(cmd.Context(), cfg.DatabaseDriver, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := database.NewMigrator(db, logger).Run(cmd.Context()); err != nil {
			return err
		}
		logger.Info("migrations completed")
		return nil
	},
}

var setStatusCmd = &cobra.Command{
	Use:   "set-status <ad_request_id> <in_progress|completed|failed>",
	Short: "Update the status of an ad request",
	Long:  "Used by the fulfillment team to mark a request as completed or failed.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid ad request id %q: %w", args[0], err)
		}

		status := args[1]
		switch status {
		case models.AdStatusInProgress, models.AdStatusCompleted, models.AdStatusFailed:
		default:
			return fmt.Errorf("unknown status %q", status)
		}

		store, closeStore, err := openRecordStore(cmd.Context(), cfg, logger, false)
		if err != nil {
			return err
		}
		defer closeStore()

		if err := store.UpdateAdRequestStatus(cmd.Context(), id, status); err != nil {
			return fmt.Errorf("failed to update ad request %s: %w", id, err)
		}
		logger.Info("ad request status updated", zap.String("ad_request_id", id.String()), zap.String("status", status))
		return nil
	},
}
