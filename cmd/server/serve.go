package main

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"immobiliare-gpt-backend/docs"
	"immobiliare-gpt-backend/internal/ads"
	"immobiliare-gpt-backend/internal/events"
	"immobiliare-gpt-backend/internal/handlers"
	"immobiliare-gpt-backend/internal/notify"
	"immobiliare-gpt-backend/internal/plans"
	"immobiliare-gpt-backend/internal/supabase"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	configureSwagger(cfg.BaseURL)

	records, closeRecords, err := openRecordStore(ctx, cfg, logger, true)
	if err != nil {
		return err
	}
	defer closeRecords()

	objects, err := openObjectStore(ctx, cfg)
	if err != nil {
		return err
	}

	publisher, closePublisher, err := openPublisher(cfg, logger)
	if err != nil {
		return err
	}
	defer closePublisher()

	notifier := notify.NewNotifier(newMailer(cfg, logger), cfg.ContactInbox, logger)

	aiService, err := newAIService(ctx, cfg, logger)
	if err != nil {
		return err
	}

	catalog, err := plans.Load()
	if err != nil {
		return err
	}

	router := &handlers.Router{
		Health:  handlers.NewHealthHandler(records),
		Ads:     handlers.NewAdsHandler(ads.NewService(records, objects, events.Multi{publisher, notifier}, logger), logger),
		Contact: handlers.NewContactHandler(records, notifier, logger),
		AI:      handlers.NewAIHandler(aiService, logger),
		Auth:    handlers.NewAuthHandler(supabase.NewAuthClient(cfg.SupabaseURL, cfg.SupabaseServiceKey), cfg.OAuthRedirectURL, logger),
		Plans:   handlers.NewPlansHandler(catalog),
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.Engine(cfg, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("addr", srv.Addr), zap.String("environment", cfg.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// configureSwagger points the served API docs at the public base URL.
func configureSwagger(baseURL string) {
	if baseURL == "" {
		return
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return
	}
	docs.SwaggerInfo.Host = u.Host
	if u.Scheme == "https" {
		docs.SwaggerInfo.Schemes = []string{"https", "http"}
	} else {
		docs.SwaggerInfo.Schemes = []string{"http", "https"}
	}
}
