package main

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"immobiliare-gpt-backend/internal/ads"
	"immobiliare-gpt-backend/internal/ai"
	"immobiliare-gpt-backend/internal/config"
	"immobiliare-gpt-backend/internal/database"
	"immobiliare-gpt-backend/internal/events"
	"immobiliare-gpt-backend/internal/models"
	"immobiliare-gpt-backend/internal/notify"
	"immobiliare-gpt-backend/internal/objectstore"
	"immobiliare-gpt-backend/internal/supabase"
)

type recordStore interface {
	ads.RecordStore
	Ping(ctx context.Context) error
	CreateContact(ctx context.Context, contact *models.Contact) error
	UpdateAdRequestStatus(ctx context.Context, id uuid.UUID, status string) error
}

// openRecordStore connects to the database directly when DATABASE_URL is set
// and falls back to the PostgREST API otherwise.
func openRecordStore(ctx context.Context, cfg *config.Config, logger *zap.Logger, migrate bool) (recordStore, func(), error) {
	if cfg.DatabaseURL == "" {
		store, err := supabase.DialRest(cfg.SupabaseURL, cfg.SupabaseServiceKey)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using supabase rest record store")
		return store, func() {}, nil
	}

	db, err := database.Open(ctx, cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	if migrate {
		if err := database.NewMigrator(db, logger).Run(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
	}
	logger.Info("using sql record store", zap.String("driver", cfg.DatabaseDriver))

	store := database.NewStore(db)
	return store, func() {
		if err := store.Close(); err != nil {
			logger.Warn("failed to close database", zap.Error(err))
		}
	}, nil
}

func openObjectStore(ctx context.Context, cfg *config.Config) (ads.ObjectStore, error) {
	if cfg.StorageDriver != config.StorageDriverMinio {
		return supabase.NewStorageClient(cfg.SupabaseURL, cfg.SupabaseServiceKey, cfg.SupabaseStorageBucket), nil
	}

	store, err := objectstore.NewMinioStore(objectstore.MinioOptions{
		Endpoint:  cfg.MinioEndpoint,
		AccessKey: cfg.MinioAccessKey,
		SecretKey: cfg.MinioSecretKey,
		Bucket:    cfg.MinioBucket,
		UseSSL:    cfg.MinioUseSSL,
		PublicURL: cfg.MinioPublicURL,
	})
	if err != nil {
		return nil, err
	}
	if err := store.EnsureBucket(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

func openPublisher(cfg *config.Config, logger *zap.Logger) (events.SubmittedPublisher, func(), error) {
	if cfg.AMQPURL == "" {
		logger.Info("AMQP_URL not set, submission events are disabled")
		return events.Noop{}, func() {}, nil
	}

	publisher, err := events.Dial(cfg.AMQPURL, cfg.AMQPQueue, logger)
	if err != nil {
		return nil, nil, err
	}
	return publisher, func() {
		if err := publisher.Close(); err != nil {
			logger.Warn("failed to close amqp connection", zap.Error(err))
		}
	}, nil
}

func newMailer(cfg *config.Config, logger *zap.Logger) notify.Mailer {
	if cfg.MailerSendAPIKey == "" || cfg.MailFromEmail == "" {
		logger.Info("mail is disabled")
		return notify.Noop{}
	}
	return notify.NewMailerSend(cfg.MailerSendAPIKey, cfg.MailFromEmail, cfg.MailFromName)
}

// newAIService returns nil when the provider has no API key; the AI routes
// then answer 503.
func newAIService(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*ai.Service, error) {
	if cfg.AIKey() == "" {
		logger.Warn("no API key for the AI provider, AI endpoints are disabled", zap.String("provider", cfg.AIProvider))
		return nil, nil
	}

	var provider ai.Provider
	switch cfg.AIProvider {
	case config.AIProviderGemini:
		client, err := ai.NewGeminiClient(ctx, ai.GeminiOptions{
			APIKey:     cfg.GeminiAPIKey,
			ImageModel: cfg.AIImageModel,
		})
		if err != nil {
			return nil, err
		}
		provider = client
	default:
		provider = ai.NewOpenAIClient(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.AIImageModel)
	}

	logger.Info("ai provider configured", zap.String("provider", cfg.AIProvider), zap.String("model", cfg.AIModel))
	return ai.NewService(provider, cfg.AIModel, cfg.AIMaxTokens, cfg.AILanguage), nil
}
