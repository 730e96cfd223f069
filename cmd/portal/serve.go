package main

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"health-records-portal/internal/adapters/audit/kafkabus"
	"health-records-portal/internal/adapters/auth/jwtauth"
	"health-records-portal/internal/adapters/blob"
	"health-records-portal/internal/adapters/llm/openai"
	"health-records-portal/internal/config"
	"health-records-portal/internal/domain/reports"
	"health-records-portal/internal/platform/logger"
	"health-records-portal/internal/platform/metrics"
	"health-records-portal/internal/ports/audit"
	"health-records-portal/internal/router"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}
}

func runServer(parent context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := openStore(ctx, cfg, cfg.AutoMigrate)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
		log.Info("connected to database", map[string]any{"driver": cfg.DBDriver})
	} else {
		log.Warn("DB_DRIVER not set, using in-memory repositories", nil)
	}

	files, err := newFileStorage(ctx, cfg)
	if err != nil {
		return err
	}

	m := metrics.New()

	assistant, err := openai.NewClient(openai.Config{
		BaseURL:     cfg.LLMBaseURL,
		APIKey:      cfg.LLMAPIKey,
		Model:       cfg.LLMModel,
		Timeout:     cfg.LLMTimeout,
		MaxTokens:   cfg.LLMMaxTokens,
		Temperature: cfg.LLMTemperature,
	}, log.With(map[string]any{"component": "llm"}), m)
	if err != nil {
		return err
	}
	if !assistant.IsConfigured() {
		log.Warn("LLM_API_KEY not set, open questions will answer with an inline error", nil)
	}

	var pub audit.Publisher = audit.Nop{}
	if brokers := cfg.Brokers(); len(brokers) > 0 {
		kp, err := kafkabus.New(brokers, cfg.KafkaAuditTopic)
		if err != nil {
			return err
		}
		defer kp.Close()
		pub = kp
		log.Info("audit events enabled", map[string]any{"topic": cfg.KafkaAuditTopic})
	}

	jwtCfg, err := tokenConfig(cfg, log)
	if err != nil {
		return err
	}

	handler := router.NewRouter(router.Options{
		AuthVerifier:   jwtauth.NewVerifier(jwtCfg),
		TokenIssuer:    jwtauth.NewSigner(jwtCfg),
		DevAuth:        cfg.IsDev(),
		DB:             db,
		Files:          files,
		Assistant:      assistant,
		Audit:          pub,
		Logger:         log,
		Metrics:        m,
		MaxUploadBytes: cfg.MaxUploadBytes(),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		// por encima del timeout del LLM
		WriteTimeout: cfg.LLMTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr, "env": cfg.Env})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down server", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	log.Info("server stopped", nil)
	return nil
}

func newFileStorage(ctx context.Context, cfg *config.Config) (reports.FileStorage, error) {
	switch cfg.StorageBackend {
	case config.StorageS3:
		return blob.NewS3(ctx, cfg.S3Bucket, cfg.S3Prefix)
	case config.StorageMemory:
		return blob.NewMemory(), nil
	default:
		return blob.NewLocal(cfg.UploadDir)
	}
}

// tokenConfig: en desarrollo sin JWT_SECRET se genera uno efímero
// (los tokens no sobreviven un reinicio).
func tokenConfig(cfg *config.Config, log logger.Logger) (jwtauth.Config, error) {
	secret := []byte(cfg.JWTSecret)
	if len(secret) == 0 {
		if !cfg.IsDev() {
			return jwtauth.Config{}, errors.New("JWT_SECRET is required outside development")
		}
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return jwtauth.Config{}, err
		}
		log.Warn("JWT_SECRET not set, using an ephemeral secret", nil)
	}
	return jwtauth.Config{Secret: secret, Issuer: cfg.JWTIssuer, TTL: cfg.JWTTTL}, nil
}
