package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/subosito/gotenv"

	"github.com/mkkalpana/text-morph/internal/application"
	aiapp "github.com/mkkalpana/text-morph/internal/application/ai"
	analysisapp "github.com/mkkalpana/text-morph/internal/application/analysis"
	authapp "github.com/mkkalpana/text-morph/internal/application/auth"
	"github.com/mkkalpana/text-morph/internal/config"
	domanalysis "github.com/mkkalpana/text-morph/internal/domain/analysis"
	"github.com/mkkalpana/text-morph/internal/domain/users"
	aiopenai "github.com/mkkalpana/text-morph/internal/infra/ai/openai"
	mysqldb "github.com/mkkalpana/text-morph/internal/infra/db/mysql"
	postgresdb "github.com/mkkalpana/text-morph/internal/infra/db/postgres"
	"github.com/mkkalpana/text-morph/internal/infra/httpserver"
	minioStore "github.com/mkkalpana/text-morph/internal/infra/storage"
	"github.com/mkkalpana/text-morph/internal/infra/token"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	// .env is optional; the config file is the source of truth
	_ = gotenv.Load()

	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	cfg, err := config.Load(path)
	if err != nil {
		logger.Fatal().Err(err).Msg("config load error")
	}

	ctx := context.Background()

	// connect database (mysql by default, postgres as the alternative)
	var (
		db          *sql.DB
		userRepo    users.Repository
		historyRepo domanalysis.HistoryRepository
	)
	switch cfg.Database.Driver {
	case "postgres":
		db, err = postgresdb.Connect(ctx, cfg.PostgresDSN())
		if err == nil {
			err = postgresdb.EnsureSchema(ctx, db)
		}
		if err == nil {
			userRepo = postgresdb.NewUserRepository(db)
			historyRepo = postgresdb.NewHistoryRepository(db)
		}
	default:
		db, err = mysqldb.Connect(ctx, cfg.MySQLDSN())
		if err == nil {
			err = mysqldb.EnsureSchema(ctx, db)
		}
		if err == nil {
			userRepo = mysqldb.NewUserRepository(db)
			historyRepo = mysqldb.NewHistoryRepository(db)
		}
	}
	if err != nil {
		logger.Fatal().Err(err).Str("driver", cfg.Database.Driver).Msg("database init error")
	}
	defer db.Close()

	// object storage for archived uploads (optional)
	var artifacts domanalysis.ArtifactStore
	if cfg.Minio.Enabled {
		store, err := minioStore.New(ctx,
			cfg.Minio.Endpoint,
			cfg.Minio.Region,
			cfg.Minio.BucketName,
			cfg.Minio.AccessKey,
			cfg.Minio.SecretKey,
			cfg.Minio.UseSSL,
		)
		if err != nil {
			logger.Fatal().Err(err).Msg("minio init error")
		}
		artifacts = store
	}

	tokens := token.NewManager(cfg.Auth.Secret, cfg.TokenTTL())

	authSvc := &authapp.Service{
		Users:  userRepo,
		Tokens: tokens,
		Clock:  application.SystemClock{},
	}
	analysisSvc := &analysisapp.Service{
		Repo:         historyRepo,
		Artifacts:    artifacts,
		Clock:        application.SystemClock{},
		MaxFileSize:  cfg.MaxFileSize(),
		AllowedTypes: cfg.Upload.AllowedTypes,
	}

	// AI summarization only runs when an API key is configured
	var aiSvc *aiapp.Service
	if cfg.AI.APIKey != "" {
		aiSvc = aiapp.NewService(aiopenai.NewClient(cfg.AI.APIKey, cfg.AI.Model))
	} else {
		aiSvc = aiapp.NewService(nil)
		logger.Info().Msg("ai summarization disabled: no api key configured")
	}

	handler := httpserver.NewRouter(httpserver.Deps{
		Auth:     authSvc,
		Analysis: analysisSvc,
		AI:       aiSvc,
		Users:    userRepo,
		Tokens:   tokens,
		DB:       db,
		Logger:   &logger,
		Origins:  cfg.CORS.Origins,
	})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	logger.Info().Msg("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		logger.Error().Err(err).Msg("shutdown error")
	}
}
