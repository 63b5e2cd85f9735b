// Command server runs the "My Doctor" booking backend: the REST surface the
// mobile client consumes (auth, doctor directory, appointment booking, the
// symptom-checker bot) plus the versioned API for quota, schedule, favorites,
// and records.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/mydoctor-app/go-booking-backend/internal/config"
	"github.com/mydoctor-app/go-booking-backend/internal/domain"
	httpapi "github.com/mydoctor-app/go-booking-backend/internal/http"
	"github.com/mydoctor-app/go-booking-backend/internal/observability"
	"github.com/mydoctor-app/go-booking-backend/internal/repo"
	"github.com/mydoctor-app/go-booking-backend/internal/search"
	"github.com/mydoctor-app/go-booking-backend/internal/sysutil"
)

// version is stamped at build time via -ldflags.
var version = "dev"

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	sysutil.SetLogLevel(cfg.LogLevel)
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("otel setup failed")
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOTel(sctx); err != nil {
			log.Warn().Err(err).Msg("otel shutdown")
		}
	}()

	db, err := repo.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database failed")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate failed")
	}

	if cfg.DoctorsPath != "" {
		n, err := seedDoctors(ctx, db, cfg.DoctorsPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.DoctorsPath).Msg("seed doctors failed")
		}
		log.Info().Int64("inserted", n).Str("path", cfg.DoctorsPath).Msg("doctor directory seeded")
	}

	idx, err := search.NewIndexFromMarkdown(cfg.FactsPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.FactsPath).Msg("build fact index failed")
	}

	gin.SetMode(cfg.GinMode)
	engine := gin.New()
	httpapi.RegisterRoutes(engine, db, idx, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("version", version).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// seedDoctors loads the doctor directory from a JSON file and upserts it,
// skipping emails already present. Returns the number of rows inserted.
func seedDoctors(ctx context.Context, db *gorm.DB, path string) (int64, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	var docs []domain.Doctor
	if err := json.Unmarshal(b, &docs); err != nil {
		return 0, err
	}
	return repo.UpsertDoctors(ctx, db, docs)
}
