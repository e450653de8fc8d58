// Command server runs the juris-ledger HTTP API.
//
// @title        Juris Ledger API
// @version      1.0
// @description  Bookkeeping for a law practice: clients, legal actions, payments, balances and backups.
// @BasePath     /api/v1
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/tbourn/juris-ledger/internal/config"
	"github.com/tbourn/juris-ledger/internal/events"
	httpapi "github.com/tbourn/juris-ledger/internal/http"
	"github.com/tbourn/juris-ledger/internal/observability"
	"github.com/tbourn/juris-ledger/internal/repo"
	"github.com/tbourn/juris-ledger/internal/sysutil"
)

// version is stamped at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	_ = godotenv.Load()
	cfg := config.MustLoad()
	sysutil.ConfigureLogger(cfg.LogLevel, cfg.LogPretty, nil)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.Setup(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("tracing setup failed")
	}

	st, err := repo.Open(cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DB.Driver).Msg("open database")
	}
	if err := repo.EnsureSchema(ctx, st.DB); err != nil {
		log.Fatal().Err(err).Msg("schema check failed")
	}
	if err := os.MkdirAll(cfg.BackupDir, 0o755); err != nil {
		log.Fatal().Err(err).Str("dir", cfg.BackupDir).Msg("create backup directory")
	}

	bus := events.NewBus()
	var fwd *events.AMQPForwarder
	if cfg.AMQP.URL != "" {
		fwd, err = events.DialAMQP(cfg.AMQP.URL, cfg.AMQP.Queue)
		if err != nil {
			// The ledger works without the broker; only remote listeners miss out.
			log.Error().Err(err).Msg("amqp unavailable, change events stay local")
		} else {
			go fwd.Run(ctx, bus)
			log.Info().Str("queue", fwd.Queue).Msg("forwarding change events")
		}
	}

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	httpapi.RegisterRoutes(r, st, bus, cfg)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("version", version).
			Str("driver", cfg.DB.Driver).
			Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	if fwd != nil {
		_ = fwd.Close()
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("tracing shutdown")
	}
	if err := st.Close(); err != nil {
		log.Error().Err(err).Msg("close database")
	}
	log.Info().Msg("server stopped")
}
