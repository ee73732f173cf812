package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/LSiluvaiSiprin/ReCon/internal/api"
	"github.com/LSiluvaiSiprin/ReCon/internal/bootstrap"
	"github.com/LSiluvaiSiprin/ReCon/internal/infrastructure/config"
	mongorepo "github.com/LSiluvaiSiprin/ReCon/internal/infrastructure/db/mongo"
	redisstore "github.com/LSiluvaiSiprin/ReCon/internal/infrastructure/db/redis"
	"github.com/LSiluvaiSiprin/ReCon/internal/telemetry"
	"github.com/LSiluvaiSiprin/ReCon/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title        ReCon API
// @version      1.0
// @description  Construction project tracking for clients and administrators.
// @BasePath     /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	// A missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.New(logger.Options{})
		bootLog.Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: cfg.ServiceName,
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
	log.Info().Msg("server stopped")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	tp, err := telemetry.New(ctx, telemetry.Config{
		Endpoint:    cfg.Telemetry.Endpoint,
		Insecure:    cfg.Telemetry.Insecure,
		ServiceName: cfg.ServiceName,
	}, log)
	if err != nil {
		return err
	}

	client, db, err := mongorepo.Connect(ctx, mongorepo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  cfg.ServiceName,
	})
	if err != nil {
		return err
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")

	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to redis")

	if err := mongorepo.EnsureIndexes(ctx, db); err != nil {
		return err
	}
	if err := bootstrap.EnsureAdmin(ctx, bootstrap.AdminConfig{
		Email:    cfg.Admin.Email,
		Password: cfg.Admin.Password,
		Username: cfg.Admin.Username,
	}, mongorepo.NewUserRepository(db), log); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.NewRouter(db, rdb, cfg, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		var errs []error
		if err := srv.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, err)
		}
		if err := rdb.Close(); err != nil {
			errs = append(errs, err)
		}
		if err := client.Disconnect(shutdownCtx); err != nil {
			errs = append(errs, err)
		}
		if err := tp.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, err)
		}
		return errors.Join(errs...)
	})

	return g.Wait()
}
