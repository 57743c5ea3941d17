package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"

	"github.com/oksasatya/go-user-auth-api/config"
	pginfra "github.com/oksasatya/go-user-auth-api/internal/infrastructure/postgres"
	"github.com/oksasatya/go-user-auth-api/pkg/helpers"
)

// wait_for_db blocks until Postgres accepts connections. Exit code 1 on timeout.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dsn := cfg.PostgresDSN()
	ping := func(ctx context.Context) error {
		conn, err := pgx.Connect(ctx, dsn)
		if err != nil {
			return err
		}
		defer func() { _ = conn.Close(context.Background()) }()
		return conn.Ping(ctx)
	}

	if err := pginfra.WaitForDB(ctx, ping, cfg.WaitForDBInterval, cfg.WaitForDBTimeout, logger); err != nil {
		logger.WithError(err).Error("database did not become available")
		os.Exit(1)
	}
}
