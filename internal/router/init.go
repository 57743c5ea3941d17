package router

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-user-auth-api/config"
	appuser "github.com/oksasatya/go-user-auth-api/internal/application"
	"github.com/oksasatya/go-user-auth-api/internal/container"
	"github.com/oksasatya/go-user-auth-api/internal/domain/repository"
	"github.com/oksasatya/go-user-auth-api/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/go-user-auth-api/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/go-user-auth-api/internal/interface/http"
	"github.com/oksasatya/go-user-auth-api/internal/router/modules"
	"github.com/oksasatya/go-user-auth-api/pkg/helpers"
)

// Deps is everything the HTTP modules need.
type Deps struct {
	Config    *config.Config
	Logger    *logrus.Logger
	Redis     *redis.Client
	Service   *appuser.Service
	Readiness *appuser.Readiness
}

// BuildDeps wires the service from the container singletons. Without a
// Postgres pool the in-memory repositories are used.
func BuildDeps() Deps {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	if logger == nil {
		logger = helpers.NewDiscardLogger()
	}
	pool := container.GetPGPool()
	rdb := container.GetRedis()

	var (
		users    repository.UserRepository
		tokens   repository.TokenRepository
		checkers []appuser.Checker
	)
	if pool != nil {
		users, tokens = pginfra.NewUserRepository(pool), pginfra.NewTokenRepository(pool)
		checkers = append(checkers, appuser.NewChecker("postgres", pool.Ping))
	} else {
		users, tokens = memory.NewUserRepository(), memory.NewTokenRepository()
	}

	svc := appuser.NewService(
		users,
		tokens,
		container.GetJWT(),
		rdb,
		logger,
		container.GetES(),
		cfg.ESUsersIndex,
	)
	svc.SessionTTL = cfg.SessionTTL
	svc.AppName = cfg.AppName
	if pub := container.GetRabbitPub(); pub != nil && cfg.MailSendEnabled {
		svc.Jobs = pub
	}

	if rdb != nil {
		checkers = append(checkers, appuser.NewChecker("redis", func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}))
	}

	return Deps{
		Config:    cfg,
		Logger:    logger,
		Redis:     rdb,
		Service:   svc,
		Readiness: appuser.NewReadiness(checkers...),
	}
}

// InitModules registers all application modules with the registry.
// It should be called once during startup.
func InitModules(r *Registry, d Deps) {
	cfg := d.Config

	r.Add(modules.NewUserModule(handlers.NewUserHandler(d.Service, d.Logger), d.Service, d.Redis, cfg.CreateRateLimit, cfg.TokenRateLimit))
	r.Add(modules.NewAdminModule(handlers.NewAdminHandler(d.Service, d.Logger), d.Service, d.Redis))
	if d.Readiness != nil {
		r.Add(modules.NewHealthModule(handlers.NewHealthHandler(d.Readiness)))
	}
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(d.Redis))
	}
}
