package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/go-user-auth-api/internal/interface/http"
	"github.com/oksasatya/go-user-auth-api/internal/interface/middleware"
)

// UserModule wires the account endpoints.
// Public: POST /api/user/create, POST /api/user/token
// Protected: GET /api/user/me, PATCH /api/user/me
type UserModule struct {
	Handler     *handlers.UserHandler
	Resolver    middleware.TokenResolver
	Redis       *redis.Client
	CreateLimit int
	TokenLimit  int
}

func NewUserModule(h *handlers.UserHandler, resolver middleware.TokenResolver, rdb *redis.Client, createLimit, tokenLimit int) *UserModule {
	return &UserModule{Handler: h, Resolver: resolver, Redis: rdb, CreateLimit: createLimit, TokenLimit: tokenLimit}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	createLimiter := middleware.RateLimit(m.Redis, m.CreateLimit, time.Minute, middleware.KeyByIPAndPath(), nil)
	tokenLimiter := middleware.RateLimit(m.Redis, m.TokenLimit, time.Minute, middleware.KeyByIPAndPath(), nil)

	user := rg.Group("/user")
	user.POST("/create", createLimiter, m.Handler.Create)
	user.POST("/token", tokenLimiter, m.Handler.Token)

	me := user.Group("/me")
	me.Use(middleware.Auth(m.Resolver))
	me.Use(middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		me.GET("", m.Handler.GetMe)
		me.PATCH("", m.Handler.UpdateMe)
	}
}
