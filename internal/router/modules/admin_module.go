package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/go-user-auth-api/internal/interface/http"
	"github.com/oksasatya/go-user-auth-api/internal/interface/middleware"
)

// AdminModule exposes user management to staff and superusers.
type AdminModule struct {
	Handler  *handlers.AdminHandler
	Resolver middleware.TokenResolver
	Redis    *redis.Client
}

func NewAdminModule(h *handlers.AdminHandler, resolver middleware.TokenResolver, rdb *redis.Client) *AdminModule {
	return &AdminModule{Handler: h, Resolver: resolver, Redis: rdb}
}

func (m *AdminModule) Register(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	admin.Use(middleware.Auth(m.Resolver), middleware.RequireStaff())
	admin.Use(middleware.RateLimit(m.Redis, 300, time.Minute, middleware.KeyByUserID(), nil))
	{
		admin.GET("/users", m.Handler.List)
		admin.POST("/users", m.Handler.Create)
		admin.GET("/users/search", m.Handler.Search)
		admin.GET("/users/:id", m.Handler.Get)
		admin.PATCH("/users/:id", m.Handler.Update)
	}
}
