package router

import (
	"fmt"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-user-auth-api/config"
	"github.com/oksasatya/go-user-auth-api/internal/interface/middleware"
)

// NewEngine builds the Gin engine with the global middleware stack.
func NewEngine(cfg *config.Config) (*gin.Engine, error) {
	r := gin.New()
	if err := middleware.TrustProxies(r, cfg.TrustedProxyList(), cfg.TrustedPlatform); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())

	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderRequestID},
		ExposeHeaders: []string{"Content-Length", middleware.HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}
	if origins := cfg.CORSOrigins(); len(origins) > 0 {
		corsCfg.AllowOrigins = origins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	r.Use(cors.New(corsCfg))

	if cfg.HTTPLogEnabled {
		r.Use(gin.Logger())
	}
	return r, nil
}
