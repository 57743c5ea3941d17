package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-user-auth-api/pkg/response"
)

type Registry struct {
	Engine      *gin.Engine
	API         *gin.RouterGroup
	middlewares []gin.HandlerFunc
	modules     []Module
}

// NewRegistry mounts the /api group and answers unknown methods on known
// paths with 405 and unknown paths with 404, both in the error envelope.
func NewRegistry(engine *gin.Engine) *Registry {
	engine.HandleMethodNotAllowed = true
	engine.NoMethod(func(c *gin.Context) {
		response.Error[any](c, http.StatusMethodNotAllowed, "method \""+c.Request.Method+"\" not allowed", nil)
	})
	engine.NoRoute(func(c *gin.Context) {
		response.Error[any](c, http.StatusNotFound, "not found", nil)
	})
	api := engine.Group("/api")
	return &Registry{Engine: engine, API: api}
}

func (r *Registry) Use(mw ...gin.HandlerFunc) {
	r.middlewares = append(r.middlewares, mw...)
}

func (r *Registry) Add(mod Module) {
	r.modules = append(r.modules, mod)
}

func (r *Registry) RegisterAll() {
	if len(r.middlewares) > 0 {
		r.API.Use(r.middlewares...)
	}
	for _, m := range r.modules {
		m.Register(r.API)
	}
}
