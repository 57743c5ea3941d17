package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "github.com/oksasatya/go-user-auth-api/internal/application"
	"github.com/oksasatya/go-user-auth-api/internal/domain/entity"
	"github.com/oksasatya/go-user-auth-api/pkg/response"
	"github.com/oksasatya/go-user-auth-api/pkg/validation"
)

// AdminHandler exposes user management to staff accounts.
type AdminHandler struct {
	Svc    *userapp.Service
	Logger *logrus.Logger
}

func NewAdminHandler(svc *userapp.Service, logger *logrus.Logger) *AdminHandler {
	return &AdminHandler{Svc: svc, Logger: logger}
}

type adminUser struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	IsActive    bool      `json:"is_active"`
	IsStaff     bool      `json:"is_staff"`
	IsSuperuser bool      `json:"is_superuser"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toAdminUser(u *entity.User) adminUser {
	return adminUser{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		IsActive:    u.IsActive,
		IsStaff:     u.IsStaff,
		IsSuperuser: u.IsSuperuser,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

type adminCreateRequest struct {
	Email       string `json:"email" binding:"required,email,max=255"`
	Password    string `json:"password" binding:"required,pwd"`
	Name        string `json:"name" binding:"max=255"`
	IsStaff     bool   `json:"is_staff"`
	IsSuperuser bool   `json:"is_superuser"`
}

type adminUpdateRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=255"`
	Password    *string `json:"password" binding:"omitempty,pwd"`
	IsActive    *bool   `json:"is_active"`
	IsStaff     *bool   `json:"is_staff"`
	IsSuperuser *bool   `json:"is_superuser"`
}

func queryInt(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return def
	}
	return v
}

// List handles GET /api/admin/users?limit=&offset=.
func (h *AdminHandler) List(c *gin.Context) {
	limit := queryInt(c, "limit", 50)
	offset := queryInt(c, "offset", 0)
	users, err := h.Svc.ListUsers(c.Request.Context(), limit, offset)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	out := make([]adminUser, 0, len(users))
	for _, u := range users {
		out = append(out, toAdminUser(u))
	}
	response.Success(c, http.StatusOK, out, "users", map[string]any{"limit": limit, "offset": offset, "count": len(out)})
}

// Get handles GET /api/admin/users/:id.
func (h *AdminHandler) Get(c *gin.Context) {
	u, err := h.Svc.GetProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toAdminUser(u), "user", nil)
}

// Create handles POST /api/admin/users.
func (h *AdminHandler) Create(c *gin.Context) {
	var req adminCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.CreateUser(c.Request.Context(), userapp.CreateUserInput{
		Email:       req.Email,
		Password:    req.Password,
		Name:        req.Name,
		IsStaff:     req.IsStaff,
		IsSuperuser: req.IsSuperuser,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, toAdminUser(u), "user created", nil)
}

// Update handles PATCH /api/admin/users/:id.
func (h *AdminHandler) Update(c *gin.Context) {
	var req adminUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.AdminUpdateUser(c.Request.Context(), c.Param("id"), userapp.AdminUpdateInput{
		UpdateProfileInput: userapp.UpdateProfileInput{Name: req.Name, Password: req.Password},
		IsActive:           req.IsActive,
		IsStaff:            req.IsStaff,
		IsSuperuser:        req.IsSuperuser,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toAdminUser(u), "user updated", nil)
}

// Search handles GET /api/admin/users/search?q=&size=.
func (h *AdminHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "missing query", map[string]string{"q": "this field may not be blank"})
		return
	}
	res, err := h.Svc.SearchUsers(c.Request.Context(), q, queryInt(c, "size", 10))
	if err != nil {
		h.Logger.WithError(err).Warn("user search failed")
		response.Error[any](c, http.StatusBadGateway, "search unavailable", nil)
		return
	}
	response.Success(c, http.StatusOK, res, "search results", nil)
}
