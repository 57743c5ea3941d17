package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "github.com/oksasatya/go-user-auth-api/internal/application"
	"github.com/oksasatya/go-user-auth-api/internal/domain/entity"
	"github.com/oksasatya/go-user-auth-api/internal/interface/middleware"
	"github.com/oksasatya/go-user-auth-api/pkg/response"
	"github.com/oksasatya/go-user-auth-api/pkg/validation"
)

type UserHandler struct {
	Svc    *userapp.Service
	Logger *logrus.Logger
}

func NewUserHandler(svc *userapp.Service, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type createUserRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,pwd"`
	Name     string `json:"name" binding:"max=255"`
}

type tokenRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// updateMeRequest ignores any email member.
type updateMeRequest struct {
	Name     *string `json:"name" binding:"omitempty,max=255"`
	Password *string `json:"password" binding:"omitempty,pwd"`
}

type userResponse struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func toUserResponse(u *entity.User) userResponse {
	return userResponse{Email: u.Email, Name: u.Name}
}

// Create handles POST /api/user/create.
func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.CreateUser(c.Request.Context(), userapp.CreateUserInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, toUserResponse(u))
}

// Token handles POST /api/user/token.
func (h *UserHandler) Token(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	token, _, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, userapp.ErrInvalidCredentials) {
			response.Error[any](c, http.StatusBadRequest, err.Error(), map[string]string{"non_field_errors": err.Error()})
			return
		}
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// GetMe handles GET /api/user/me.
func (h *UserHandler) GetMe(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error[any](c, http.StatusUnauthorized, "authentication credentials were not provided", nil)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(u))
}

// UpdateMe handles PATCH /api/user/me.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req updateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.UpdateProfile(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), userapp.UpdateProfileInput{
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(u))
}

// fail maps application errors onto the error envelope.
func (h *UserHandler) fail(c *gin.Context, err error) {
	writeError(c, h.Logger, err)
}

func writeError(c *gin.Context, logger *logrus.Logger, err error) {
	var verr *userapp.ValidationError
	switch {
	case errors.As(err, &verr):
		response.Error[any](c, http.StatusBadRequest, "invalid payload", verr.Details())
	case errors.Is(err, userapp.ErrInvalidCredentials):
		response.Error[any](c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, userapp.ErrInvalidToken):
		response.Error[any](c, http.StatusUnauthorized, err.Error(), nil)
	case errors.Is(err, userapp.ErrUserNotFound):
		response.Error[any](c, http.StatusNotFound, "not found", nil)
	default:
		if logger != nil {
			logger.WithError(err).WithField("request_id", c.GetString("request_id")).Error("request failed")
		}
		response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
	}
}
