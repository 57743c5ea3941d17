package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-user-auth-api/internal/domain/entity"
	"github.com/oksasatya/go-user-auth-api/pkg/response"
)

const (
	CtxUserIDKey    = "userID"
	CtxUserEmailKey = "userEmail"
	CtxUserKey      = "user"
)

var errMissingToken = errors.New("authentication credentials were not provided")

// TokenResolver maps a bearer token to the user that owns it.
type TokenResolver interface {
	ResolveToken(ctx context.Context, token string) (*entity.User, error)
}

// tokenFromHeader accepts "Token <t>" and "Bearer <t>".
func tokenFromHeader(c *gin.Context) (string, error) {
	h := strings.TrimSpace(c.GetHeader("Authorization"))
	if h == "" {
		return "", errMissingToken
	}
	scheme, token, ok := strings.Cut(h, " ")
	if !ok {
		return "", errors.New("invalid token header, no credentials provided")
	}
	if !strings.EqualFold(scheme, "Token") && !strings.EqualFold(scheme, "Bearer") {
		return "", errMissingToken
	}
	token = strings.TrimSpace(token)
	if token == "" || strings.Contains(token, " ") {
		return "", errors.New("invalid token header, token string should not contain spaces")
	}
	return token, nil
}

// Auth resolves the Authorization header and sets userID, userEmail and user
// in the Gin context on success.
func Auth(resolver TokenResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := tokenFromHeader(c)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, err.Error(), nil)
			return
		}
		u, err := resolver.ResolveToken(c.Request.Context(), token)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "invalid token", nil)
			return
		}
		c.Set(CtxUserIDKey, u.ID)
		c.Set(CtxUserEmailKey, u.Email)
		c.Set(CtxUserKey, u)
		c.Next()
	}
}

// CurrentUser returns the user stored by Auth.
func CurrentUser(c *gin.Context) (*entity.User, bool) {
	v, ok := c.Get(CtxUserKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*entity.User)
	return u, ok && u != nil
}

// RequireStaff must run after Auth.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := CurrentUser(c)
		if !ok {
			response.Abort(c, http.StatusUnauthorized, errMissingToken.Error(), nil)
			return
		}
		if !u.HasAdminAccess() {
			response.Abort(c, http.StatusForbidden, "you do not have permission to perform this action", nil)
			return
		}
		c.Next()
	}
}
