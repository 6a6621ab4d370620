package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/okisetiawan/go-product-catalog/pkg/helpers"
	"github.com/okisetiawan/go-product-catalog/pkg/response"
)

// Context keys set by the access guard.
const (
	CtxUserIDKey    = "userID"
	CtxUserEmailKey = "userEmail"
	CtxUserRoleKey  = "userRole"
)

// BearerToken extracts the token from the Authorization header.
func BearerToken(c *gin.Context) (string, error) {
	h := c.GetHeader("Authorization")
	if h == "" {
		return "", helpers.ErrMissingToken
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", helpers.ErrMissingToken
	}
	return parts[1], nil
}

// Auth validates the bearer token and injects the claims into the Gin
// context. A request with no credential at all is rejected with 403; a
// presented but invalid or expired token with 401. Every request is
// evaluated independently; nothing is cached between requests.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := BearerToken(c)
		if err != nil {
			response.Error[any](c, http.StatusForbidden, "missing bearer token", nil)
			c.Abort()
			return
		}

		claims, err := jwt.Parse(token)
		if err != nil {
			msg := "invalid token"
			if errors.Is(err, helpers.ErrExpiredToken) {
				msg = "token expired"
			}
			response.Error[any](c, http.StatusUnauthorized, msg, nil)
			c.Abort()
			return
		}

		c.Set(CtxUserIDKey, claims.UserID)
		c.Set(CtxUserEmailKey, claims.Email)
		c.Set(CtxUserRoleKey, claims.Role.String())
		c.Next()
	}
}
