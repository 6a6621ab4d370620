package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/okisetiawan/go-product-catalog/internal/domain/entity"
	repo "github.com/okisetiawan/go-product-catalog/internal/domain/repository"
	"github.com/okisetiawan/go-product-catalog/pkg/response"
)

// RequireRole gates privileged routes. It re-fetches the user from the
// credential store on every request and compares the live role: the role
// embedded in the token is stale the moment the store changes, so it is
// never authoritative here. Runs after Auth.
func RequireRole(users repo.UserRepository, required entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString(CtxUserIDKey)
		if uid == "" {
			response.Error[any](c, http.StatusForbidden, "forbidden", nil)
			c.Abort()
			return
		}

		u, err := users.GetByID(c.Request.Context(), uid)
		if err != nil || u == nil || u.Role != required {
			response.Error[any](c, http.StatusForbidden, "admin access required", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
