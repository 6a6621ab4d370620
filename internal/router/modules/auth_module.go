package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/okisetiawan/go-product-catalog/internal/container"
	handlers "github.com/okisetiawan/go-product-catalog/internal/interface/http"
	"github.com/okisetiawan/go-product-catalog/internal/interface/middleware"
	"github.com/okisetiawan/go-product-catalog/pkg/helpers"
)

// AuthModule wires signup/login and the authenticated profile route.
// Public: POST /api/auth/signup, POST /api/auth/login
// Protected: GET /api/auth/me
type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	signupLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)

	rg.POST("/auth/signup", signupLimiter, m.Handler.Signup)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("/auth/me", m.Handler.Me)
	}
}
