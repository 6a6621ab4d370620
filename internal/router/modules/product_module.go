package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/okisetiawan/go-product-catalog/internal/container"
	"github.com/okisetiawan/go-product-catalog/internal/domain/entity"
	repo "github.com/okisetiawan/go-product-catalog/internal/domain/repository"
	handlers "github.com/okisetiawan/go-product-catalog/internal/interface/http"
	"github.com/okisetiawan/go-product-catalog/internal/interface/middleware"
	"github.com/okisetiawan/go-product-catalog/pkg/helpers"
)

// ProductModule wires catalog routes. Every route requires a valid bearer
// token; mutations additionally require the live ADMIN role.
type ProductModule struct {
	Handler *handlers.ProductHandler
	JWT     *helpers.JWTManager
	Users   repo.UserRepository
}

func NewProductModule(h *handlers.ProductHandler, jwt *helpers.JWTManager, users repo.UserRepository) *ProductModule {
	return &ProductModule{Handler: h, JWT: jwt, Users: users}
}

func (m *ProductModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/products")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByUserID(), middleware.AllowPrivateIP()))

	auth.GET("", m.Handler.List)
	auth.GET("/filter", m.Handler.Filter)
	auth.GET("/search", m.Handler.Search)
	auth.GET("/:id", m.Handler.Get)

	admin := auth.Group("")
	admin.Use(middleware.RequireRole(m.Users, entity.RoleAdmin))
	{
		admin.POST("", m.Handler.Create)
		admin.PUT("/:id", m.Handler.Update)
		admin.DELETE("/:id", m.Handler.Delete)
	}
}
