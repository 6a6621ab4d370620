package router

import (
	"github.com/okisetiawan/go-product-catalog/internal/application"
	"github.com/okisetiawan/go-product-catalog/internal/container"
	pginfra "github.com/okisetiawan/go-product-catalog/internal/infrastructure/postgres"
	handlers "github.com/okisetiawan/go-product-catalog/internal/interface/http"
	"github.com/okisetiawan/go-product-catalog/internal/router/modules"
)

// InitModules initializes all application modules and registers them with
// the router registry. Called once during startup after the container is
// populated with infra singletons.
func InitModules(r *Registry) {
	cfg := container.GetConfig()

	userRepo := pginfra.NewUserRepository(container.GetPGPool())
	productRepo := pginfra.NewProductRepository(container.GetPGPool())

	authSvc := application.NewAuthService(
		userRepo,
		container.GetJWT(),
		container.GetEmailPub(),
		container.GetLogger(),
		cfg.MailSendEnabled,
	)
	productSvc := application.NewProductService(
		productRepo,
		container.GetRedis(),
		container.GetLogger(),
		container.GetES(),
		cfg.ESProductsIndex,
		container.GetGCS(),
		cfg.GCSBucket,
		container.GetEventPub(),
	)

	authHandler := handlers.NewAuthHandler(authSvc, container.GetLogger())
	productHandler := handlers.NewProductHandler(productSvc, container.GetLogger())

	r.Add(modules.NewAuthModule(authHandler, container.GetJWT()))
	r.Add(modules.NewProductModule(productHandler, container.GetJWT(), userRepo))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
