package handlers

import (
	"github.com/SscSPs/ledger_engine/cmd/docs"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/middleware"
	"github.com/SscSPs/ledger_engine/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// apiKeyHash is the bcrypt hash of cfg.APIKey, empty when no key is configured.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	apiKeyHash string,
	services *portssvc.ServiceContainer,
) {
	r.GET("/", getHome)
	r.GET("/health", getHealth)

	setupAPIV1Routes(r, cfg, apiKeyHash, services)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	apiKeyHash string,
	service *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1", authChain(cfg, apiKeyHash)...)

	RegisterAccountRoutes(v1, service.Account, service.Balance)
	RegisterJournalRoutes(v1, service.Journal, service.Ledger)
}

// authChain returns the caller authentication middleware for the configured
// methods. No configured method leaves the API open.
func authChain(cfg *config.Config, apiKeyHash string) []gin.HandlerFunc {
	var chain []gin.HandlerFunc
	if apiKeyHash != "" {
		chain = append(chain, middleware.APIKeyAuth(apiKeyHash))
	}
	if cfg.JWTSecret != "" {
		chain = append(chain, middleware.AuthMiddleware(cfg.JWTSecret))
	} else if apiKeyHash != "" {
		chain = append(chain, middleware.RequireCaller())
	}
	return chain
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
