package server

import (
	"net/http"
	"os"
	"strings"

	_ "github.com/galerie-com/app-galerie/docs" // generated swagger docs
	"github.com/galerie-com/app-galerie/internal/client/enoki"
	"github.com/galerie-com/app-galerie/internal/config"
	"github.com/galerie-com/app-galerie/internal/handlers"
	"github.com/galerie-com/app-galerie/internal/sponsorship"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler Definitions
var (
	healthHandler      *handlers.HealthHandler
	sponsorshipHandler *handlers.SponsorshipHandler
)

// InitializeHandlers wires the handlers from the loaded configuration. The
// sponsor credential stays inside the Enoki client; handlers and everything
// above them only see the service interfaces.
func InitializeHandlers(cfg *config.Config) {
	enokiOpts := []enoki.Option{
		enoki.WithTimeout(cfg.EnokiTimeout),
	}
	if cfg.EnokiAPIURL != "" {
		enokiOpts = append(enokiOpts, enoki.WithBaseURL(cfg.EnokiAPIURL))
	}
	enokiService := enoki.NewService(enoki.NewEnokiClient(cfg.EnokiPrivateKey, enokiOpts...))

	policy := sponsorship.NewPolicy(cfg.AllowedCallTargets)

	healthHandler = handlers.NewHealthHandler()
	sponsorshipHandler = handlers.NewSponsorshipHandler(policy, enokiService, enokiService)
}

// InitializeRoutes registers middleware and routes on the router.
func InitializeRoutes(router *gin.Engine) {
	// Configure and apply CORS middleware
	router.Use(configureCORS())

	// A panic in one request must not take down the process or other
	// in-flight requests; the recovery middleware turns it into a plain 500.
	router.Use(gin.CustomRecovery(func(c *gin.Context, _ interface{}) {
		c.AbortWithStatusJSON(http.StatusInternalServerError, handlers.ErrorResponse{
			Error: "Internal server error",
		})
	}))

	router.Use(handlers.RequestID())

	// if we are not in production, log the request body
	if os.Getenv("GIN_MODE") != "release" {
		router.Use(handlers.LogRequest())
	}

	// Add Swagger endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", healthHandler.Health)

	// Sponsorship API
	api := router.Group("/api")
	{
		api.POST("/sponsor-transaction", sponsorshipHandler.SponsorTransaction)
		api.POST("/execute-transaction", sponsorshipHandler.ExecuteTransaction)
	}
}

// configureCORS returns a configured CORS middleware
func configureCORS() gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()

	// Get allowed origins from environment variable
	originsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	if originsEnv == "" {
		// Default to the local frontend if not set
		corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://localhost:3000"}
	} else {
		origins := strings.Split(originsEnv, ",")
		for i, origin := range origins {
			origins[i] = strings.TrimSpace(origin)
		}
		corsConfig.AllowOrigins = origins
	}

	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "X-Request-ID"}
	corsConfig.AllowCredentials = os.Getenv("CORS_ALLOW_CREDENTIALS") == "true"

	return cors.New(corsConfig)
}
