package handlers

import (
	"fmt"
	"net/http"

	"github.com/assacalos/easyconnect/cmd/docs"
	portssvc "github.com/assacalos/easyconnect/internal/core/ports/services"
	"github.com/assacalos/easyconnect/internal/middleware"
	"github.com/assacalos/easyconnect/internal/platform/config"
	"github.com/assacalos/easyconnect/internal/utils"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// loginRateLimit bounds login attempts per client IP.
const loginRateLimit = "10-M"

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	posthogClient *utils.PosthogClientWrapper,
) error {
	r.Use(errorExposure(cfg.IsProduction))
	if err := RegisterValidators(); err != nil {
		return err
	}

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	loginLimiter, err := middleware.NewMemoryLimiter(loginRateLimit)
	if err != nil {
		return fmt.Errorf("login rate limit: %w", err)
	}
	registerAuthRoutes(r.Group("/api/v1"), services.Auth, middleware.GinMiddlewarize(loginLimiter))

	if err := setupAPIV1Routes(r, cfg, services, posthogClient); err != nil {
		return err
	}

	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIV1Routes configures the authenticated /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	posthogClient *utils.PosthogClientWrapper,
) error {
	apiLimiter, err := middleware.NewMemoryLimiter(cfg.RateLimit)
	if err != nil {
		return fmt.Errorf("api rate limit %q: %w", cfg.RateLimit, err)
	}

	v1 := r.Group("/api/v1",
		middleware.AuthMiddleware(cfg.JWTSecret),
		middleware.RateLimit(apiLimiter),
		middleware.PosthogMiddleware(posthogClient),
	)

	registerPaymentRoutes(v1, services.Payment)
	registerInvoiceRoutes(v1, services.Invoice)
	registerScheduleRoutes(v1, services.Schedule, services.Clock)
	registerBordereauRoutes(v1, services.Bordereau)
	registerAttendanceRoutes(v1, services.Attendance)
	registerInterviewRoutes(v1, services.Interview)
	registerDeviceTokenRoutes(v1, services.DeviceToken)
	registerTransitionRoutes(v1, services.Lifecycle)
	return nil
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
