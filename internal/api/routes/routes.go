package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/gocomet/rides-api/internal/api/handlers"
	"github.com/gocomet/rides-api/internal/api/middleware"
	"github.com/gocomet/rides-api/pkg/logger"
)

// Deps holds optional collaborators of the router
type Deps struct {
	Logger *logger.Logger
	// NewRelic enables APM middleware when non-nil
	NewRelic *newrelic.Application
	// Idempotency enables Idempotency-Key handling on POST /rides when non-nil
	Idempotency middleware.IdempotencyStore
}

// SetupRoutes configures all API routes
func SetupRoutes(r *gin.Engine, h *handlers.Handlers, deps Deps) {
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	if deps.Logger != nil {
		r.Use(middleware.LoggingMiddleware(deps.Logger))
	}
	if deps.NewRelic != nil {
		r.Use(nrgin.Middleware(deps.NewRelic))
	}

	r.GET("/health", h.Health)
	r.GET("/ws", h.HandleWebSocket)

	rides := r.Group("/rides")
	{
		create := []gin.HandlerFunc{h.CreateRide}
		if deps.Idempotency != nil {
			create = append([]gin.HandlerFunc{middleware.IdempotencyMiddleware(deps.Idempotency, h.Logger)}, create...)
		}

		rides.POST("", create...)
		rides.GET("", h.ListRides)
		rides.GET("/:id", h.GetRide)
	}
}
