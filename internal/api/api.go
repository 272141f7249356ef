// Package api exposes the calorix services over a JSON HTTP API.
package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/calorix/backend/internal/fasting"
	"github.com/pageza/calorix/backend/internal/middleware"
	"github.com/pageza/calorix/backend/internal/service"
)

// Services bundles everything the handlers call.
type Services struct {
	Auth          service.IAuthService
	Profile       service.IProfileService
	Logs          service.ILogService
	Summary       service.ISummaryService
	Fasting       service.IFastingService
	Challenges    service.IChallengeService
	Notifications service.INotificationService
	Export        service.IExportService
	Estimator     service.IEstimatorService
	// EstimateLimiter is optional.
	EstimateLimiter *middleware.RateLimiter
	Clock           fasting.Clock
}

// HealthCheck reports whether the API and its database are reachable.
func HealthCheck(check func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if check != nil {
			if err := check(c.Request.Context()); err != nil {
				_ = c.Error(err)
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "calorix API is running",
			"version": "v1.0.0",
		})
	}
}

// RegisterRoutes registers all API routes under /api/v1.
func RegisterRoutes(router *gin.Engine, s Services, health func(ctx context.Context) error) {
	router.GET("/health", HealthCheck(health))

	v1 := router.Group("/api/v1")
	v1.GET("/health", HealthCheck(health))
	NewAuthHandler(s.Auth).RegisterRoutes(v1)

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(s.Auth))
	NewProfileHandler(s.Profile).RegisterRoutes(protected)
	NewLogHandler(s.Logs, s.Export).RegisterRoutes(protected)
	NewSummaryHandler(s.Summary, s.Clock).RegisterRoutes(protected)
	NewFastingHandler(s.Fasting).RegisterRoutes(protected)
	NewChallengeHandler(s.Challenges).RegisterRoutes(protected)
	NewNotificationHandler(s.Notifications).RegisterRoutes(protected)
	NewEstimateHandler(s.Estimator, s.EstimateLimiter).RegisterRoutes(protected)
}
