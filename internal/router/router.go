package router

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/calorix/backend/internal/api"
	"github.com/pageza/calorix/backend/internal/middleware"
)

// SetupRouter builds the engine with the shared middleware chain and every
// API route.
func SetupRouter(log *zap.Logger, origins []string, services api.Services, health func(ctx context.Context) error) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.CORS(origins))

	api.RegisterRoutes(router, services, health)
	return router
}
