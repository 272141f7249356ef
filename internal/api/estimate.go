package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/calorix/backend/internal/middleware"
	"github.com/pageza/calorix/backend/internal/service"
	"github.com/pageza/calorix/backend/internal/types"
)

// EstimateHandler turns a meal description into food items.
type EstimateHandler struct {
	estimatorService service.IEstimatorService
	limiter          *middleware.RateLimiter
}

func NewEstimateHandler(estimatorService service.IEstimatorService, limiter *middleware.RateLimiter) *EstimateHandler {
	return &EstimateHandler{estimatorService: estimatorService, limiter: limiter}
}

func (h *EstimateHandler) RegisterRoutes(router *gin.RouterGroup) {
	handlers := []gin.HandlerFunc{h.Estimate}
	if h.limiter != nil {
		handlers = append([]gin.HandlerFunc{h.limiter.RateLimitMiddleware()}, handlers...)
	}
	router.POST("/estimate", handlers...)
}

func (h *EstimateHandler) Estimate(c *gin.Context) {
	if _, ok := userID(c); !ok {
		return
	}
	var req types.EstimateRequest
	if !bindJSON(c, &req) {
		return
	}

	foods, err := h.estimatorService.Estimate(c.Request.Context(), req.Description)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"foods": foods})
}
