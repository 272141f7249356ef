package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/calorix/backend/internal/challenge"
	"github.com/pageza/calorix/backend/internal/service"
	"github.com/pageza/calorix/backend/internal/types"
)

// ChallengeHandler serves the challenge catalog and the active challenge.
type ChallengeHandler struct {
	challengeService service.IChallengeService
}

func NewChallengeHandler(challengeService service.IChallengeService) *ChallengeHandler {
	return &ChallengeHandler{challengeService: challengeService}
}

func (h *ChallengeHandler) RegisterRoutes(router *gin.RouterGroup) {
	ch := router.Group("/challenges")
	{
		ch.GET("", h.List)
		ch.POST("/select", h.Select)
		ch.DELETE("/active", h.Disable)
		ch.POST("/custom", h.CreateCustom)
		ch.POST("/evaluate", h.Evaluate)
		ch.GET("/completed", h.Completed)
	}
}

func (h *ChallengeHandler) List(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	all, active, err := h.challengeService.List(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"challenges": all, "active": active})
}

func (h *ChallengeHandler) Select(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	var req types.SelectChallengeRequest
	if !bindJSON(c, &req) {
		return
	}

	progress, err := h.challengeService.Select(c.Request.Context(), uid, req.ChallengeID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"active": progress})
}

func (h *ChallengeHandler) Disable(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	if err := h.challengeService.Disable(c.Request.Context(), uid); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// CreateCustom builds, stores and activates a user-defined challenge.
func (h *ChallengeHandler) CreateCustom(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	var in challenge.Input
	if !bindJSON(c, &in) {
		return
	}

	ch, err := h.challengeService.CreateCustom(c.Request.Context(), uid, in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ch)
}

func (h *ChallengeHandler) Evaluate(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	ev, err := h.challengeService.EvaluateToday(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"completed": ev != nil, "event": ev})
}

func (h *ChallengeHandler) Completed(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	done, err := h.challengeService.Completed(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"completed": done})
}
