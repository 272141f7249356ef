package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/calorix/backend/internal/service"
	"github.com/pageza/calorix/backend/internal/types"
)

// ProfileHandler serves the user's profile and goals.
type ProfileHandler struct {
	profileService service.IProfileService
}

func NewProfileHandler(profileService service.IProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	profile := router.Group("/profile")
	{
		profile.GET("", h.GetProfile)
		profile.PUT("", h.UpdateProfile)
		profile.PUT("/goals", h.UpdateGoals)
		profile.GET("/goals/history", h.GoalHistory)
		profile.DELETE("/logs", h.ResetLogs)
	}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	profile, err := h.profileService.GetProfile(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	var req types.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	profile, err := h.profileService.UpdateProfile(c.Request.Context(), uid, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) UpdateGoals(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	var req types.UpdateGoalsRequest
	if !bindJSON(c, &req) {
		return
	}

	goals, err := h.profileService.UpdateGoals(c.Request.Context(), uid, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, goals)
}

func (h *ProfileHandler) GoalHistory(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	history, err := h.profileService.GoalHistory(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"history": history})
}

// ResetLogs deletes every daily log of the user.
func (h *ProfileHandler) ResetLogs(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	if err := h.profileService.ResetLogs(c.Request.Context(), uid); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
