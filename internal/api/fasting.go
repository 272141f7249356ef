package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/calorix/backend/internal/fasting"
	"github.com/pageza/calorix/backend/internal/model"
	"github.com/pageza/calorix/backend/internal/service"
	"github.com/pageza/calorix/backend/internal/types"
)

// FastingResponse is the fasting state with its reading at request time.
type FastingResponse struct {
	State   model.FastingState `json:"state"`
	Reading fasting.Reading    `json:"reading"`
}

// FastingHandler serves the fasting timer.
type FastingHandler struct {
	fastingService service.IFastingService
}

func NewFastingHandler(fastingService service.IFastingService) *FastingHandler {
	return &FastingHandler{fastingService: fastingService}
}

func (h *FastingHandler) RegisterRoutes(router *gin.RouterGroup) {
	f := router.Group("/fasting")
	{
		f.GET("", h.Status)
		f.POST("/start", h.Start)
		f.POST("/stop", h.Stop)
		f.PATCH("", h.Update)
	}
}

func (h *FastingHandler) Status(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	state, reading, err := h.fastingService.Status(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, FastingResponse{State: state, Reading: reading})
}

func (h *FastingHandler) Start(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	var req types.StartFastRequest
	if !bindJSON(c, &req) {
		return
	}

	state, reading, err := h.fastingService.Start(c.Request.Context(), uid, req.Hours)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, FastingResponse{State: state, Reading: reading})
}

func (h *FastingHandler) Stop(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	state, err := h.fastingService.Stop(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"state": state})
}

// Update moves the fast's boundaries. A rejected edit is not an error: the
// response reports applied=false with the unchanged state.
func (h *FastingHandler) Update(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	var req types.UpdateFastRequest
	if !bindJSON(c, &req) {
		return
	}

	state, applied, err := h.fastingService.Update(c.Request.Context(), uid, fasting.TimeUpdate{
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"state": state, "applied": applied})
}
