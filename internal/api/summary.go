package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pageza/calorix/backend/internal/fasting"
	"github.com/pageza/calorix/backend/internal/model"
	"github.com/pageza/calorix/backend/internal/service"
)

const defaultWindow = 7

// SummaryHandler serves period summaries and the month calendar.
type SummaryHandler struct {
	summaryService service.ISummaryService
	clock          fasting.Clock
}

func NewSummaryHandler(summaryService service.ISummaryService, clock fasting.Clock) *SummaryHandler {
	if clock == nil {
		clock = fasting.SystemClock{}
	}
	return &SummaryHandler{summaryService: summaryService, clock: clock}
}

func (h *SummaryHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/summary", h.Summary)
	router.GET("/calendar", h.Calendar)
}

// Summary reads ?anchor=YYYY-MM-DD (default today) and ?window=7|15|30.
func (h *SummaryHandler) Summary(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	anchor := model.StartOfDay(h.clock.Now())
	if v := c.Query("anchor"); v != "" {
		t, err := model.ParseDate(v)
		if err != nil {
			badRequest(c, "anchor", codeInvalidDate)
			return
		}
		anchor = t
	}
	window := defaultWindow
	if v := c.Query("window"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			badRequest(c, "window", codeInvalidWindow)
			return
		}
		window = n
	}

	sum, err := h.summaryService.Summary(c.Request.Context(), uid, anchor, window)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, sum)
}

// Calendar reads ?year= and ?month=, defaulting to the current month.
func (h *SummaryHandler) Calendar(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	now := h.clock.Now().UTC()
	year, month := now.Year(), int(now.Month())
	if v := c.Query("year"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			badRequest(c, "year", codeInvalidMonth)
			return
		}
		year = n
	}
	if v := c.Query("month"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			badRequest(c, "month", codeInvalidMonth)
			return
		}
		month = n
	}

	days, err := h.summaryService.Calendar(c.Request.Context(), uid, year, time.Month(month))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"year": year, "month": month, "days": days})
}
