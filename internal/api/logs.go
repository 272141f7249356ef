package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/calorix/backend/internal/model"
	"github.com/pageza/calorix/backend/internal/nutrition"
	"github.com/pageza/calorix/backend/internal/service"
	"github.com/pageza/calorix/backend/internal/types"
)

// DayTotals is the derived view of one day.
type DayTotals struct {
	Date         string                 `json:"date"`
	Totals       model.Macros           `json:"totals"`
	Water        float64                `json:"water"`
	Items        int                    `json:"items"`
	Distribution nutrition.Distribution `json:"distribution"`
}

// LogHandler serves daily food and water logs.
type LogHandler struct {
	logService    service.ILogService
	exportService service.IExportService
}

func NewLogHandler(logService service.ILogService, exportService service.IExportService) *LogHandler {
	return &LogHandler{logService: logService, exportService: exportService}
}

func (h *LogHandler) RegisterRoutes(router *gin.RouterGroup) {
	logs := router.Group("/logs/:date")
	{
		logs.GET("", h.GetLog)
		logs.POST("/foods", h.AddFoods)
		logs.DELETE("/meals/:meal/foods/:id", h.DeleteFood)
		logs.POST("/water", h.AddWater)
		logs.GET("/totals", h.Totals)
		logs.GET("/export", h.Export)
	}
}

func (h *LogHandler) GetLog(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	l, err := h.logService.GetLog(c.Request.Context(), uid, c.Param("date"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, l)
}

func (h *LogHandler) AddFoods(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	var req types.AddFoodsRequest
	if !bindJSON(c, &req) {
		return
	}

	l, err := h.logService.AddFoods(c.Request.Context(), uid, c.Param("date"), req.Meal, req.Foods)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, l)
}

func (h *LogHandler) DeleteFood(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	l, err := h.logService.DeleteFood(c.Request.Context(), uid, c.Param("date"), c.Param("meal"), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, l)
}

func (h *LogHandler) AddWater(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	var req types.AddWaterRequest
	if !bindJSON(c, &req) {
		return
	}

	l, err := h.logService.AddWater(c.Request.Context(), uid, c.Param("date"), req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, l)
}

func (h *LogHandler) Totals(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	date := c.Param("date")
	l, err := h.logService.GetLog(c.Request.Context(), uid, date)
	if err != nil {
		respondError(c, err)
		return
	}

	totals := nutrition.DailyTotals(l)
	c.JSON(http.StatusOK, DayTotals{
		Date:         date,
		Totals:       totals,
		Water:        l.WaterIntake,
		Items:        nutrition.ItemCount(l),
		Distribution: nutrition.MacroDistribution(totals),
	})
}

// Export returns a link to the stored CSV, or the CSV itself when no
// bucket is configured.
func (h *LogHandler) Export(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	res, err := h.exportService.Export(c.Request.Context(), uid, c.Param("date"))
	if err != nil {
		respondError(c, err)
		return
	}

	if res.URL != "" {
		c.JSON(http.StatusOK, res)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.Filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", res.CSV)
}
