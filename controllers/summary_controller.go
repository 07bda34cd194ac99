package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Marino59/dieta/services"
	"github.com/Marino59/dieta/utils"

	"github.com/gin-gonic/gin"
)

type SummaryController struct {
	Ledger *services.LedgerService
}

func NewSummaryController(ledger *services.LedgerService) *SummaryController {
	return &SummaryController{Ledger: ledger}
}

// Daily returns the dashboard summary for one local day, default today.
func (sc *SummaryController) Daily(c *gin.Context) {
	date := time.Now()
	if q := c.Query("date"); q != "" {
		d, err := time.ParseInLocation(utils.DayKeyLayout, q, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		date = d
	}

	summary, err := sc.Ledger.DailySummary(c.Request.Context(), userIDFromCtx(c), date)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Chart returns the merged calories/weight series, default 30 days back.
func (sc *SummaryController) Chart(c *gin.Context) {
	days := 30
	if q := c.Query("days"); q != "" {
		d, err := strconv.Atoi(q)
		if err != nil || d <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be a positive integer"})
			return
		}
		days = d
	}

	points, err := sc.Ledger.ChartRange(c.Request.Context(), userIDFromCtx(c), days)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, points)
}
