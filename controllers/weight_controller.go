package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Marino59/dieta/services"
	"github.com/Marino59/dieta/utils"

	"github.com/gin-gonic/gin"
)

type WeightController struct {
	Weights *services.WeightService
}

func NewWeightController(weights *services.WeightService) *WeightController {
	return &WeightController{Weights: weights}
}

// QuickLog is the one-tap daily weigh-in: one sample per local day, replaced
// on re-entry. Date defaults to today.
func (wc *WeightController) QuickLog(c *gin.Context) {
	var body struct {
		Kilograms float64 `json:"kilograms" binding:"required"`
		Date      string  `json:"date"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	day := time.Now()
	if body.Date != "" {
		d, err := time.ParseInLocation(utils.DayKeyLayout, body.Date, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		day = d
	}

	sample, err := wc.Weights.QuickLog(c.Request.Context(), userIDFromCtx(c), body.Kilograms, day)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, sample)
}

// AddSample appends to the history without replacing same-day entries.
func (wc *WeightController) AddSample(c *gin.Context) {
	var body struct {
		Kilograms  float64    `json:"kilograms" binding:"required"`
		MeasuredAt *time.Time `json:"measured_at"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	at := time.Now()
	if body.MeasuredAt != nil {
		at = *body.MeasuredAt
	}

	sample, err := wc.Weights.AddSample(c.Request.Context(), userIDFromCtx(c), body.Kilograms, at)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sample)
}

func (wc *WeightController) History(c *gin.Context) {
	samples, err := wc.Weights.History(c.Request.Context(), userIDFromCtx(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, samples)
}

func (wc *WeightController) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sample id"})
		return
	}

	if err := wc.Weights.Delete(c.Request.Context(), userIDFromCtx(c), uint(id)); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "sample deleted"})
}
