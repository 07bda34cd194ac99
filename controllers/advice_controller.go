package controllers

import (
	"net/http"

	"github.com/Marino59/dieta/services"

	"github.com/gin-gonic/gin"
)

type AdviceController struct {
	Advice *services.AdviceService
}

func NewAdviceController(advice *services.AdviceService) *AdviceController {
	return &AdviceController{Advice: advice}
}

// Daily serves the coach card, cached until local midnight.
func (ac *AdviceController) Daily(c *gin.Context) {
	advice, err := ac.Advice.Daily(c.Request.Context(), userIDFromCtx(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, advice)
}

// Hungry answers the snack button against the live calorie count.
func (ac *AdviceController) Hungry(c *gin.Context) {
	advice, err := ac.Advice.Hungry(c.Request.Context(), userIDFromCtx(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, advice)
}
