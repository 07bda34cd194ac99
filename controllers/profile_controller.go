package controllers

import (
	"net/http"

	"github.com/Marino59/dieta/models"
	"github.com/Marino59/dieta/services"
	"github.com/Marino59/dieta/utils"

	"github.com/gin-gonic/gin"
)

type ProfileController struct {
	Profiles *services.ProfileService
}

func NewProfileController(profiles *services.ProfileService) *ProfileController {
	return &ProfileController{Profiles: profiles}
}

// profileResponse decorates the stored profile with the derived BMI, which
// is display-only and never persisted.
func profileResponse(p *models.Profile) gin.H {
	resp := gin.H{"profile": p}
	if bmi, err := utils.CalculateBMI(p.HeightCm, p.WeightKg); err == nil {
		resp["bmi"] = bmi
		resp["bmi_category"] = utils.BMICategory(bmi)
	}
	return resp
}

func (pc *ProfileController) Get(c *gin.Context) {
	profile, err := pc.Profiles.Get(c.Request.Context(), userIDFromCtx(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, profileResponse(profile))
}

// Save upserts the body data and returns the profile with freshly computed
// targets.
func (pc *ProfileController) Save(c *gin.Context) {
	var input services.ProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := pc.Profiles.Save(c.Request.Context(), userIDFromCtx(c), input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, profileResponse(profile))
}

// ApplyGoal turns a free-text goal into AI-derived calorie and macro
// targets. A failed interpretation leaves the stored targets untouched.
func (pc *ProfileController) ApplyGoal(c *gin.Context) {
	var body struct {
		Goal string `json:"goal" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := pc.Profiles.ApplyGoalDescription(c.Request.Context(), userIDFromCtx(c), body.Goal)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, profileResponse(profile))
}
