package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Marino59/dieta/services"
	"github.com/Marino59/dieta/utils"

	"github.com/gin-gonic/gin"
)

type MealController struct {
	Meals  *services.MealService
	Ledger *services.LedgerService
	Gemini *services.GeminiService
	Foods  *services.OpenFoodFactsService
}

func NewMealController(meals *services.MealService, ledger *services.LedgerService,
	gemini *services.GeminiService, foods *services.OpenFoodFactsService) *MealController {
	return &MealController{Meals: meals, Ledger: ledger, Gemini: gemini, Foods: foods}
}

// EstimateImage runs the first half of the capture flow: photo in, sanitized
// per-100g estimate out. Nothing is persisted until the user confirms.
func (mc *MealController) EstimateImage(c *gin.Context) {
	var body struct {
		Image    string `json:"image" binding:"required"`
		MimeType string `json:"mime_type"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if body.MimeType == "" {
		body.MimeType = "image/jpeg"
	}

	est, err := mc.Gemini.EstimateFromImage(c.Request.Context(), body.Image, body.MimeType)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, est)
}

// EstimateText handles free-text descriptions, anchored to the day the user
// is viewing so relative words like "ieri" resolve correctly.
func (mc *MealController) EstimateText(c *gin.Context) {
	var body struct {
		Description   string `json:"description" binding:"required"`
		ReferenceDate string `json:"reference_date"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ref := time.Now()
	if body.ReferenceDate != "" {
		if d, err := time.ParseInLocation(utils.DayKeyLayout, body.ReferenceDate, time.Local); err == nil {
			ref = d
		}
	}

	est, err := mc.Gemini.EstimateFromText(c.Request.Context(), body.Description, ref)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, est)
}

func (mc *MealController) EstimateBarcode(c *gin.Context) {
	est, err := mc.Foods.LookupBarcode(c.Request.Context(), c.Param("code"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, est)
}

type createMealBody struct {
	Name           string             `json:"name"`
	Grams          int                `json:"grams"`
	CaloriesPer100 float64            `json:"calories_per_100g"`
	ProteinPer100  float64            `json:"protein_per_100g"`
	CarbsPer100    float64            `json:"carbs_per_100g"`
	FatPer100      float64            `json:"fat_per_100g"`
	Note           string             `json:"note"`
	ImageURL       string             `json:"image_url"`
	ReferenceDate  string             `json:"reference_date"`
	Hint           utils.MealTimeHint `json:"hint"`
	AteAt          *time.Time         `json:"ate_at"`
}

// Create commits a confirmed estimate to the ledger.
func (mc *MealController) Create(c *gin.Context) {
	var body createMealBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ref := time.Now()
	if body.ReferenceDate != "" {
		if d, err := time.ParseInLocation(utils.DayKeyLayout, body.ReferenceDate, time.Local); err == nil {
			ref = d
		}
	}

	meal, err := mc.Meals.Create(c.Request.Context(), userIDFromCtx(c), services.CreateMealInput{
		Name:  body.Name,
		Grams: body.Grams,
		Basis: utils.NutritionBasis{
			Calories: body.CaloriesPer100,
			Protein:  body.ProteinPer100,
			Carbs:    body.CarbsPer100,
			Fat:      body.FatPer100,
		},
		Note:          body.Note,
		ImageURL:      body.ImageURL,
		ReferenceDate: ref,
		Hint:          body.Hint,
		Override:      body.AteAt,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, meal)
}

// ListByDay returns the meals of one local calendar day, default today.
func (mc *MealController) ListByDay(c *gin.Context) {
	date := time.Now()
	if q := c.Query("date"); q != "" {
		d, err := time.ParseInLocation(utils.DayKeyLayout, q, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		date = d
	}

	meals, err := mc.Ledger.MealsForDay(c.Request.Context(), userIDFromCtx(c), date)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, meals)
}

func (mc *MealController) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal id"})
		return
	}

	var body struct {
		Name  *string    `json:"name"`
		Note  *string    `json:"note"`
		Grams *int       `json:"grams"`
		AteAt *time.Time `json:"ate_at"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	meal, err := mc.Meals.Update(c.Request.Context(), userIDFromCtx(c), uint(id), services.UpdateMealInput{
		Name:  body.Name,
		Note:  body.Note,
		Grams: body.Grams,
		AteAt: body.AteAt,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	// A quantity edit gets a refreshed AI comment when possible.
	if body.Grams != nil {
		meal.Note = mc.Gemini.RegenerateNote(c.Request.Context(), meal.Name, meal.ServingGrams)
		if _, err := mc.Meals.Update(c.Request.Context(), userIDFromCtx(c), uint(id),
			services.UpdateMealInput{Note: &meal.Note}); err != nil {
			abortWithError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, meal)
}

func (mc *MealController) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal id"})
		return
	}

	if err := mc.Meals.Delete(c.Request.Context(), userIDFromCtx(c), uint(id)); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "meal deleted"})
}
