package routes

import (
	"github.com/Marino59/dieta/config"
	"github.com/Marino59/dieta/controllers"
	"github.com/Marino59/dieta/middlewares"
	"github.com/Marino59/dieta/services"

	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	db := config.DB
	hub := services.NewRealtimeHub()
	gemini := services.NewGeminiService()
	foods := services.NewOpenFoodFactsService()
	ledger := services.NewLedgerService(db)
	meals := services.NewMealService(db, ledger, hub)
	weights := services.NewWeightService(db, ledger, hub)
	advice := services.NewAdviceService(db, gemini, ledger)
	profiles := services.NewProfileService(db, gemini, advice)

	mealCtrl := controllers.NewMealController(meals, ledger, gemini, foods)
	weightCtrl := controllers.NewWeightController(weights)
	profileCtrl := controllers.NewProfileController(profiles)
	summaryCtrl := controllers.NewSummaryController(ledger)
	adviceCtrl := controllers.NewAdviceController(advice)
	realtimeCtrl := controllers.NewRealtimeController(hub)

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
	}

	api := r.Group("/api")
	api.Use(middlewares.AuthMiddleware())
	{
		meal := api.Group("/meals")
		{
			meal.POST("/estimate/image", mealCtrl.EstimateImage)
			meal.POST("/estimate/text", mealCtrl.EstimateText)
			meal.GET("/estimate/barcode/:code", mealCtrl.EstimateBarcode)
			meal.POST("", mealCtrl.Create)
			meal.GET("", mealCtrl.ListByDay)
			meal.PUT("/:id", mealCtrl.Update)
			meal.DELETE("/:id", mealCtrl.Delete)
		}

		weight := api.Group("/weights")
		{
			weight.POST("", weightCtrl.QuickLog)
			weight.POST("/history", weightCtrl.AddSample)
			weight.GET("", weightCtrl.History)
			weight.DELETE("/:id", weightCtrl.Delete)
		}

		profile := api.Group("/profile")
		{
			profile.GET("", profileCtrl.Get)
			profile.PUT("", profileCtrl.Save)
			profile.POST("/goal", profileCtrl.ApplyGoal)
		}

		api.GET("/summary", summaryCtrl.Daily)
		api.GET("/charts", summaryCtrl.Chart)

		api.GET("/advice", adviceCtrl.Daily)
		api.GET("/advice/hungry", adviceCtrl.Hungry)

		api.POST("/uploads/meal-image", controllers.UploadMealImage)

		api.GET("/ws", realtimeCtrl.SummaryWS)
	}

	return r
}
