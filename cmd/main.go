package main

import (
	"log"

	"github.com/SalvereHW/SelfCoach-backend/config"
	"github.com/SalvereHW/SelfCoach-backend/controllers"
	"github.com/SalvereHW/SelfCoach-backend/routes"
	"github.com/SalvereHW/SelfCoach-backend/services"

	openai "github.com/sashabaranov/go-openai"
)

func main() {
	app := config.Load()
	config.InitDB()
	db := config.DB

	tokens := services.NewTokenService(app.AuthIssuerURL, app.AuthAudience, []byte(app.AuthJWTSecret), app.JWKSTimeout)
	identities := services.NewIdentityService(services.NewGormUserRepo(db))

	ai := openai.NewClient(app.OpenAIAPIKey)

	userSvc := services.NewUserService(db, identities)
	reminderSvc := services.NewReminderService(db)
	sleepSvc := services.NewSleepService(db)
	nutritionSvc := services.NewNutritionService(db)
	activitySvc := services.NewActivityService(db)
	summarySvc := services.NewDailySummaryService(db)
	wellnessSvc := services.NewWellnessService(db)
	insightSvc := services.NewInsightService(db, ai, app.OpenAIModel, app.InsightDayLimit)

	sweeper := services.NewReminderSweeper(services.NewGormReminderStore(db))
	sched, err := sweeper.Start()
	if err != nil {
		log.Fatalf("starting reminder sweeper: %v", err)
	}
	defer func() { _ = sched.Shutdown() }()

	r := routes.SetupRouter(tokens, identities, routes.Controllers{
		User:         controllers.NewUserController(userSvc),
		Reminder:     controllers.NewReminderController(reminderSvc),
		Sleep:        controllers.NewSleepController(sleepSvc),
		Nutrition:    controllers.NewNutritionController(nutritionSvc),
		Activity:     controllers.NewActivityController(activitySvc),
		DailySummary: controllers.NewDailySummaryController(summarySvc),
		Wellness:     controllers.NewWellnessController(wellnessSvc),
		Insight:      controllers.NewInsightController(insightSvc),
	})

	if err := r.Run(":" + app.Port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
