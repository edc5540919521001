package routes

import (
	"net/http"

	"github.com/SalvereHW/SelfCoach-backend/controllers"
	"github.com/SalvereHW/SelfCoach-backend/middlewares"
	"github.com/SalvereHW/SelfCoach-backend/services"

	"github.com/gin-gonic/gin"
)

// Controllers bundles every handler the router mounts.
type Controllers struct {
	User         *controllers.UserController
	Reminder     *controllers.ReminderController
	Sleep        *controllers.SleepController
	Nutrition    *controllers.NutritionController
	Activity     *controllers.ActivityController
	DailySummary *controllers.DailySummaryController
	Wellness     *controllers.WellnessController
	Insight      *controllers.InsightController
}

func SetupRouter(tokens *services.TokenService, identities *services.IdentityService, ctrl Controllers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middlewares.RequestLogger())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.Use(middlewares.AuthRequired(tokens, identities))

	user := api.Group("/user")
	{
		user.POST("/profile", ctrl.User.CreateProfile)
		user.GET("/me", ctrl.User.Me)
		user.PUT("/me", ctrl.User.UpdateProfile)
		user.DELETE("/me", ctrl.User.Delete)
		user.GET("/all", ctrl.User.ListAll)
	}

	reminders := api.Group("/reminders")
	{
		reminders.POST("", ctrl.Reminder.Create)
		reminders.GET("", ctrl.Reminder.List)
		reminders.GET("/upcoming", ctrl.Reminder.Upcoming)
		reminders.GET("/stats", ctrl.Reminder.Stats)
		reminders.GET("/actions", ctrl.Reminder.Actions)
		reminders.GET("/:id", ctrl.Reminder.Get)
		reminders.GET("/:id/actions", ctrl.Reminder.Actions)
		reminders.PUT("/:id", ctrl.Reminder.Update)
		reminders.DELETE("/:id", ctrl.Reminder.Delete)
		reminders.POST("/:id/complete", ctrl.Reminder.Complete)
		reminders.POST("/:id/dismiss", ctrl.Reminder.Dismiss)
		reminders.POST("/:id/snooze", ctrl.Reminder.Snooze)
	}

	health := api.Group("/health")
	{
		sleep := health.Group("/sleep")
		sleep.POST("", ctrl.Sleep.Create)
		sleep.GET("", ctrl.Sleep.List)
		sleep.GET("/stats", ctrl.Sleep.Stats)
		sleep.GET("/:id", ctrl.Sleep.Get)
		sleep.PUT("/:id", ctrl.Sleep.Update)
		sleep.DELETE("/:id", ctrl.Sleep.Delete)

		nutrition := health.Group("/nutrition")
		nutrition.POST("", ctrl.Nutrition.Create)
		nutrition.GET("", ctrl.Nutrition.List)
		nutrition.GET("/stats", ctrl.Nutrition.Stats)
		nutrition.GET("/daily/:date", ctrl.Nutrition.Daily)
		nutrition.GET("/:id", ctrl.Nutrition.Get)
		nutrition.PUT("/:id", ctrl.Nutrition.Update)
		nutrition.DELETE("/:id", ctrl.Nutrition.Delete)

		activity := health.Group("/activity")
		activity.POST("", ctrl.Activity.Create)
		activity.GET("", ctrl.Activity.List)
		activity.GET("/stats", ctrl.Activity.Stats)
		activity.GET("/:id", ctrl.Activity.Get)
		activity.PUT("/:id", ctrl.Activity.Update)
		activity.DELETE("/:id", ctrl.Activity.Delete)

		summary := health.Group("/daily-summary")
		summary.POST("", ctrl.DailySummary.Create)
		summary.POST("/upsert", ctrl.DailySummary.Upsert)
		summary.GET("", ctrl.DailySummary.List)
		summary.GET("/stats", ctrl.DailySummary.Stats)
		summary.GET("/date/:date", ctrl.DailySummary.GetByDate)
		summary.GET("/:id", ctrl.DailySummary.Get)
		summary.PUT("/:id", ctrl.DailySummary.Update)
		summary.DELETE("/:id", ctrl.DailySummary.Delete)
	}

	wellness := api.Group("/wellness")
	{
		wellness.GET("/sessions", ctrl.Wellness.ListSessions)
		wellness.POST("/sessions", ctrl.Wellness.CreateSession)
		wellness.GET("/sessions/user-progress", ctrl.Wellness.UserProgress)
		wellness.GET("/sessions/:id", ctrl.Wellness.GetSession)
		wellness.PUT("/sessions/:id", ctrl.Wellness.UpdateSession)
		wellness.DELETE("/sessions/:id", ctrl.Wellness.DeleteSession)
		wellness.POST("/sessions/:id/start", ctrl.Wellness.Start)
		wellness.POST("/sessions/:id/progress", ctrl.Wellness.Progress)
		wellness.POST("/sessions/:id/complete", ctrl.Wellness.Complete)
		wellness.GET("/stats", ctrl.Wellness.Stats)
	}

	insights := api.Group("/ai-insights")
	{
		insights.POST("", ctrl.Insight.Create)
		insights.GET("", ctrl.Insight.List)
		insights.GET("/unread", ctrl.Insight.Unread)
		insights.GET("/type/:type", ctrl.Insight.ByType)
		insights.POST("/generate", ctrl.Insight.Generate)
		insights.GET("/generation-status", ctrl.Insight.GenerationStatus)
		insights.GET("/:id", ctrl.Insight.Get)
		insights.POST("/:id/read", ctrl.Insight.MarkRead)
		insights.POST("/:id/dismiss", ctrl.Insight.Dismiss)
		insights.DELETE("/:id", ctrl.Insight.Delete)
	}

	return r
}
