package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/SalvereHW/SelfCoach-backend/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// App holds everything read from the environment besides the DB DSN.
type App struct {
	Port            string
	AuthIssuerURL   string // base URL of the identity provider, no trailing slash
	AuthAudience    string
	AuthJWTSecret   string // shared secret for HS256 service tokens
	JWKSTimeout     time.Duration
	OpenAIAPIKey    string
	OpenAIModel     string
	InsightDayLimit int
}

func Load() *App {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment")
	}

	app := &App{
		Port:            getenv("PORT", "8080"),
		AuthIssuerURL:   os.Getenv("AUTH_ISSUER_URL"),
		AuthAudience:    getenv("AUTH_AUDIENCE", "authenticated"),
		AuthJWTSecret:   os.Getenv("AUTH_JWT_SECRET"),
		JWKSTimeout:     10 * time.Second,
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:     getenv("OPENAI_MODEL", "gpt-4o-mini"),
		InsightDayLimit: 5,
	}
	if v := os.Getenv("INSIGHT_DAILY_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			app.InsightDayLimit = n
		}
	}
	if app.AuthIssuerURL == "" {
		log.Fatalf("AUTH_ISSUER_URL is required")
	}
	return app
}

func InitDB() {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.Reminder{},
		&models.ReminderAction{},
		&models.SleepMetric{},
		&models.NutritionMetric{},
		&models.ActivityMetric{},
		&models.DailySummary{},
		&models.WellnessSession{},
		&models.SessionProgress{},
		&models.AIInsight{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
