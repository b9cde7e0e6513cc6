package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"goreal-api/handlers"
	"goreal-api/middleware"
	"goreal-api/models"
	"goreal-api/services"
	"goreal-api/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 16 * 1024 * 1024, // 16MB — proof uploads are capped well below this
	})

	app.Use(recover.New())
	app.Use(middleware.RequestID())

	// Load allowed origins from environment variable
	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		log.Println("⚠️  ALLOWED_ORIGINS environment variable not set, using default: http://localhost:3000")
		allowedOriginsEnv = "http://localhost:3000"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}
	allowedOriginsString := strings.Join(allowedOriginsList, ",")

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOriginsString,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID",
		ExposeHeaders:    "Content-Length, Content-Type, X-Request-ID",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Sheet store: Google-backed when credentials are configured, in-memory
	// otherwise (local development, nothing persisted).
	credsFile := os.Getenv("GOOGLE_CREDENTIALS_FILE")
	sheetID := os.Getenv("SHEET_ID")
	playerLogSheet := envDefault("PLAYERLOG_SHEET", "PlayerLog")
	challengesSheet := envDefault("CHALLENGES_SHEET", "Challenges")

	var open services.Opener
	if credsFile == "" || sheetID == "" {
		log.Println("⚠️  GOOGLE_CREDENTIALS_FILE or SHEET_ID not set — using in-memory sheet store (data is NOT persisted)")
		mem := services.NewMemorySpreadsheet(map[string][][]string{
			playerLogSheet:  {models.PlayerLogHeader},
			challengesSheet: {models.ChallengesHeader},
		})
		open = func() (services.Spreadsheet, error) { return mem, nil }
	} else {
		open = func() (services.Spreadsheet, error) {
			return services.OpenGoogleSheet(context.Background(), credsFile, sheetID)
		}
	}

	store := services.NewSheetsClient(open, playerLogSheet, challengesSheet)
	if err := store.Connect(); err != nil {
		// Not fatal: the connection is retried on every call.
		log.Printf("⚠️  sheet store not reachable yet: %v", err)
	}

	cacheTTL := 60 * time.Second
	if raw := os.Getenv("CACHE_TTL"); raw != "" {
		if seconds, err := strconv.Atoi(raw); err == nil && seconds > 0 {
			cacheTTL = time.Duration(seconds) * time.Second
		}
	}
	catalog := services.NewCatalogCache(store, cacheTTL)
	catalog.StartRefreshJob()

	// Relational mirror: migrated when DATABASE_URL is set, never touched by
	// the HTTP handlers. The sheet store stays the source of truth.
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			log.Fatal("failed to connect to database:", err)
		}
		if err := db.AutoMigrate(
			&models.Player{},
			&models.Challenge{},
			&models.PlayerChallenge{},
			&models.Achievement{},
			&models.PlayerAchievement{},
		); err != nil {
			log.Fatal("failed to migrate database:", err)
		}
		log.Println("✅ Relational mirror schema migrated")
	} else {
		log.Println("⚠️  DATABASE_URL not set — relational mirror disabled")
	}

	if err := utils.InitR2(); err != nil {
		log.Printf("⚠️  failed to initialize R2 client, proof uploads disabled: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	chatbot, err := services.NewChatbotClient(ctx)
	if err != nil {
		log.Printf("⚠️  failed to configure Gemini client, chatbot disabled: %v", err)
	} else if chatbot == nil {
		log.Println("⚠️  GEMINI_API_KEY not set — chatbot will answer with a canned message")
	}

	handlers.SetupChallengeRoutes(app, store, catalog)
	handlers.SetupAdminRoutes(app, store, catalog)
	handlers.SetupWebsiteRoutes(app, chatbot)

	port := envDefault("API_PORT", "5000")
	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ GoREAL API running on http://localhost:%s", port)
	log.Printf("✅ Catalog cache refreshing every %s", cacheTTL)
	log.Printf("✅ CORS configured for origins: %s", allowedOriginsString)

	<-ctx.Done()
	log.Println("Shutting down server...")
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}

func envDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
