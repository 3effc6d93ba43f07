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

	"golf-quota-tracker/handlers"
	"golf-quota-tracker/models"
	"golf-quota-tracker/quota"
	"golf-quota-tracker/services"
	"golf-quota-tracker/utils"
	"golf-quota-tracker/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 20 * 1024 * 1024, // CSV and JSON backups only
	})

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
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, X-Requested-With, X-Admin-Token",
		ExposeHeaders:    "Content-Length, Content-Type, Content-Disposition",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.Player{},
		&models.Tournament{},
		&models.TournamentResult{},
		&models.Setting{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	store := services.NewDocumentStore(db)

	threshold := 0
	if v := os.Getenv("UPLOAD_MATCH_THRESHOLD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			threshold = n
		} else {
			log.Printf("⚠️  Ignoring invalid UPLOAD_MATCH_THRESHOLD=%q", v)
		}
	}

	boardService := services.NewBoardService(store, quota.DefaultPolicy())
	playerService := services.NewPlayerService(store)
	tournamentService := services.NewTournamentService(store)
	uploadService := services.NewUploadService(store, threshold)
	backupService := services.NewBackupService(store)
	authService := services.NewAuthService(store)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if os.Getenv("R2_BUCKET_NAME") != "" {
		if err := utils.InitR2(); err != nil {
			log.Fatal("failed to initialize R2 client:", err)
		}
		interval := 24 * time.Hour
		if v := os.Getenv("BACKUP_INTERVAL_MINUTES"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				interval = time.Duration(n) * time.Minute
			}
		}
		go workers.PollBackups(ctx, backupService, interval)
		log.Printf("✅ Periodic R2 backups enabled (every %s)", interval)
	} else {
		log.Println("⚠️  R2_BUCKET_NAME not set, periodic backups disabled")
	}

	authService.StartSessionSweeper()

	handlers.SetupBoardRoutes(app, boardService)
	handlers.SetupAuthRoutes(app, authService)
	handlers.SetupAdminRoutes(app, authService, boardService, playerService, tournamentService, uploadService, backupService)

	app.Static("/", "./public")

	go func() {
		if err := app.Listen(":5300"); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Println("✅ Server running on http://localhost:5300")
	log.Println("✅ Public board at /board, admin API under /admin")
	log.Printf("✅ CORS configured for origins: %s", allowedOriginsString)

	<-ctx.Done()
	log.Println("Shutting down server...")
}
