package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/maheynails/studio-api/internal/config"
	"github.com/maheynails/studio-api/internal/handlers"
	"github.com/maheynails/studio-api/internal/jobs"
	"github.com/maheynails/studio-api/internal/middleware"
	"github.com/maheynails/studio-api/internal/monitoring"
	"github.com/maheynails/studio-api/internal/services"
	"github.com/maheynails/studio-api/internal/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables.")
	}
	cfg := config.Load()
	log.Printf("MONGO_DATABASE: %s", cfg.MongoDatabase)
	log.Printf("API_PORT: %s", cfg.APIPort)
	if cfg.JWTSecret == "" {
		log.Println("JWT_SECRET is NOT SET.")
	}
	utils.SetJWTSecret(cfg.JWTSecret)

	// --- Database Connection ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)
	db := client.Database(cfg.MongoDatabase)
	log.Println("Successfully connected to MongoDB!")

	// --- Metrics ---
	monitoring.Init()

	// --- Services ---
	emailSvc := services.NewEmailService(cfg.StudioEmail)
	mediaSvc, err := services.NewMediaStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to media store: %v", err)
	}
	chatSvc := services.NewChatService(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiAPIVersion)
	kb, err := services.LoadKnowledgeBase()
	if err != nil {
		log.Fatalf("Failed to load knowledge base: %v", err)
	}

	h := handlers.NewHandler(db, emailSvc, mediaSvc, chatSvc, kb)

	// --- Scheduled jobs ---
	scheduler := jobs.StartScheduler(db)
	defer scheduler.Stop()

	// --- Gin Router ---
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(monitoring.Handler()))

	// --- Routes ---
	authRoutes := r.Group("/auth")
	{
		authRoutes.POST("/register", h.RegisterUser)
		authRoutes.POST("/login", h.Login)
	}

	api := r.Group("/api")
	{
		// Public site endpoints
		api.POST("/appointments", h.BookAppointment)
		api.GET("/review", h.GetReviews)
		api.POST("/review", h.CreateReview)
		api.GET("/services", h.GetServices)
		api.GET("/services/:id", h.GetService)
		api.POST("/chat", h.HandleChat)
		api.GET("/videosReview", h.GetPublicVideos)

		// Staff endpoints
		staff := api.Group("")
		staff.Use(middleware.AuthMiddleware())
		{
			staff.GET("/appointments", h.GetAppointments)
		}

		// Admin endpoints
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(), middleware.RequireRole("admin"))
		{
			admin.PUT("/appointments/:id", h.UpdateAppointment)
			admin.PATCH("/appointments/:id/cancel", h.CancelAppointment)

			admin.GET("/videosReview", h.ListVideos)
			admin.POST("/videosReview", h.CreateVideo)
			admin.GET("/videosReview/:id", h.GetVideo)
			admin.PUT("/videosReview/:id", h.UpdateVideo)
			admin.DELETE("/videosReview/:id", h.DeleteVideo)
			admin.POST("/videosReview/upload", h.UploadVideo)
		}
	}

	log.Printf("Starting server on port %s", cfg.APIPort)
	r.Run(":" + cfg.APIPort)
}
