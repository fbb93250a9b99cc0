package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"awards-platform/internal/auth"
	"awards-platform/internal/config"
	"awards-platform/internal/database"
	"awards-platform/internal/handlers"
	"awards-platform/internal/identity"
	"awards-platform/internal/jobs"
	"awards-platform/internal/repository"
	"awards-platform/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize JWT
	auth.InitJWT(cfg.App.JWTSecret)

	// Connect to database
	if err := database.Connect(cfg.GetDSN()); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.AutoMigrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize identity provider adapter
	vkClient := identity.NewClient(
		cfg.VK.ClientID,
		cfg.VK.ClientSecret,
		cfg.VK.RedirectURL,
	)

	// Initialize repository
	repo := repository.NewRepository(database.GetDB())

	// Initialize services
	authService := services.NewAuthService(database.GetDB(), vkClient)
	stageService := services.NewStageService(database.GetDB())
	suggestionService := services.NewSuggestionService(database.GetDB())
	voteService := services.NewVoteService(repo)
	tallyService := services.NewTallyService(repo)
	juryService := services.NewJuryService(repo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	awardHandler := handlers.NewAwardHandler(database.GetDB(), stageService, tallyService)
	suggestionHandler := handlers.NewSuggestionHandler(stageService, suggestionService)
	voteHandler := handlers.NewVoteHandler(stageService, voteService, authService)
	juryHandler := handlers.NewJuryHandler(juryService)
	adminHandler := handlers.NewAdminHandler(
		database.GetDB(),
		stageService,
		suggestionService,
		tallyService,
		juryService,
		cfg.App.BaseURL,
	)

	// Start jury token sweeper (runs every hour)
	sweeperJob := jobs.NewTokenSweeperJob(repo)
	sweeperJob.Start(time.Hour)
	log.Println("Jury token sweeper started")

	// Set up Gin router
	router := gin.Default()

	// CORS middleware
	allowedOrigins := []string{
		"http://localhost:3000", // Local development
		"http://localhost:5173", // Vite dev server
		"http://127.0.0.1:3000",
		"http://127.0.0.1:5173",
	}
	// Add additional frontend URL from environment if provided
	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		allowedOrigins = append(allowedOrigins, frontendURL)
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Authentication routes (public)
	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/vk", authHandler.VKLogin)
		authRoutes.POST("/logout", authHandler.Logout)
	}

	// Authenticated /auth/me route
	authProtected := router.Group("/auth")
	authProtected.Use(auth.AuthMiddleware())
	{
		authProtected.GET("/me", authHandler.GetMe)
	}

	// Public award routes
	router.GET("/api/awards", awardHandler.GetIndex)
	router.GET("/api/results", awardHandler.GetPublicResults)

	// Jury login by single-use token; an existing session is upgraded
	router.GET("/jury-login/:token", auth.OptionalAuthMiddleware(), juryHandler.JuryLogin)

	// API routes (protected)
	api := router.Group("/api")
	api.Use(auth.AuthMiddleware())
	{
		api.GET("/categories", awardHandler.GetCategories)

		// Suggestion endpoints
		api.POST("/suggestions/categories", suggestionHandler.SuggestCategory)
		api.POST("/categories/:id/suggestions", suggestionHandler.SuggestNominee)

		// Voting endpoints
		api.POST("/categories/:id/vote", voteHandler.CastVote)
		api.GET("/categories/:id/vote", voteHandler.GetMyVote)
	}

	// Admin routes (protected + staff only)
	admin := router.Group("/api/admin")
	admin.Use(auth.AuthMiddleware())
	admin.Use(adminHandler.StaffMiddleware())
	{
		// Award cycle management
		admin.POST("/config", adminHandler.BootstrapConfig)
		admin.PUT("/stage", adminHandler.TransitionStage)

		// Suggestion moderation
		admin.GET("/suggestions/categories", adminHandler.GetPendingCategorySuggestions)
		admin.POST("/suggestions/categories/:id/moderate", adminHandler.ModerateCategorySuggestion)
		admin.GET("/suggestions/nominees", adminHandler.GetPendingNomineeSuggestions)
		admin.POST("/suggestions/nominees/:id/moderate", adminHandler.ModerateNomineeSuggestion)

		// Direct category management
		admin.POST("/categories", adminHandler.CreateCategory)
		admin.POST("/categories/:id/nominees", adminHandler.CreateNominee)

		// Jury tokens
		admin.POST("/jury-tokens", adminHandler.GenerateJuryToken)

		// Tally
		admin.GET("/tally", adminHandler.PreviewTally)
		admin.POST("/tally", adminHandler.RunTally)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.Server.Port)
		log.Printf("Health check: http://localhost:%s/health", cfg.Server.Port)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with 5 second timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
