package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wordbuilder/internal/config"
	"wordbuilder/internal/database"
	"wordbuilder/internal/handlers"
	"wordbuilder/internal/repository"
	"wordbuilder/internal/scheduler"
	"wordbuilder/internal/security"
	"wordbuilder/internal/service"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Initialize repositories
	sessionRepo := repository.NewSessionRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	attemptRepo := repository.NewAttemptRepository(db)
	teacherRepo := repository.NewTeacherRepository(db)

	// Initialize services
	tokens := security.NewTokenService(cfg.JWTSecret, cfg.TokenDuration)
	sessionService := service.NewSessionService(sessionRepo)
	progressService := service.NewProgressService(db, sessionRepo)
	teacherService := service.NewTeacherService(sessionRepo, progressRepo, attemptRepo)
	authService := service.NewAuthService(teacherRepo, tokens, cfg.TeacherSetupCode)
	wordService := service.NewWordService(db)
	reportService := service.NewReportService(teacherService)

	emailService, err := service.NewEmailService(cfg.SESRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.AppBaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}

	// Seed the word catalog
	if err := wordService.Seed(); err != nil {
		log.Fatalf("Failed to seed word catalog: %v", err)
	}

	// Initialize handlers
	loginLimiter := security.NewRateLimiter(10, time.Minute)
	middleware := handlers.NewMiddleware(authService, loginLimiter, cfg.AllowedOrigin)
	healthHandler := handlers.NewHealthHandler(db)
	sessionHandler := handlers.NewSessionHandler(sessionService, progressService)
	progressHandler := handlers.NewProgressHandler(progressService)
	wordHandler := handlers.NewWordHandler(wordService)
	authHandler := handlers.NewAuthHandler(authService)
	teacherHandler := handlers.NewTeacherHandler(sessionService, teacherService, reportService, emailService)

	// Setup routes
	mux := http.NewServeMux()

	// Static game assets
	mux.Handle("GET /", http.FileServer(http.Dir(cfg.StaticPath)))

	// Game routes
	mux.HandleFunc("GET /api/health", healthHandler.Health)
	mux.HandleFunc("POST /api/sessions", sessionHandler.Create)
	mux.HandleFunc("GET /api/sessions/{sessionID}", sessionHandler.Get)
	mux.HandleFunc("POST /api/attempts", progressHandler.RecordAttempt)
	mux.HandleFunc("GET /api/progress", progressHandler.GetProgress)
	mux.HandleFunc("GET /api/words", wordHandler.GetWords)

	// Dashboard account routes (public, rate limited)
	mux.HandleFunc("POST /api/teacher/register", middleware.RateLimit(authHandler.Register))
	mux.HandleFunc("POST /api/teacher/login", middleware.RateLimit(authHandler.Login))

	// Protected dashboard routes
	mux.HandleFunc("GET /api/teacher/sessions", middleware.RequireTeacher(teacherHandler.ListSessions))
	mux.HandleFunc("GET /api/teacher/sessions/{sessionID}/report", middleware.RequireTeacher(teacherHandler.SessionReport))
	mux.HandleFunc("GET /api/teacher/sessions/{sessionID}/attempts", middleware.RequireTeacher(teacherHandler.SessionAttempts))
	mux.HandleFunc("GET /api/teacher/sessions/{sessionID}/timeline", middleware.RequireTeacher(teacherHandler.SessionTimeline))
	mux.HandleFunc("GET /api/teacher/sessions/{sessionID}/export", middleware.RequireTeacher(teacherHandler.ExportReport))
	mux.HandleFunc("POST /api/teacher/sessions/{sessionID}/email-report", middleware.RequireTeacher(teacherHandler.EmailReport))

	// Wrap with CORS and logging middleware
	handler := handlers.Logging(middleware.CORS(mux))

	// Start the retention sweep
	sweeper := scheduler.New(sessionService, cfg.RetentionDays)
	sweeper.Start()
	defer sweeper.Stop()

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Forced shutdown: %v", err)
	}
}
