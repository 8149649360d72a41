// cmd/api/main.go
// Main entry point for the compatibility API
// This file bootstraps all components and starts the server

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yogeshsaini7172/iosflingzzapp-sub002/internal/auth"
	"github.com/yogeshsaini7172/iosflingzzapp-sub002/internal/common/database"
	"github.com/yogeshsaini7172/iosflingzzapp-sub002/internal/common/utils"
	"github.com/yogeshsaini7172/iosflingzzapp-sub002/internal/compatibility"
	"github.com/yogeshsaini7172/iosflingzzapp-sub002/internal/config"
	"github.com/yogeshsaini7172/iosflingzzapp-sub002/internal/dating"
)

var startTime = time.Now()

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	log.Println("========================================")
	log.Println("🚀 Starting QCS Compatibility API")
	log.Println("========================================")

	// 1. Load environment variables
	log.Println("📁 Step 1: Loading .env file...")
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️  Warning: No .env file found (%v), using environment variables", err)
	} else {
		log.Println("✅ .env file loaded successfully")
	}

	// 2. Load and validate configuration
	log.Println("\n📋 Step 2: Loading configuration...")
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal("❌ Configuration validation failed:", err)
	}
	log.Println("✅ Configuration is valid")

	// 3. Load scoring weights
	log.Println("\n⚖️  Step 3: Loading scoring weights...")
	weights, err := config.LoadWeights(cfg.ScoringWeightsFile)
	if err != nil {
		log.Fatal("❌ Failed to load scoring weights:", err)
	}
	if cfg.ScoringWeightsFile != "" {
		log.Printf("✅ Weights loaded from %s", cfg.ScoringWeightsFile)
	} else {
		log.Println("✅ Using default weights")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 4. Connect to PostgreSQL
	log.Println("\n🗄️  Step 4: Connecting to PostgreSQL...")
	db, err := database.NewPostgresDBFromURL(ctx, cfg.DatabaseURL, database.DefaultPool)
	if err != nil {
		log.Fatal("❌ Failed to connect to PostgreSQL:", err)
	}
	defer db.Close()
	log.Println("✅ Connected to PostgreSQL successfully")

	// 5. Connect to Redis (optional)
	log.Println("\n📮 Step 5: Connecting to Redis...")
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.NewRedisClientFromURL(ctx, cfg.RedisURL)
		if err != nil {
			log.Printf("⚠️  %v, continuing without score cache", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
			log.Println("✅ Connected to Redis successfully")
		}
	} else {
		log.Println("⚠️  Redis URL not configured, score cache disabled")
	}

	// 6. Run database migrations
	log.Println("\n🔨 Step 6: Running database migrations...")
	if err := database.RunMigrations(ctx, db); err != nil {
		log.Fatal("❌ Failed to run migrations:", err)
	}
	log.Println("✅ Database migrations completed")

	// 7. Initialize compatibility service
	log.Println("\n💘 Step 7: Initializing compatibility service...")
	scorer := compatibility.NewScorer(weights)
	datingService := dating.NewService(
		dating.NewPostgresRepository(db),
		dating.NewRedisScoreCache(redisClient, cfg.ScoreCacheTTL),
		dating.NewMatchingEngine(scorer),
		dating.ServiceConfig{
			CandidatePool:  cfg.CandidatePool,
			SyncWorkers:    cfg.SyncWorkers,
			SyncPageSize:   cfg.SyncPageSize,
			TopK:           cfg.QCSTopK,
			ScoreRetention: cfg.ScoreRetention,
			BaseContext:    ctx,
		},
	)
	log.Println("✅ Compatibility service initialized")

	// 8. Start scheduler
	if cfg.SyncEnabled {
		log.Printf("\n⏰ Step 8: Starting scheduler (QCS sync daily at %02d:00)...", cfg.SyncHour)
		dating.NewScheduler(datingService, cfg.SyncHour).Start(ctx)
		log.Println("✅ Scheduler started")
	} else {
		log.Println("\n⏰ Step 8: QCS sync disabled, scheduler not started")
	}

	// 9. Setup routes
	log.Println("\n🛣️  Step 9: Setting up routes...")
	router := mux.NewRouter()
	router.HandleFunc("/health", healthCheck).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	authMiddleware := auth.NewMiddleware(auth.JWTValidator{Secret: cfg.JWTSecret})
	dating.RegisterRoutes(router, dating.NewHandler(datingService), authMiddleware)
	router.Use(loggingMiddleware)
	log.Println("✅ Routes registered")

	// 10. Create and start HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Println("\n========================================")
		log.Printf("🚀 Server starting on http://localhost%s", srv.Addr)
		log.Printf("🌍 Environment: %s", cfg.Environment)
		log.Println("========================================")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("❌ Failed to start server:", err)
		}
	}()

	<-ctx.Done()
	log.Println("\n⚠️  Shutdown signal received...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("❌ Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	if err := datingService.Shutdown(shutdownCtx); err != nil {
		log.Printf("⚠️  QCS sync did not finish before shutdown: %v", err)
	}

	log.Println("✅ Server exited gracefully")
}

// healthCheck returns server health status
func healthCheck(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(startTime).String(),
	})
}

// loggingMiddleware logs all requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("→ %s %s from %s", r.Method, r.RequestURI, r.RemoteAddr)

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		log.Printf("← %s %s [%d] %v", r.Method, r.RequestURI, wrapped.statusCode, time.Since(start))
	})
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
