package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"path-sweep/internal/database"
	"path-sweep/web/backend/api"
	"path-sweep/web/backend/auth"
	"path-sweep/web/backend/middleware"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"
)

const (
	ServerAddr      = ":8443"
	ReadTimeout     = 15 * time.Second
	WriteTimeout    = 15 * time.Second
	IdleTimeout     = 60 * time.Second
	ShutdownTimeout = 10 * time.Second

	DefaultDBPath     = "/var/lib/path-sweep/sweeps.db"
	DefaultDaemonAddr = "http://localhost:9191"
)

func main() {
	logger := log.New(os.Stdout, "[path-sweep-web] ", log.LstdFlags|log.Lshortfile)

	// JWT secret from file (container secrets) or environment variable
	var jwtSecret string
	if secretFile := os.Getenv("JWT_SECRET_FILE"); secretFile != "" {
		secretBytes, err := os.ReadFile(secretFile)
		if err != nil {
			logger.Fatalf("Failed to read JWT secret file %s: %v", secretFile, err)
		}
		jwtSecret = strings.TrimSpace(string(secretBytes))
	} else {
		jwtSecret = os.Getenv("JWT_SECRET")
		if jwtSecret == "" {
			logger.Fatalf("Cannot start without JWT secret: set JWT_SECRET_FILE or JWT_SECRET")
		}
	}

	jwtExpiry := 24 * time.Hour
	if s := os.Getenv("JWT_EXPIRY"); s != "" {
		if d, err := time.ParseDuration(s); err == nil {
			jwtExpiry = d
		} else {
			logger.Printf("Invalid JWT_EXPIRY, using default: %v", err)
		}
	}

	jwtManager := auth.NewJWTManager(jwtSecret, jwtExpiry)

	dbPath := os.Getenv("SWEEP_DB_PATH")
	if dbPath == "" {
		dbPath = DefaultDBPath
	}
	db, err := database.NewSweepDB(dbPath)
	if err != nil {
		logger.Fatalf("Failed to open sweep database %s: %v", dbPath, err)
	}
	defer db.Close()

	daemonAddr := os.Getenv("SWEEP_DAEMON_ADDR")
	if daemonAddr == "" {
		daemonAddr = DefaultDaemonAddr
	}

	router := mux.NewRouter()

	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.CORSMiddleware)
	router.Use(middleware.SecurityHeadersMiddleware)
	// Limit request body size to 1MB
	router.Use(middleware.RequestBodySizeLimitMiddleware(1 << 20))
	// Global rate limiting: 100 requests per second with burst of 200
	router.Use(middleware.RateLimitMiddleware(rate.Limit(100), 200))

	// Public routes, with stricter rate limiting on login
	loginRouter := router.PathPrefix("/api/v1/auth").Subrouter()
	loginRouter.Use(middleware.RateLimitMiddleware(rate.Limit(5), 10))
	loginRouter.HandleFunc("/login", api.LoginHandler(jwtManager)).Methods("POST")

	router.HandleFunc("/api/v1/health", api.HealthHandler).Methods("GET", "HEAD")

	// Protected routes (require JWT)
	protected := router.PathPrefix("/api/v1").Subrouter()
	protected.Use(middleware.AuthMiddleware(jwtManager))
	protected.HandleFunc("/sweeps", api.GetSweepsHandler(db)).Methods("GET")
	protected.HandleFunc("/sweeps/stats", api.GetStatsHandler(db)).Methods("GET")
	protected.HandleFunc("/sweeps/trigger", api.TriggerSweepHandler(daemonAddr)).Methods("POST")

	srv := &http.Server{
		Addr:         ServerAddr,
		Handler:      router,
		ReadTimeout:  ReadTimeout,
		WriteTimeout: WriteTimeout,
		IdleTimeout:  IdleTimeout,
	}

	go func() {
		logger.Printf("Listening on %s", ServerAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	logger.Printf("Received signal %v, shutting down...", sig)

	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("Shutdown error: %v", err)
	}
	logger.Println("Server stopped")
}
