package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/dantetesta/estacionamento/internal/api"
	"github.com/dantetesta/estacionamento/internal/auth"
	"github.com/dantetesta/estacionamento/internal/certs"
	"github.com/dantetesta/estacionamento/internal/config"
	"github.com/dantetesta/estacionamento/internal/database"
	"github.com/dantetesta/estacionamento/internal/logging"
	"github.com/dantetesta/estacionamento/internal/models"
	"github.com/dantetesta/estacionamento/internal/session"
)

func main() {
	// Best-effort: a missing .env just means real env vars or defaults
	_ = godotenv.Load()

	cfg := config.Load()

	logger, err := logging.New(cfg.LogLevel, cfg.LogDev)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Sugar()

	dbPath := cfg.DBPath
	if dbPath != ":memory:" && !filepath.IsAbs(dbPath) {
		cwd, _ := os.Getwd()
		dbPath = filepath.Join(cwd, dbPath)
	}

	log.Infow("initializing database", "path", dbPath)
	if err := database.Open(database.Config{Path: dbPath}); err != nil {
		log.Fatalw("failed to initialize database", "error", err)
	}
	defer database.Close()

	if err := createDefaultAdminIfNeeded(cfg, log); err != nil {
		log.Warnw("failed to create default admin", "error", err)
	}

	clock := session.RealClock{}
	store := session.NewMemoryStore(cfg.SessionLifetime, clock)
	sessions := session.NewManager(store, clock, cfg.SessionCookieName, cfg.SessionLifetime, cfg.RegenerationInterval)
	gate := auth.NewGate(cfg.MaxLoginAttempts, cfg.LoginBlockWindow)
	authSvc := auth.NewService(sessions, gate, log)

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	apiGroup := e.Group("/api")
	api.RegisterRoutes(apiGroup, authSvc, cfg, log)

	if cfg.TLSEnabled {
		certPath, keyPath, err := certs.Ensure(cfg.CertDir)
		if err != nil {
			log.Fatalw("failed to prepare TLS certificates", "error", err)
		}
		log.Infow("starting server with TLS", "port", cfg.Port)
		e.Logger.Fatal(e.StartTLS(":"+cfg.Port, certPath, keyPath))
	}

	log.Infow("starting server", "port", cfg.Port)
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}

// createDefaultAdminIfNeeded creates a default admin user on first run,
// when the users table is empty
func createDefaultAdminIfNeeded(cfg config.Config, log *zap.SugaredLogger) error {
	userRepo := database.NewUserRepo()

	count, err := userRepo.Count()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	log.Warnw("creating default admin user (admin/admin) - CHANGE THIS PASSWORD")

	passwordHash, err := auth.HashPassword("admin", cfg.BcryptCost)
	if err != nil {
		return err
	}

	admin := &models.User{
		Username:     "admin",
		DisplayName:  "Administrator",
		PasswordHash: passwordHash,
	}

	return userRepo.Create(admin)
}
