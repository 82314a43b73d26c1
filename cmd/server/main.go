package main

import (
	"taskboard-api/internal/auth"
	"taskboard-api/internal/config"
	"taskboard-api/internal/database"
	"taskboard-api/internal/logging"
	"taskboard-api/internal/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		logging.Logger.Fatalf("Event ID: CONFIG_LOAD_FAILED, Description: %v", err)
	}

	if err := logging.InitLogger(logging.Options{
		SystemName: "taskboard-api",
		Level:      cfg.LogLevel,
		File:       cfg.LogFile,
	}); err != nil {
		logging.Logger.Fatalf("Event ID: LOGGER_INIT_FAILED, Description: %v", err)
	}

	auth.Configure(auth.Settings{
		Secret:   []byte(cfg.JWTSecret),
		Issuer:   cfg.JWTIssuer,
		Audience: cfg.JWTAudience,
		TTL:      cfg.TokenTTL,
	})

	// Init database
	if err := database.InitDB(cfg.DatabaseDSN); err != nil {
		logging.Logger.Fatalf("Event ID: DB_INIT_FAILED, Description: %v", err)
	}

	gin.SetMode(cfg.GinMode)

	// Setup the routes (public and protected routes)
	ginRoutes := routes.SetupRoutes()

	// Start server
	logging.Logger.Infof("Server starting on %s", cfg.Addr())
	logging.Logger.Info("API endpoints:")
	for _, ri := range ginRoutes.Routes() {
		logging.Logger.Infof("  %-6s %s", ri.Method, ri.Path)
	}

	if err := ginRoutes.Run(cfg.Addr()); err != nil {
		logging.Logger.Fatalf("Event ID: SERVER_START_FAILED, Description: %v", err)
	}
}
