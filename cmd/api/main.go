package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/aperturelabs/alms/internal/database"
	"github.com/aperturelabs/alms/internal/di"
)

func main() {
	_ = godotenv.Load()

	app, cleanup, err := di.InitializeApplication()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start ALMS: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	app.Logger.Info("Starting ALMS API", "version", di.Version, "env", app.Config.Server.Env)

	migrationsPath := app.Config.Database.MigrationsPath
	if migrationsPath == "" {
		migrationsPath = getMigrationsPath()
	}
	if err := database.RunMigrations(app.DB, migrationsPath, app.Logger); err != nil {
		app.Logger.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	fiberApp := app.Server.App()
	requireAuth := app.AuthMiddleware.Require()

	app.StatusHandler.Register(fiberApp)
	app.HealthHandler.Register(fiberApp)
	app.MetricsHandler.Register(fiberApp)
	app.SwaggerHandler.Register(fiberApp)
	app.EmployeeHandler.Register(fiberApp, requireAuth, app.Server.AuthRateLimiter())
	app.ConversationHandler.Register(fiberApp, requireAuth)
	app.MessageHandler.Register(fiberApp, requireAuth)
	app.EventsHandler.Register(fiberApp, requireAuth)
	app.Server.RegisterFallback()

	go func() {
		if err := app.Server.Start(); err != nil {
			app.Logger.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	if err := app.Server.Shutdown(); err != nil {
		app.Logger.Error("Server forced to shutdown", "error", err)
	}

	app.Logger.Info("Server stopped")
}

func getMigrationsPath() string {
	execPath, err := os.Executable()
	if err != nil {
		return "migrations"
	}

	execDir := filepath.Dir(execPath)

	possiblePaths := []string{
		filepath.Join(execDir, "migrations"),
		filepath.Join(execDir, "..", "..", "migrations"),
		"migrations",
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return "migrations"
}
