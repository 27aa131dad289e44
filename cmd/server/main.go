package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/VoidMesh/terrain/internal/api"
	"github.com/VoidMesh/terrain/internal/config"
	"github.com/VoidMesh/terrain/internal/db"
	"github.com/VoidMesh/terrain/internal/logging"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Setup logging
	logging.InitLogger()
	logging.SetLevel(logging.ParseLevel(cfg.Logging.Level))
	logging.SetFormat(cfg.Logging.OutputFormat())
	log := logging.GetLogger()
	log.Debug("Configuration loaded", "server_port", cfg.Server.Port, "db_path", cfg.Database.Path, "log_level", cfg.Logging.Level)

	// Initialize database
	log.Debug("Initializing database connection", "path", cfg.Database.Path)
	openCtx, openCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	conn, err := db.Open(openCtx, cfg.Database.Path, db.PoolSettings{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	openCancel()
	if err != nil {
		log.Fatal("Failed to initialize database", "error", err)
	}
	defer conn.Close()

	// Run migrations
	if err := db.Migrate(conn); err != nil {
		log.Fatal("Failed to run database migrations", "error", err)
	}

	// Resolve the terrain preset used when requests omit a configuration
	preset, err := cfg.Terrain.ResolvePreset()
	if err != nil {
		log.Fatal("Failed to resolve terrain preset", "file", cfg.Terrain.PresetFile, "error", err)
	}
	log.Debug("Terrain preset resolved",
		"file", cfg.Terrain.PresetFile,
		"seed", preset.Terrain.Seed,
		"backend", preset.Terrain.NoiseBackend,
		"quads_x", preset.Terrain.Grid.QuadsX,
		"quads_y", preset.Terrain.Grid.QuadsY,
		"scatter_requests", len(preset.Scatter.Requests))

	// Initialize API handlers
	handler := api.NewHandler(conn, preset, api.Limits{
		MaxQuads:            cfg.Terrain.MaxQuads,
		MaxScatterCount:     cfg.Terrain.MaxScatterCount,
		MaxTriesPerInstance: cfg.Terrain.MaxTriesPerInstance,
	})
	router := api.SetupRoutes(handler, cfg.Server.RequestTimeout)
	log.Debug("API routes configured")

	// Create HTTP server
	log.Debug("Creating HTTP server", "port", cfg.Server.Port, "read_timeout", cfg.Server.ReadTimeout, "write_timeout", cfg.Server.WriteTimeout, "idle_timeout", cfg.Server.IdleTimeout)
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in a goroutine
	go func() {
		log.Info("Starting VoidMesh terrain server", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", "error", err)
		}
		log.Debug("Server stopped listening")
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info("Shutting down server...", "signal", sig.String())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	} else {
		log.Debug("Server shutdown completed gracefully")
	}

	log.Info("Server exited", "terrains_cached", handler.Registry().Len())
}
