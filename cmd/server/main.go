/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the admission benefits server.
  Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load .env (if present) and environment configuration
  2. Parse command-line flags (override the environment)
  3. Build the zap logger
  4. Load the benefit plan (YAML file or built-in default)
  5. Configure HTTP router and start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port    HTTP server port (default: $PORT or 8080)
  -plan    Benefit plan YAML/JSON file (default: $PLAN_FILE or built-in plan)

ENVIRONMENT:
  PORT, PLAN_FILE, LOG_LEVEL, LOG_FORMAT, ALLOWED_ORIGINS

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Flush the logger and exit

EXAMPLES:
  ./server -port=3000
  ./server -plan=./benefits.yaml
  LOG_FORMAT=console ./server

SEE ALSO:
  - api/server.go: Router configuration
  - config/config.go: Environment configuration
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/warp/admission-benefits/api"
	"github.com/warp/admission-benefits/benefit"
	"github.com/warp/admission-benefits/config"
	"github.com/warp/admission-benefits/factory"
	"github.com/warp/admission-benefits/logging"
	"go.uber.org/zap"
)

func main() {
	cfg, envFileFound := config.Load()

	// Flags
	port := flag.Int("port", cfg.Port, "HTTP server port")
	planFile := flag.String("plan", cfg.PlanFile, "Benefit plan file (YAML or JSON)")
	flag.Parse()

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if !envFileFound {
		logger.Debug("no .env file found, using environment only")
	}

	plan, err := loadPlan(*planFile)
	if err != nil {
		logger.Fatal("failed to load benefit plan", zap.String("plan_file", *planFile), zap.Error(err))
	}
	logger.Info("benefit plan loaded",
		zap.String("plan_file", *planFile),
		zap.Int("benefits", len(plan.Benefits)),
	)

	handler := api.NewHandler(plan, logger)
	router := api.NewRouter(handler, cfg.AllowedOrigins)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("server starting",
			zap.Int("port", *port),
			zap.Strings("allowed_origins", cfg.AllowedOrigins),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}

// loadPlan reads the plan file, or falls back to the built-in plan when none is set.
func loadPlan(path string) (benefit.Plan, error) {
	if path == "" {
		return factory.DefaultPlan(), nil
	}
	return factory.NewPlanFactory().LoadPlan(path)
}
