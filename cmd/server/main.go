// Package main initializes and starts the StaffKeeper HTTP server,
// setting up configuration, logging, the database connection,
// repositories, services, and handlers.
package main

import (
	"cmp"
	"context"
	"fmt"
	"time"

	nethttp "net/http"

	"github.com/avolkov/StaffKeeper/internal/config"
	"github.com/avolkov/StaffKeeper/internal/db"
	"github.com/avolkov/StaffKeeper/internal/logger"
	"github.com/avolkov/StaffKeeper/internal/repository"
	"github.com/avolkov/StaffKeeper/internal/server/handler/http"
	"github.com/avolkov/StaffKeeper/internal/service"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	zapLogger, err := logger.New("info")
	if err != nil {
		panic(err)
	}
	defer func() { _ = zapLogger.Sync() }()

	if options.JWTSecret == "" {
		zapLogger.Fatal("jwt signing secret is required")
	}

	// Initialize PostgreSQL connection.
	postgresDB, err := db.InitPostgres(options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	// Periodically drop expired session rows.
	db.StartSessionCleaner(context.Background(), postgresDB, time.Hour, zapLogger)

	// Initialize repositories for identity, sessions and records.
	userRepo := repository.NewPostgresUserRepository(postgresDB)
	sessionRepo := repository.NewPostgresSessionRepository(postgresDB)
	employeeRepo := repository.NewPostgresEmployeeRepository(postgresDB)

	// Initialize business-logic services.
	authService := service.NewAuthService(userRepo, sessionRepo, []byte(options.JWTSecret))
	employeeService := service.NewEmployeeService(employeeRepo)

	// Create HTTP handlers for identity and employee endpoints.
	authHandler := &http.AuthHandler{AuthService: authService}
	employeeHandler := &http.EmployeeHandler{EmployeeService: employeeService}

	// Build the router with middleware and routes.
	router := http.NewRouter(authHandler, employeeHandler, authService, zapLogger)

	server := &nethttp.Server{
		Addr:    options.Address,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", options.Address))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
