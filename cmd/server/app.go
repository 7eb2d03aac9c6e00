package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/taskforge/taskforge-api/internal/config"
	"github.com/taskforge/taskforge-api/internal/email"
	"github.com/taskforge/taskforge-api/internal/platform/postgres"
	"github.com/taskforge/taskforge-api/internal/service"
	"github.com/taskforge/taskforge-api/internal/service/auth"
)

// application holds the wired components shared by the router and the
// HTTP server.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	authService *service.AuthService
	userService *service.UserService
	taskService *service.TaskService
}

// newApplication connects to the database, runs pending migrations and
// builds the service graph.
func newApplication(cfg *config.Config) (*application, error) {
	logger := slog.Default()

	db, err := setupDatabase(cfg, logger)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := runMigrations(ctx, db, logger); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	tokenService, err := auth.NewTokenService(cfg.Auth)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}

	userStore := postgres.NewUserStore(db)
	taskStore := postgres.NewTaskStore(db)
	hasher := auth.NewBcryptHasher(bcrypt.DefaultCost)

	mailer := service.NewVerificationMailer(tokenService, emailSender(cfg, logger), service.VerificationConfig{
		BaseURL:       cfg.Server.BaseURL,
		TokenLifetime: time.Duration(cfg.Auth.VerificationTokenLifetimeHours) * time.Hour,
	}, logger)

	return &application{
		config:      cfg,
		logger:      logger,
		db:          db,
		authService: service.NewAuthService(userStore, tokenService, hasher, mailer, logger),
		userService: service.NewUserService(userStore, db, hasher, mailer, logger),
		taskService: service.NewTaskService(taskStore, db, logger),
	}, nil
}

// emailSender picks the outbound email implementation from config. The
// log mode writes messages to the application log instead of delivering
// them, which is what development environments want.
func emailSender(cfg *config.Config, logger *slog.Logger) email.Sender {
	if cfg.Email.Mode == "smtp" {
		return email.NewSMTPSender(cfg.Email)
	}
	return email.NewLogSender(logger)
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database connection", "error", err)
		}
	}
}
