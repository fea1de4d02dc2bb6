package app

import (
	"context"
	"errors"
	"fmt"
	"syscall"

	"github.com/andy/clientdesk/internal/config"
	"github.com/andy/clientdesk/internal/crypto"
	"github.com/andy/clientdesk/internal/db"
	"github.com/andy/clientdesk/internal/logging"
	"github.com/andy/clientdesk/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// App is the dependency injection container for all application components
type App struct {
	Config *config.Config
	DB     *db.DB
	Logger *zap.Logger

	// Repositories
	ClientRepo repository.ClientRepository
	VisitRepo  repository.VisitRepository
}

// New creates a new App instance from the default config file.
// It handles:
// 1. Loading config (file + CLIENTDESK_* environment overrides)
// 2. Getting the encryption key from the keyring, prompting on first run
// 3. Opening the database and running migrations
// 4. Creating repositories
func New(ctx context.Context) (*App, error) {
	cfg, err := config.LoadDefault()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return NewWithConfig(ctx, cfg)
}

// NewWithConfig creates an App with a provided config
func NewWithConfig(ctx context.Context, cfg *config.Config) (*App, error) {
	password, err := crypto.ResolveKey(crypto.NewKeyring(), promptForPassword)
	if err != nil {
		return nil, err
	}

	return Open(ctx, cfg, password)
}

// Open builds the App with a known database password (useful for testing)
func Open(ctx context.Context, cfg *config.Config, password string) (*App, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	database, err := db.Open(cfg.Database.Path, password)
	if err != nil {
		logger.Error("failed to open database", zap.String("path", cfg.Database.Path), zap.Error(err))
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := database.RunMigrations(); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("database ready", zap.String("path", cfg.Database.Path))

	return &App{
		Config:     cfg,
		DB:         database,
		Logger:     logger,
		ClientRepo: repository.NewClientRepo(database),
		VisitRepo:  repository.NewVisitRepo(database),
	}, nil
}

// Close cleanly shuts down the application
func (a *App) Close() error {
	var err error
	if a.DB != nil {
		err = a.DB.Close()
	}
	if a.Logger != nil {
		// Sync on a file logger can report EINVAL for special files; ignore it
		if syncErr := a.Logger.Sync(); syncErr != nil && !errors.Is(syncErr, syscall.EINVAL) {
			err = errors.Join(err, syncErr)
		}
	}
	return err
}

// SaveConfig saves the current configuration to disk
func (a *App) SaveConfig() error {
	return a.Config.Save(config.DefaultConfigPath())
}

// promptForPassword prompts user for a new database password (first run)
func promptForPassword() (string, error) {
	fmt.Println("Setting up database encryption for the first time...")
	fmt.Println()
	fmt.Println("Your client records will be encrypted with a password.")
	fmt.Println("This password will be stored securely in your system keyring.")
	fmt.Println()
	fmt.Print("Enter a password for database encryption: ")

	// Read password securely (no echo)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	if len(password) == 0 {
		return "", fmt.Errorf("password cannot be empty")
	}

	fmt.Print("Confirm password: ")
	confirm, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read confirmation: %w", err)
	}

	if string(password) != string(confirm) {
		return "", fmt.Errorf("passwords do not match")
	}

	fmt.Println()
	fmt.Println("✓ Database encryption configured successfully")
	fmt.Println()

	return string(password), nil
}
