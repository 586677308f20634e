package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/joshua-takyi/meetapp/internal/config"
	"github.com/joshua-takyi/meetapp/internal/connect"
	"github.com/joshua-takyi/meetapp/internal/models"
)

var rootCmd = &cobra.Command{
	Use:           "meetapp",
	Short:         "Meetup organizing API",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

func main() {
	// Load environment variables
	_ = godotenv.Load(".env.local")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	rootCmd.AddCommand(serveCmd, migrateCmd)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func setupLogger(cfg *config.Config) *slog.Logger {
	var handler slog.Handler

	level := parseLevel(cfg.LogLevel)
	switch {
	case cfg.IsProduction():
		// JSON logging for production
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	case cfg.IsDevelopment():
		// Human-readable logging for development
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	default:
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}

	return slog.New(handler)
}

func parseLevel(raw string) slog.Level {
	switch strings.ToLower(raw) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// openRepo connects the store selected by DB_DRIVER. The returned func
// releases the connection.
func openRepo(cfg *config.Config, logger *slog.Logger) (models.MeetupRepo, func(), error) {
	switch cfg.DBDriver {
	case config.DriverMongo:
		client, err := connect.MongoDBConnect(cfg.MongoDBURI, cfg.MongoDBPassword)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Connected to MongoDB successfully", "database", cfg.MongoDBDatabase)
		closeFn := func() {
			if err := connect.MongoDBDisconnect(client); err != nil {
				logger.Error("Error disconnecting from MongoDB", "error", err)
			}
		}
		return models.MongodbNewRepo(client, cfg.MongoDBDatabase), closeFn, nil
	default:
		db, err := connect.GormConnect(cfg.DBDriver, cfg.DatabaseURL, logger.Handler())
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Connected to database successfully", "driver", cfg.DBDriver)
		closeFn := func() {
			if err := connect.GormDisconnect(db); err != nil {
				logger.Error("Error closing database", "error", err)
			}
		}
		return models.GormNewRepo(logger, db), closeFn, nil
	}
}

func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, setupLogger(cfg), nil
}
