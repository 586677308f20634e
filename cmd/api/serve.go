package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/joshua-takyi/meetapp/internal/connect"
	"github.com/joshua-takyi/meetapp/internal/container"
	"github.com/joshua-takyi/meetapp/internal/helpers"
	"github.com/joshua-takyi/meetapp/internal/routes"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	logger.Info("Starting Meetapp API server", "environment", cfg.Environment, "driver", cfg.DBDriver)

	repo, closeRepo, err := openRepo(cfg, logger)
	if err != nil {
		return err
	}
	defer closeRepo()

	var tokens *helpers.TokenValidator
	if cfg.JWKSURL != "" {
		tokens, err = helpers.NewJWKSValidator(ctx, cfg.JWKSURL)
	} else {
		tokens, err = helpers.NewSecretValidator(cfg.JWTSecret)
	}
	if err != nil {
		return err
	}
	defer tokens.Close()

	var assets helpers.AssetURLBuilder = helpers.StaticAssets{BaseURL: cfg.AppURL}
	if cfg.HasCloudinary() {
		cld, err := connect.CloudinaryCredentials(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
		if err != nil {
			return err
		}
		assets = helpers.NewCloudinaryAssets(cld, helpers.StaticAssets{BaseURL: cfg.AppURL}, logger)
		logger.Info("Cloudinary banner urls enabled")
	}

	// Initialize dependency container
	appContainer := container.NewContainer(cfg, logger, repo, assets, tokens)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      routes.SetupRoutes(appContainer),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	logger.Info("Server is shutting down...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exited")
	return nil
}
