package container

import (
	"log/slog"

	"github.com/joshua-takyi/meetapp/internal/config"
	"github.com/joshua-takyi/meetapp/internal/helpers"
	"github.com/joshua-takyi/meetapp/internal/models"
	"github.com/joshua-takyi/meetapp/internal/services"
)

// Container holds all application dependencies
type Container struct {
	Config        *config.Config
	Logger        *slog.Logger
	MeetupRepo    models.MeetupRepo
	Tokens        *helpers.TokenValidator
	MeetupService *services.MeetupService
}

// NewContainer creates a new dependency injection container
func NewContainer(
	cfg *config.Config,
	logger *slog.Logger,
	repo models.MeetupRepo,
	assets helpers.AssetURLBuilder,
	tokens *helpers.TokenValidator,
) *Container {
	return &Container{
		Config:        cfg,
		Logger:        logger,
		MeetupRepo:    repo,
		Tokens:        tokens,
		MeetupService: services.NewMeetupService(repo, assets, logger),
	}
}
