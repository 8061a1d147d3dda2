package api

import (
	"log/slog"

	"github.com/terraincognita07/ssclab/internal/db"
	"github.com/terraincognita07/ssclab/internal/services"
	"gorm.io/gorm"
)

// Services is the set of domain services a handler serves.
type Services struct {
	Experiments *services.ExperimentService
	Activation  *services.ActivationService
	Repeats     *services.RepeatService
	Wins        *services.WinService
	Collections *services.CollectionService
	Seed        *services.SeedService
	Reset       *services.ResetService
	Export      *services.ExportService
}

func NewServices(database *gorm.DB, logger *slog.Logger) *Services {
	repositories := db.NewRepositories(database)
	activation := services.NewActivationService(repositories.Experiments, logger)

	wins := services.NewWinService(repositories.Wins, repositories.Experiments, repositories.Collections, logger)
	collections := services.NewCollectionService(repositories.Collections, logger)

	return &Services{
		Experiments: services.NewExperimentService(repositories.Experiments, logger),
		Activation:  activation,
		Repeats:     services.NewRepeatService(repositories.Experiments, repositories.Wins, activation, logger),
		Wins:        wins,
		Collections: collections,
		Seed:        services.NewSeedService(repositories.Data, logger),
		Reset:       services.NewResetService(repositories.Data, logger),
		Export:      services.NewExportService(wins, collections),
	}
}
