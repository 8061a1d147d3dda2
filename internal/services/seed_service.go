package services

import (
	"log/slog"

	"github.com/terraincognita07/ssclab/internal/models"
	"github.com/terraincognita07/ssclab/internal/seed"
)

type SampleDataRepository interface {
	Flag(key string) (string, bool, error)
	InsertSampleData(collections []models.WinCollection, experiments []models.Experiment, wins []models.Win, flagKey string) error
	ReplaceAll(collections []models.WinCollection, experiments []models.Experiment, wins []models.Win, flagKey string) error
	ClearAll() error
}

// SeedService populates the store with demo data on first launch.
type SeedService struct {
	data   SampleDataRepository
	load   func() (seed.Records, error)
	logger *slog.Logger
}

func NewSeedService(data SampleDataRepository, logger *slog.Logger) *SeedService {
	return &SeedService{data: data, load: seed.Load, logger: serviceLogger(logger)}
}

// SeedIfFirstLaunch inserts the sample set unless it was inserted before.
// It reports whether anything was written.
func (service *SeedService) SeedIfFirstLaunch() (bool, error) {
	_, seeded, err := service.data.Flag(models.FlagSampleDataSeeded)
	if err != nil {
		return false, err
	}
	if seeded {
		return false, nil
	}

	records, err := service.load()
	if err != nil {
		return false, err
	}
	if err := service.data.InsertSampleData(records.Collections, records.Experiments, records.Wins, models.FlagSampleDataSeeded); err != nil {
		return false, persistFailure(service.logger, "seed_sample_data", err)
	}
	service.logger.Info("sample data seeded",
		slog.Int("collections", len(records.Collections)),
		slog.Int("experiments", len(records.Experiments)),
		slog.Int("wins", len(records.Wins)),
	)
	return true, nil
}
