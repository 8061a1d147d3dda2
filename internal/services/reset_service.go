package services

import (
	"log/slog"

	"github.com/terraincognita07/ssclab/internal/models"
	"github.com/terraincognita07/ssclab/internal/seed"
)

type ResetService struct {
	data   SampleDataRepository
	load   func() (seed.Records, error)
	logger *slog.Logger
}

func NewResetService(data SampleDataRepository, logger *slog.Logger) *ResetService {
	return &ResetService{data: data, load: seed.Load, logger: serviceLogger(logger)}
}

// ResetAll wipes every experiment, win, collection and flag. With reseed the
// sample set is written in the same transaction.
func (service *ResetService) ResetAll(reseed bool) error {
	if !reseed {
		if err := service.data.ClearAll(); err != nil {
			return persistFailure(service.logger, "reset_data", err)
		}
		return nil
	}

	records, err := service.load()
	if err != nil {
		return err
	}
	if err := service.data.ReplaceAll(records.Collections, records.Experiments, records.Wins, models.FlagSampleDataSeeded); err != nil {
		return persistFailure(service.logger, "reset_data", err)
	}
	return nil
}
