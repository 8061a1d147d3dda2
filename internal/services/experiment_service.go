package services

import (
	"errors"
	"log/slog"
	"time"

	"github.com/terraincognita07/ssclab/internal/badges"
	"github.com/terraincognita07/ssclab/internal/models"
)

var ErrExperimentNotFound = errors.New("experiment not found")

type ExperimentRepository interface {
	ListOpen() ([]models.Experiment, error)
	FindByID(id string) (models.Experiment, bool, error)
	Create(experiment *models.Experiment) error
	Save(experiment *models.Experiment) error
	Restore(experiment *models.Experiment) error
	Delete(id string) error
}

type ExperimentService struct {
	experiments ExperimentRepository
	logger      *slog.Logger
	now         func() time.Time
}

func NewExperimentService(experiments ExperimentRepository, logger *slog.Logger) *ExperimentService {
	return &ExperimentService{
		experiments: experiments,
		logger:      serviceLogger(logger),
		now:         utcNow,
	}
}

func (service *ExperimentService) Create(input ExperimentInput) (models.Experiment, error) {
	normalized, err := NormalizeExperimentInput(input)
	if err != nil {
		return models.Experiment{}, err
	}

	experiment := models.Experiment{CreatedAt: service.now()}
	applyExperimentInput(&experiment, normalized)
	if err := service.experiments.Create(&experiment); err != nil {
		return models.Experiment{}, persistFailure(service.logger, "create_experiment", err)
	}
	return experiment, nil
}

// Update replaces the editable fields; identity, activity id and activation state are kept.
func (service *ExperimentService) Update(id string, input ExperimentInput) (models.Experiment, error) {
	experiment, err := service.Find(id)
	if err != nil {
		return models.Experiment{}, err
	}
	normalized, err := NormalizeExperimentInput(input)
	if err != nil {
		return models.Experiment{}, err
	}

	applyExperimentInput(&experiment, normalized)
	if err := service.experiments.Save(&experiment); err != nil {
		return models.Experiment{}, persistFailure(service.logger, "update_experiment", err)
	}
	return experiment, nil
}

func (service *ExperimentService) Find(id string) (models.Experiment, error) {
	experiment, found, err := service.experiments.FindByID(id)
	if err != nil {
		return models.Experiment{}, err
	}
	if !found {
		return models.Experiment{}, ErrExperimentNotFound
	}
	return experiment, nil
}

// List returns open experiments, newest first, that match the criteria.
func (service *ExperimentService) List(criteria badges.Criteria) ([]models.Experiment, error) {
	experiments, err := service.experiments.ListOpen()
	if err != nil {
		return nil, err
	}
	if criteria.IsEmpty() {
		return experiments, nil
	}

	matched := make([]models.Experiment, 0, len(experiments))
	for _, experiment := range experiments {
		if badges.MatchExperiment(criteria, experiment) {
			matched = append(matched, experiment)
		}
	}
	return matched, nil
}

func (service *ExperimentService) Delete(id string) (Deleted[models.Experiment], error) {
	experiment, err := service.Find(id)
	if err != nil {
		return Deleted[models.Experiment]{}, err
	}
	if err := service.experiments.Delete(id); err != nil {
		return Deleted[models.Experiment]{}, persistFailure(service.logger, "delete_experiment", err)
	}

	return Deleted[models.Experiment]{
		Snapshot: experiment,
		Restore: func() (models.Experiment, error) {
			restored := experiment.CopyForRestore()
			if err := service.experiments.Restore(&restored); err != nil {
				return models.Experiment{}, persistFailure(service.logger, "restore_experiment", err)
			}
			return restored, nil
		},
	}, nil
}

func applyExperimentInput(experiment *models.Experiment, input ExperimentInput) {
	experiment.Title = input.Title
	experiment.Icon = input.Icon
	experiment.Environment = input.Environment
	experiment.Tools = input.Tools
	experiment.Timeframe = input.Timeframe
	experiment.LogType = input.LogType
	experiment.ReferenceURL = input.ReferenceURL
	experiment.Notes = input.Notes
}
