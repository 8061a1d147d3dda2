package services

import (
	"errors"
	"log/slog"
	"time"

	"github.com/terraincognita07/ssclab/internal/models"
)

type ActivationRepository interface {
	FindByID(id string) (models.Experiment, bool, error)
	FindActive() (models.Experiment, bool, error)
	ActivateExclusive(id string, activatedAt time.Time) error
	Deactivate(id string) error
	Complete(id string) error
}

// ActivationResult describes one transition. Previous is the experiment that lost
// the active slot, if any; callers use it to offer an undo. Reopened marks a
// completed experiment brought back by the activation.
type ActivationResult struct {
	Experiment    models.Experiment  `json:"experiment"`
	Previous      *models.Experiment `json:"previous,omitempty"`
	Activated     bool               `json:"activated"`
	AlreadyActive bool               `json:"already_active,omitempty"`
	Reopened      bool               `json:"reopened,omitempty"`
}

// ActivationService keeps at most one experiment active.
type ActivationService struct {
	experiments ActivationRepository
	logger      *slog.Logger
	now         func() time.Time
}

func NewActivationService(experiments ActivationRepository, logger *slog.Logger) *ActivationService {
	return &ActivationService{
		experiments: experiments,
		logger:      serviceLogger(logger),
		now:         utcNow,
	}
}

// ToggleActive deactivates an active target, otherwise activates it exclusively.
func (service *ActivationService) ToggleActive(id string) (ActivationResult, error) {
	target, err := service.find(id)
	if err != nil {
		return ActivationResult{}, err
	}
	if !target.IsActive {
		return service.activate(target)
	}

	if err := service.experiments.Deactivate(target.ID); err != nil {
		return ActivationResult{}, persistFailure(service.logger, "deactivate_experiment", err)
	}
	target.IsActive = false
	return ActivationResult{Experiment: target}, nil
}

// Activate makes the experiment the only active one, reopening it when completed.
// Activating the already active experiment only refreshes its activation time.
func (service *ActivationService) Activate(id string) (ActivationResult, error) {
	target, err := service.find(id)
	if err != nil {
		return ActivationResult{}, err
	}
	return service.activate(target)
}

// UndoActivation restores the active slot to what it was before result was produced.
func (service *ActivationService) UndoActivation(result ActivationResult) (ActivationResult, error) {
	if !result.Activated {
		return service.Activate(result.Experiment.ID)
	}
	if result.AlreadyActive {
		target, err := service.find(result.Experiment.ID)
		if err != nil {
			return ActivationResult{}, err
		}
		return ActivationResult{Experiment: target, Activated: target.IsActive, AlreadyActive: true}, nil
	}

	if result.Previous != nil {
		restored, err := service.Activate(result.Previous.ID)
		if err == nil {
			if result.Reopened {
				if _, err := service.Complete(result.Experiment.ID); err != nil {
					return ActivationResult{}, err
				}
			}
			return restored, nil
		}
		// A previous experiment deleted meanwhile leaves the slot empty.
		if !errors.Is(err, ErrExperimentNotFound) {
			return ActivationResult{}, err
		}
	}

	if result.Reopened {
		if _, err := service.Complete(result.Experiment.ID); err != nil {
			return ActivationResult{}, err
		}
	} else if err := service.experiments.Deactivate(result.Experiment.ID); err != nil {
		return ActivationResult{}, persistFailure(service.logger, "deactivate_experiment", err)
	}

	target, err := service.find(result.Experiment.ID)
	if err != nil {
		return ActivationResult{}, err
	}
	return ActivationResult{Experiment: target}, nil
}

// Complete retires the experiment. Completion is one-way outside of "do it again".
func (service *ActivationService) Complete(id string) (models.Experiment, error) {
	target, err := service.find(id)
	if err != nil {
		return models.Experiment{}, err
	}
	if err := service.experiments.Complete(target.ID); err != nil {
		return models.Experiment{}, persistFailure(service.logger, "complete_experiment", err)
	}
	target.IsActive = false
	target.IsCompleted = true
	return target, nil
}

func (service *ActivationService) Active() (models.Experiment, bool, error) {
	return service.experiments.FindActive()
}

func (service *ActivationService) activate(target models.Experiment) (ActivationResult, error) {
	current, found, err := service.experiments.FindActive()
	if err != nil {
		return ActivationResult{}, err
	}

	var previous *models.Experiment
	if found && current.ID != target.ID {
		current.IsActive = false
		previous = &current
	}
	alreadyActive := target.IsActive
	reopened := target.IsCompleted

	activatedAt := service.now()
	if err := service.experiments.ActivateExclusive(target.ID, activatedAt); err != nil {
		return ActivationResult{}, persistFailure(service.logger, "activate_experiment", err)
	}
	target.IsActive = true
	target.IsCompleted = false
	target.ActivatedAt = &activatedAt
	return ActivationResult{
		Experiment:    target,
		Previous:      previous,
		Activated:     true,
		AlreadyActive: alreadyActive,
		Reopened:      reopened,
	}, nil
}

func (service *ActivationService) find(id string) (models.Experiment, error) {
	experiment, found, err := service.experiments.FindByID(id)
	if err != nil {
		return models.Experiment{}, err
	}
	if !found {
		return models.Experiment{}, ErrExperimentNotFound
	}
	return experiment, nil
}
