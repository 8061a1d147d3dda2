package db

import (
	"errors"
	"time"

	"github.com/terraincognita07/ssclab/internal/models"
	"gorm.io/gorm"
)

type ExperimentRepository struct {
	database *gorm.DB
}

func NewExperimentRepository(database *gorm.DB) *ExperimentRepository {
	return &ExperimentRepository{database: database}
}

// ListOpen returns experiments that are not completed, newest first.
func (repo *ExperimentRepository) ListOpen() ([]models.Experiment, error) {
	experiments := make([]models.Experiment, 0)
	if err := repo.database.
		Where("is_completed = ?", false).
		Order("created_at DESC, id ASC").
		Find(&experiments).Error; err != nil {
		return nil, err
	}
	return experiments, nil
}

func (repo *ExperimentRepository) ListAll() ([]models.Experiment, error) {
	experiments := make([]models.Experiment, 0)
	if err := repo.database.Order("created_at DESC, id ASC").Find(&experiments).Error; err != nil {
		return nil, err
	}
	return experiments, nil
}

func (repo *ExperimentRepository) FindByID(id string) (models.Experiment, bool, error) {
	return repo.findFirst(repo.database.Where("id = ?", id))
}

func (repo *ExperimentRepository) FindActive() (models.Experiment, bool, error) {
	return repo.findFirst(repo.database.Where("is_active = ?", true))
}

// FindByActivityID includes completed experiments so repeats can link back to them.
func (repo *ExperimentRepository) FindByActivityID(activityID string) (models.Experiment, bool, error) {
	return repo.findFirst(repo.database.Where("activity_id = ?", activityID).Order("created_at ASC, id ASC"))
}

// FindByTitle matches the title exactly; the oldest experiment wins when titles repeat.
func (repo *ExperimentRepository) FindByTitle(title string) (models.Experiment, bool, error) {
	return repo.findFirst(repo.database.Where("title = ?", title).Order("created_at ASC, id ASC"))
}

func (repo *ExperimentRepository) findFirst(query *gorm.DB) (models.Experiment, bool, error) {
	experiment := models.Experiment{}
	err := query.First(&experiment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Experiment{}, false, nil
	}
	if err != nil {
		return models.Experiment{}, false, err
	}
	return experiment, true, nil
}

func (repo *ExperimentRepository) Create(experiment *models.Experiment) error {
	return repo.database.Create(experiment).Error
}

func (repo *ExperimentRepository) Save(experiment *models.Experiment) error {
	return repo.database.Save(experiment).Error
}

func (repo *ExperimentRepository) Deactivate(id string) error {
	return repo.database.Model(&models.Experiment{}).Where("id = ?", id).Update("is_active", false).Error
}

// ActivateExclusive clears every other active flag and activates the target in one transaction.
// Activating a completed experiment reopens it.
func (repo *ExperimentRepository) ActivateExclusive(id string, activatedAt time.Time) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Experiment{}).
			Where("is_active = ? AND id <> ?", true, id).
			Update("is_active", false).Error; err != nil {
			return err
		}
		result := tx.Model(&models.Experiment{}).Where("id = ?", id).Updates(map[string]any{
			"is_active":    true,
			"is_completed": false,
			"activated_at": activatedAt,
		})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (repo *ExperimentRepository) Complete(id string) error {
	return repo.database.Model(&models.Experiment{}).Where("id = ?", id).Updates(map[string]any{
		"is_active":    false,
		"is_completed": true,
	}).Error
}

// CreateLinkedToWin persists a synthesized experiment and, when requested, stamps its
// activity id onto the originating win.
func (repo *ExperimentRepository) CreateLinkedToWin(experiment *models.Experiment, winID string, backfillWin bool) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(experiment).Error; err != nil {
			return err
		}
		if !backfillWin {
			return nil
		}
		return tx.Model(&models.Win{}).Where("id = ?", winID).Update("activity_id", experiment.ActivityID).Error
	})
}

// Restore re-inserts a deleted experiment. An active snapshot takes the active slot back.
func (repo *ExperimentRepository) Restore(experiment *models.Experiment) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if experiment.IsActive {
			if err := tx.Model(&models.Experiment{}).
				Where("is_active = ?", true).
				Update("is_active", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(experiment).Error
	})
}

func (repo *ExperimentRepository) Delete(id string) error {
	result := repo.database.Where("id = ?", id).Delete(&models.Experiment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (repo *ExperimentRepository) CountActive() (int64, error) {
	var active int64
	err := repo.database.Model(&models.Experiment{}).Where("is_active = ?", true).Count(&active).Error
	return active, err
}
