package db

import (
	"errors"
	"time"

	"github.com/terraincognita07/ssclab/internal/models"
	"gorm.io/gorm"
)

const winListOrder = "logged_date DESC, created_at DESC, id ASC"

type WinRepository struct {
	database *gorm.DB
}

func NewWinRepository(database *gorm.DB) *WinRepository {
	return &WinRepository{database: database}
}

func (repo *WinRepository) ListAll() ([]models.Win, error) {
	return repo.list(repo.database)
}

func (repo *WinRepository) ListUncategorized() ([]models.Win, error) {
	return repo.list(repo.database.Where("collection_id IS NULL"))
}

func (repo *WinRepository) ListByCollection(collectionID string) ([]models.Win, error) {
	return repo.list(repo.database.Where("collection_id = ?", collectionID))
}

func (repo *WinRepository) ListByActivityID(activityID string) ([]models.Win, error) {
	return repo.list(repo.database.Where("activity_id = ?", activityID))
}

func (repo *WinRepository) list(query *gorm.DB) ([]models.Win, error) {
	wins := make([]models.Win, 0)
	if err := query.Order(winListOrder).Find(&wins).Error; err != nil {
		return nil, err
	}
	return wins, nil
}

func (repo *WinRepository) FindByID(id string) (models.Win, bool, error) {
	win := models.Win{}
	err := repo.database.Where("id = ?", id).First(&win).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Win{}, false, nil
	}
	if err != nil {
		return models.Win{}, false, err
	}
	return win, true, nil
}

// Create stores a win and bumps its collection's last_modified.
func (repo *WinRepository) Create(win *models.Win) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(win).Error; err != nil {
			return err
		}
		return touchCollection(tx, win.CollectionID, win.CreatedAt)
	})
}

// CreateForExperiment stores a win logged from an experiment and completes the experiment.
func (repo *WinRepository) CreateForExperiment(win *models.Win, experimentID string) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(win).Error; err != nil {
			return err
		}
		result := tx.Model(&models.Experiment{}).Where("id = ?", experimentID).Updates(map[string]any{
			"is_active":    false,
			"is_completed": true,
		})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return touchCollection(tx, win.CollectionID, win.CreatedAt)
	})
}

func (repo *WinRepository) Save(win *models.Win, modifiedAt time.Time) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(win).Error; err != nil {
			return err
		}
		return touchCollection(tx, win.CollectionID, modifiedAt)
	})
}

func (repo *WinRepository) Move(id string, collectionID *string, movedAt time.Time) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Win{}).Where("id = ?", id).Update("collection_id", collectionID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return touchCollection(tx, collectionID, movedAt)
	})
}

// Restore re-inserts a deleted win, falling back to uncategorized when its collection is gone.
func (repo *WinRepository) Restore(win *models.Win) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if win.CollectionID != nil {
			var count int64
			if err := tx.Model(&models.WinCollection{}).Where("id = ?", *win.CollectionID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				win.CollectionID = nil
			}
		}
		if err := tx.Create(win).Error; err != nil {
			return err
		}
		return touchCollection(tx, win.CollectionID, time.Now().UTC())
	})
}

func (repo *WinRepository) Delete(id string) error {
	result := repo.database.Where("id = ?", id).Delete(&models.Win{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func touchCollection(tx *gorm.DB, collectionID *string, modifiedAt time.Time) error {
	if collectionID == nil {
		return nil
	}
	if modifiedAt.IsZero() {
		modifiedAt = time.Now().UTC()
	}
	return tx.Model(&models.WinCollection{}).
		Where("id = ?", *collectionID).
		Update("last_modified", modifiedAt).Error
}
