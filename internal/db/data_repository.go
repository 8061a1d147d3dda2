package db

import (
	"errors"
	"time"

	"github.com/terraincognita07/ssclab/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DataRepository covers whole-store operations: one-time flags, sample data and reset.
type DataRepository struct {
	database *gorm.DB
}

func NewDataRepository(database *gorm.DB) *DataRepository {
	return &DataRepository{database: database}
}

func (repo *DataRepository) Flag(key string) (string, bool, error) {
	flag := models.AppFlag{}
	err := repo.database.Where("name = ?", key).First(&flag).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return flag.Value, true, nil
}

func (repo *DataRepository) SetFlag(key string, value string) error {
	return setFlag(repo.database, key, value)
}

func setFlag(tx *gorm.DB, key string, value string) error {
	flag := models.AppFlag{Name: key, Value: value, UpdatedAt: time.Now().UTC()}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&flag).Error
}

// InsertSampleData stores the sample set and raises flagKey in one transaction.
func (repo *DataRepository) InsertSampleData(collections []models.WinCollection, experiments []models.Experiment, wins []models.Win, flagKey string) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		return insertSampleData(tx, collections, experiments, wins, flagKey)
	})
}

// ClearAll removes every entity and flag.
func (repo *DataRepository) ClearAll() error {
	return repo.database.Transaction(clearAll)
}

// ReplaceAll clears the store and inserts the sample set in one transaction.
func (repo *DataRepository) ReplaceAll(collections []models.WinCollection, experiments []models.Experiment, wins []models.Win, flagKey string) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := clearAll(tx); err != nil {
			return err
		}
		return insertSampleData(tx, collections, experiments, wins, flagKey)
	})
}

func insertSampleData(tx *gorm.DB, collections []models.WinCollection, experiments []models.Experiment, wins []models.Win, flagKey string) error {
	if len(collections) > 0 {
		if err := tx.Create(&collections).Error; err != nil {
			return err
		}
	}
	if len(experiments) > 0 {
		if err := tx.Create(&experiments).Error; err != nil {
			return err
		}
	}
	if len(wins) > 0 {
		if err := tx.Create(&wins).Error; err != nil {
			return err
		}
	}
	return setFlag(tx, flagKey, "true")
}

func clearAll(tx *gorm.DB) error {
	for _, model := range []any{&models.Win{}, &models.Experiment{}, &models.WinCollection{}, &models.AppFlag{}} {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}
