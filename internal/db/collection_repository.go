package db

import (
	"errors"
	"time"

	"github.com/terraincognita07/ssclab/internal/models"
	"gorm.io/gorm"
)

type CollectionRepository struct {
	database *gorm.DB
}

func NewCollectionRepository(database *gorm.DB) *CollectionRepository {
	return &CollectionRepository{database: database}
}

func (repo *CollectionRepository) ListWithCounts() ([]models.CollectionSummary, error) {
	rows := make([]models.CollectionSummary, 0)
	if err := repo.database.
		Table("win_collections").
		Select("win_collections.*, COUNT(wins.id) AS win_count").
		Joins("LEFT JOIN wins ON wins.collection_id = win_collections.id").
		Group("win_collections.id").
		Order("win_collections.last_modified DESC, win_collections.name ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (repo *CollectionRepository) FindByID(id string) (models.WinCollection, bool, error) {
	collection := models.WinCollection{}
	err := repo.database.Where("id = ?", id).First(&collection).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.WinCollection{}, false, nil
	}
	if err != nil {
		return models.WinCollection{}, false, err
	}
	return collection, true, nil
}

// ExistsByNormalizedName compares case-folded name keys; excludeID skips the collection being renamed.
func (repo *CollectionRepository) ExistsByNormalizedName(name string, excludeID string) (bool, error) {
	var matched int64
	query := repo.database.Model(&models.WinCollection{}).
		Where("name_key = ?", models.CollectionNameKey(name))
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

func (repo *CollectionRepository) Create(collection *models.WinCollection) error {
	return translateNameConflict(repo.database.Create(collection).Error)
}

func (repo *CollectionRepository) Rename(id string, name string, modifiedAt time.Time) error {
	result := repo.database.Model(&models.WinCollection{}).Where("id = ?", id).Updates(map[string]any{
		"name":          name,
		"name_key":      models.CollectionNameKey(name),
		"last_modified": modifiedAt,
	})
	if result.Error != nil {
		return translateNameConflict(result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteDetachingWins moves the collection's wins to uncategorized, deletes it and
// returns the ids of the detached wins.
func (repo *CollectionRepository) DeleteDetachingWins(id string) ([]string, error) {
	detached := make([]string, 0)
	err := repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Win{}).Where("collection_id = ?", id).Pluck("id", &detached).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Win{}).Where("collection_id = ?", id).Update("collection_id", nil).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&models.WinCollection{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return detached, nil
}

// RestoreWithWins re-creates a collection and re-attaches the wins that still
// exist and are still uncategorized.
func (repo *CollectionRepository) RestoreWithWins(collection *models.WinCollection, winIDs []string) error {
	return translateNameConflict(repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(collection).Error; err != nil {
			return err
		}
		if len(winIDs) == 0 {
			return nil
		}
		return tx.Model(&models.Win{}).
			Where("id IN ? AND collection_id IS NULL", winIDs).
			Update("collection_id", collection.ID).Error
	}))
}

func translateNameConflict(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return models.ErrCollectionNameTaken
	}
	return err
}

// rekeyCollectionNames recomputes name keys that SQL lower() could only fold for ASCII.
// A row whose folded key is already owned keeps its previous key.
func rekeyCollectionNames(database *gorm.DB) error {
	collections := make([]models.WinCollection, 0)
	if err := database.Select("id", "name", "name_key").Find(&collections).Error; err != nil {
		return err
	}
	for _, collection := range collections {
		key := models.CollectionNameKey(collection.Name)
		if key == collection.NameKey {
			continue
		}
		if err := database.Exec(
			`UPDATE win_collections SET name_key = ? WHERE id = ? AND NOT EXISTS (SELECT 1 FROM win_collections WHERE name_key = ?)`,
			key, collection.ID, key,
		).Error; err != nil {
			return err
		}
	}
	return nil
}
