package services

import (
	"errors"
	"log/slog"
	"time"

	"github.com/terraincognita07/ssclab/internal/models"
)

var ErrCollectionNotFound = errors.New("collection not found")

type CollectionRepository interface {
	ListWithCounts() ([]models.CollectionSummary, error)
	FindByID(id string) (models.WinCollection, bool, error)
	ExistsByNormalizedName(name string, excludeID string) (bool, error)
	Create(collection *models.WinCollection) error
	Rename(id string, name string, modifiedAt time.Time) error
	DeleteDetachingWins(id string) ([]string, error)
	RestoreWithWins(collection *models.WinCollection, winIDs []string) error
}

type CollectionService struct {
	collections CollectionRepository
	logger      *slog.Logger
	now         func() time.Time
}

func NewCollectionService(collections CollectionRepository, logger *slog.Logger) *CollectionService {
	return &CollectionService{
		collections: collections,
		logger:      serviceLogger(logger),
		now:         utcNow,
	}
}

func (service *CollectionService) Create(rawName string) (models.WinCollection, error) {
	name, err := service.availableName(rawName, "")
	if err != nil {
		return models.WinCollection{}, err
	}

	now := service.now()
	collection := models.WinCollection{Name: name, CreatedAt: now, LastModified: now}
	if err := service.collections.Create(&collection); err != nil {
		return models.WinCollection{}, collectionWriteFailure(service.logger, "create_collection", err)
	}
	return collection, nil
}

func (service *CollectionService) Rename(id string, rawName string) (models.WinCollection, error) {
	collection, err := service.Find(id)
	if err != nil {
		return models.WinCollection{}, err
	}
	name, err := service.availableName(rawName, collection.ID)
	if err != nil {
		return models.WinCollection{}, err
	}

	modifiedAt := service.now()
	if err := service.collections.Rename(collection.ID, name, modifiedAt); err != nil {
		return models.WinCollection{}, collectionWriteFailure(service.logger, "rename_collection", err)
	}
	collection.Name = name
	collection.LastModified = modifiedAt
	return collection, nil
}

func (service *CollectionService) Find(id string) (models.WinCollection, error) {
	collection, found, err := service.collections.FindByID(id)
	if err != nil {
		return models.WinCollection{}, err
	}
	if !found {
		return models.WinCollection{}, ErrCollectionNotFound
	}
	return collection, nil
}

func (service *CollectionService) List() ([]models.CollectionSummary, error) {
	return service.collections.ListWithCounts()
}

// Delete removes the collection and moves its wins to uncategorized. Restore
// re-creates it and re-attaches the same wins.
func (service *CollectionService) Delete(id string) (Deleted[models.WinCollection], error) {
	collection, err := service.Find(id)
	if err != nil {
		return Deleted[models.WinCollection]{}, err
	}
	detached, err := service.collections.DeleteDetachingWins(collection.ID)
	if err != nil {
		return Deleted[models.WinCollection]{}, persistFailure(service.logger, "delete_collection", err)
	}

	return Deleted[models.WinCollection]{
		Snapshot: collection,
		Restore: func() (models.WinCollection, error) {
			taken, err := service.collections.ExistsByNormalizedName(collection.Name, "")
			if err != nil {
				return models.WinCollection{}, err
			}
			if taken {
				return models.WinCollection{}, ErrDuplicateCollectionName
			}

			restored := collection
			restored.ID = ""
			if err := service.collections.RestoreWithWins(&restored, detached); err != nil {
				return models.WinCollection{}, collectionWriteFailure(service.logger, "restore_collection", err)
			}
			return restored, nil
		},
	}, nil
}

// collectionWriteFailure reports a lost race on the name key as a duplicate name.
func collectionWriteFailure(logger *slog.Logger, operation string, err error) error {
	if errors.Is(err, models.ErrCollectionNameTaken) {
		return ErrDuplicateCollectionName
	}
	return persistFailure(logger, operation, err)
}

func (service *CollectionService) availableName(rawName string, excludeID string) (string, error) {
	name, err := NormalizeCollectionName(rawName)
	if err != nil {
		return "", err
	}
	taken, err := service.collections.ExistsByNormalizedName(name, excludeID)
	if err != nil {
		return "", err
	}
	if taken {
		return "", ErrDuplicateCollectionName
	}
	return name, nil
}
