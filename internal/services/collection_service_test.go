package services

import (
	"errors"
	"testing"
	"time"

	"github.com/terraincognita07/ssclab/internal/models"
)

// collectionWriteStub misses the name check and fails every write with writeErr.
type collectionWriteStub struct {
	existing models.WinCollection
	writeErr error
}

func (stub *collectionWriteStub) ListWithCounts() ([]models.CollectionSummary, error) {
	return nil, nil
}

func (stub *collectionWriteStub) FindByID(id string) (models.WinCollection, bool, error) {
	if id != stub.existing.ID {
		return models.WinCollection{}, false, nil
	}
	return stub.existing, true, nil
}

func (stub *collectionWriteStub) ExistsByNormalizedName(string, string) (bool, error) {
	return false, nil
}

func (stub *collectionWriteStub) Create(*models.WinCollection) error {
	return stub.writeErr
}

func (stub *collectionWriteStub) Rename(string, string, time.Time) error {
	return stub.writeErr
}

func (stub *collectionWriteStub) DeleteDetachingWins(string) ([]string, error) {
	return nil, nil
}

func (stub *collectionWriteStub) RestoreWithWins(*models.WinCollection, []string) error {
	return stub.writeErr
}

func TestCollectionWritesReportNameConflictsAsDuplicates(t *testing.T) {
	stub := &collectionWriteStub{
		existing: models.WinCollection{ID: "c1", Name: "Reading"},
		writeErr: models.ErrCollectionNameTaken,
	}
	service := NewCollectionService(stub, nil)

	if _, err := service.Create("Спорт"); !errors.Is(err, ErrDuplicateCollectionName) || errors.Is(err, ErrPersistFailed) {
		t.Fatalf("Create() error = %v, want ErrDuplicateCollectionName", err)
	}
	if _, err := service.Rename("c1", "Спорт"); !errors.Is(err, ErrDuplicateCollectionName) {
		t.Fatalf("Rename() error = %v, want ErrDuplicateCollectionName", err)
	}

	deleted, err := service.Delete("c1")
	if err != nil {
		t.Fatalf("Delete() unexpected error: %v", err)
	}
	if _, err := deleted.Restore(); !errors.Is(err, ErrDuplicateCollectionName) {
		t.Fatalf("Restore() error = %v, want ErrDuplicateCollectionName", err)
	}
}

func TestCollectionWriteFailuresStayPersistFailures(t *testing.T) {
	stub := &collectionWriteStub{writeErr: errors.New("disk full")}
	service := NewCollectionService(stub, nil)

	if _, err := service.Create("Reading"); !errors.Is(err, ErrPersistFailed) {
		t.Fatalf("Create() error = %v, want ErrPersistFailed", err)
	}
}
