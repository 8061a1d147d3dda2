package services

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/terraincognita07/ssclab/internal/db"
	"gorm.io/gorm"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func openServiceTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "ssclab.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close(database)
	})
	return database
}

type serviceSet struct {
	repos       *db.Repositories
	experiments *ExperimentService
	activation  *ActivationService
	repeats     *RepeatService
	wins        *WinService
	collections *CollectionService
	seed        *SeedService
	reset       *ResetService
}

func newServiceSet(t *testing.T) serviceSet {
	t.Helper()

	repos := db.NewRepositories(openServiceTestDatabase(t))
	logger := discardLogger()
	activation := NewActivationService(repos.Experiments, logger)
	return serviceSet{
		repos:       repos,
		experiments: NewExperimentService(repos.Experiments, logger),
		activation:  activation,
		repeats:     NewRepeatService(repos.Experiments, repos.Wins, activation, logger),
		wins:        NewWinService(repos.Wins, repos.Experiments, repos.Collections, logger),
		collections: NewCollectionService(repos.Collections, logger),
		seed:        NewSeedService(repos.Data, logger),
		reset:       NewResetService(repos.Data, logger),
	}
}
