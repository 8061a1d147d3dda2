package services

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/terraincognita07/ssclab/internal/badges"
	"github.com/terraincognita07/ssclab/internal/models"
)

var ErrWinNotFound = errors.New("win not found")

type WinRepository interface {
	ListAll() ([]models.Win, error)
	ListUncategorized() ([]models.Win, error)
	ListByCollection(collectionID string) ([]models.Win, error)
	FindByID(id string) (models.Win, bool, error)
	Create(win *models.Win) error
	CreateForExperiment(win *models.Win, experimentID string) error
	Save(win *models.Win, modifiedAt time.Time) error
	Move(id string, collectionID *string, movedAt time.Time) error
	Restore(win *models.Win) error
	Delete(id string) error
}

type WinExperimentLookup interface {
	FindByID(id string) (models.Experiment, bool, error)
}

type WinCollectionLookup interface {
	FindByID(id string) (models.WinCollection, bool, error)
}

type WinService struct {
	wins        WinRepository
	experiments WinExperimentLookup
	collections WinCollectionLookup
	logger      *slog.Logger
	now         func() time.Time
}

func NewWinService(wins WinRepository, experiments WinExperimentLookup, collections WinCollectionLookup, logger *slog.Logger) *WinService {
	return &WinService{
		wins:        wins,
		experiments: experiments,
		collections: collections,
		logger:      serviceLogger(logger),
		now:         utcNow,
	}
}

// LogFromExperiment records a win for the experiment and completes it in one save.
// Empty title and badge slots are taken from the experiment.
func (service *WinService) LogFromExperiment(experimentID string, input WinInput) (models.Win, error) {
	experiment, found, err := service.experiments.FindByID(experimentID)
	if err != nil {
		return models.Win{}, err
	}
	if !found {
		return models.Win{}, ErrExperimentNotFound
	}

	if strings.TrimSpace(input.Title) == "" {
		input.Title = experiment.Title
	}
	environment, tools, timeframe, logType := badges.BadgeIconsFor(experiment)
	input.BadgeIcon1 = firstNonBlank(input.BadgeIcon1, environment)
	input.BadgeIcon2 = firstNonBlank(input.BadgeIcon2, tools)
	input.BadgeIcon3 = firstNonBlank(input.BadgeIcon3, timeframe)
	input.LogTypeIcon = firstNonBlank(input.LogTypeIcon, logType)
	if input.IconOverride == nil && experiment.Icon != "" {
		input.IconOverride = models.StringPtr(experiment.Icon)
	}

	win, err := service.buildWin(input)
	if err != nil {
		return models.Win{}, err
	}
	win.ActivityID = models.StringPtr(experiment.ActivityID)

	if err := service.wins.CreateForExperiment(&win, experiment.ID); err != nil {
		return models.Win{}, persistFailure(service.logger, "log_win", err)
	}
	return win, nil
}

// LogStandalone records a win that belongs to no experiment.
func (service *WinService) LogStandalone(input WinInput) (models.Win, error) {
	win, err := service.buildWin(input)
	if err != nil {
		return models.Win{}, err
	}
	if err := service.wins.Create(&win); err != nil {
		return models.Win{}, persistFailure(service.logger, "log_win", err)
	}
	return win, nil
}

// Update edits a win in place. A nil image keeps the stored one.
func (service *WinService) Update(id string, input WinInput) (models.Win, error) {
	win, err := service.Find(id)
	if err != nil {
		return models.Win{}, err
	}
	normalized, err := NormalizeWinInput(input)
	if err != nil {
		return models.Win{}, err
	}
	if err := service.requireCollection(normalized.CollectionID); err != nil {
		return models.Win{}, err
	}

	win.Title = normalized.Title
	if normalized.ImageData != nil {
		win.ImageData = normalized.ImageData
	}
	if !normalized.LoggedDate.IsZero() {
		win.LoggedDate = normalized.LoggedDate.UTC()
	}
	win.BadgeIcon1 = normalized.BadgeIcon1
	win.BadgeIcon2 = normalized.BadgeIcon2
	win.BadgeIcon3 = normalized.BadgeIcon3
	win.LogTypeIcon = normalized.LogTypeIcon
	win.IconOverride = normalized.IconOverride
	win.Notes = normalized.Notes
	win.CollectionID = normalized.CollectionID

	if err := service.wins.Save(&win, service.now()); err != nil {
		return models.Win{}, persistFailure(service.logger, "update_win", err)
	}
	return win, nil
}

// Move reassigns the win; a nil collection means uncategorized.
func (service *WinService) Move(id string, collectionID *string) (models.Win, error) {
	win, err := service.Find(id)
	if err != nil {
		return models.Win{}, err
	}
	collectionID = trimmedOrNil(collectionID)
	if err := service.requireCollection(collectionID); err != nil {
		return models.Win{}, err
	}

	if err := service.wins.Move(win.ID, collectionID, service.now()); err != nil {
		return models.Win{}, persistFailure(service.logger, "move_win", err)
	}
	win.CollectionID = collectionID
	return win, nil
}

func (service *WinService) Find(id string) (models.Win, error) {
	win, found, err := service.wins.FindByID(id)
	if err != nil {
		return models.Win{}, err
	}
	if !found {
		return models.Win{}, ErrWinNotFound
	}
	return win, nil
}

// List returns the wins in scope matching the criteria. Scope is "all",
// "uncategorized" or a collection id.
func (service *WinService) List(scope string, criteria badges.Criteria) ([]models.Win, error) {
	wins, err := service.listScope(scope)
	if err != nil {
		return nil, err
	}
	if criteria.IsEmpty() {
		return wins, nil
	}

	matched := make([]models.Win, 0, len(wins))
	for _, win := range wins {
		if badges.MatchWin(criteria, win) {
			matched = append(matched, win)
		}
	}
	return matched, nil
}

// Grouped returns one representative per activity among the visible wins. Counts
// cover every win of the activity, not only the visible ones.
func (service *WinService) Grouped(scope string, criteria badges.Criteria) ([]RepeatGroup, error) {
	visible, err := service.List(scope, criteria)
	if err != nil {
		return nil, err
	}
	all, err := service.wins.ListAll()
	if err != nil {
		return nil, err
	}

	groups := Representatives(visible)
	for index := range groups {
		groups[index].Count = RepeatCount(groups[index].Win, all)
	}
	return groups, nil
}

func (service *WinService) Delete(id string) (Deleted[models.Win], error) {
	win, err := service.Find(id)
	if err != nil {
		return Deleted[models.Win]{}, err
	}
	if err := service.wins.Delete(win.ID); err != nil {
		return Deleted[models.Win]{}, persistFailure(service.logger, "delete_win", err)
	}

	return Deleted[models.Win]{
		Snapshot: win,
		Restore: func() (models.Win, error) {
			restored := win.CopyForRestore()
			if err := service.wins.Restore(&restored); err != nil {
				return models.Win{}, persistFailure(service.logger, "restore_win", err)
			}
			return restored, nil
		},
	}, nil
}

func (service *WinService) buildWin(input WinInput) (models.Win, error) {
	normalized, err := NormalizeWinInput(input)
	if err != nil {
		return models.Win{}, err
	}
	if err := service.requireCollection(normalized.CollectionID); err != nil {
		return models.Win{}, err
	}

	now := service.now()
	loggedDate := normalized.LoggedDate.UTC()
	if normalized.LoggedDate.IsZero() {
		loggedDate = now
	}
	return models.Win{
		Title:        normalized.Title,
		ImageData:    normalized.ImageData,
		CreatedAt:    now,
		LoggedDate:   loggedDate,
		BadgeIcon1:   normalized.BadgeIcon1,
		BadgeIcon2:   normalized.BadgeIcon2,
		BadgeIcon3:   normalized.BadgeIcon3,
		LogTypeIcon:  normalized.LogTypeIcon,
		IconOverride: normalized.IconOverride,
		Notes:        normalized.Notes,
		CollectionID: normalized.CollectionID,
	}, nil
}

func (service *WinService) listScope(scope string) ([]models.Win, error) {
	switch scope = strings.TrimSpace(scope); strings.ToLower(scope) {
	case "", models.CollectionScopeAll:
		return service.wins.ListAll()
	case models.CollectionScopeUncategorized:
		return service.wins.ListUncategorized()
	}
	if err := service.requireCollection(&scope); err != nil {
		return nil, err
	}
	return service.wins.ListByCollection(scope)
}

func (service *WinService) requireCollection(collectionID *string) error {
	if collectionID == nil {
		return nil
	}
	_, found, err := service.collections.FindByID(*collectionID)
	if err != nil {
		return err
	}
	if !found {
		return ErrCollectionNotFound
	}
	return nil
}

func firstNonBlank(value string, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}
