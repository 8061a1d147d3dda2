package services

import (
	"log/slog"
	"sort"

	"github.com/google/uuid"
	"github.com/terraincognita07/ssclab/internal/badges"
	"github.com/terraincognita07/ssclab/internal/models"
)

// NextStep tells the caller where to go after a transition.
type NextStep string

const NextStepLogWin NextStep = "log_win"

type RepeatExperimentRepository interface {
	FindByActivityID(activityID string) (models.Experiment, bool, error)
	FindByTitle(title string) (models.Experiment, bool, error)
	CreateLinkedToWin(experiment *models.Experiment, winID string, backfillWin bool) error
}

type RepeatWinRepository interface {
	FindByID(id string) (models.Win, bool, error)
	ListByActivityID(activityID string) ([]models.Win, error)
}

type AgainResult struct {
	ActivationResult
	Synthesized bool     `json:"synthesized"`
	NextStep    NextStep `json:"next_step"`
}

// RepeatGroup is the representative win of one activity with its repeat count.
type RepeatGroup struct {
	Win   models.Win `json:"win"`
	Count int        `json:"count"`
}

type RepeatService struct {
	experiments RepeatExperimentRepository
	wins        RepeatWinRepository
	activation  *ActivationService
	logger      *slog.Logger
}

func NewRepeatService(experiments RepeatExperimentRepository, wins RepeatWinRepository, activation *ActivationService, logger *slog.Logger) *RepeatService {
	return &RepeatService{
		experiments: experiments,
		wins:        wins,
		activation:  activation,
		logger:      serviceLogger(logger),
	}
}

// Resolve finds the experiment a win came from: by activity id, then by exact
// title, else a new experiment is built from the win's badges and stored. The
// boolean reports whether the experiment was synthesized.
func (service *RepeatService) Resolve(win models.Win) (models.Experiment, bool, error) {
	hasActivity := win.ActivityID != nil && *win.ActivityID != ""
	if hasActivity {
		experiment, found, err := service.experiments.FindByActivityID(*win.ActivityID)
		if err != nil {
			return models.Experiment{}, false, err
		}
		if found {
			return experiment, false, nil
		}
	}

	experiment, found, err := service.experiments.FindByTitle(win.Title)
	if err != nil {
		return models.Experiment{}, false, err
	}
	if found {
		return experiment, false, nil
	}

	synthesized := SynthesizeExperiment(win)
	if !hasActivity {
		synthesized.ActivityID = uuid.NewString()
	}
	if err := service.experiments.CreateLinkedToWin(&synthesized, win.ID, !hasActivity); err != nil {
		return models.Experiment{}, false, persistFailure(service.logger, "synthesize_experiment", err)
	}
	return synthesized, true, nil
}

// DoItAgain re-activates the experiment behind a win so the user can log it again.
func (service *RepeatService) DoItAgain(winID string) (AgainResult, error) {
	win, found, err := service.wins.FindByID(winID)
	if err != nil {
		return AgainResult{}, err
	}
	if !found {
		return AgainResult{}, ErrWinNotFound
	}

	experiment, synthesized, err := service.Resolve(win)
	if err != nil {
		return AgainResult{}, err
	}
	result, err := service.activation.Activate(experiment.ID)
	if err != nil {
		return AgainResult{}, err
	}
	return AgainResult{ActivationResult: result, Synthesized: synthesized, NextStep: NextStepLogWin}, nil
}

// CountFor returns how many wins share the win's activity.
func (service *RepeatService) CountFor(winID string) (int, error) {
	win, found, err := service.wins.FindByID(winID)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, ErrWinNotFound
	}
	if win.ActivityID == nil || *win.ActivityID == "" {
		return 1, nil
	}
	repeats, err := service.wins.ListByActivityID(*win.ActivityID)
	if err != nil {
		return 0, err
	}
	return RepeatCount(win, repeats), nil
}

// SynthesizeExperiment rebuilds an experiment from a win's stored badge icons.
func SynthesizeExperiment(win models.Win) models.Experiment {
	icons := win.BadgeIcons()
	icon := models.DefaultExperimentIcon
	if win.IconOverride != nil && *win.IconOverride != "" {
		icon = *win.IconOverride
	}

	experiment := models.Experiment{
		Title:       win.Title,
		Icon:        icon,
		Environment: badges.EnvironmentFromIcons(icons...),
		Tools:       badges.ToolsFromIcons(icons...),
		Timeframe:   badges.TimeframeFromIcons(icons...),
		LogType:     badges.LogTypeFromIcons(icons...),
		Notes:       win.Notes,
	}
	if win.ActivityID != nil {
		experiment.ActivityID = *win.ActivityID
	}
	return experiment
}

// RepeatCount counts wins sharing win's activity id. Wins without one count once.
func RepeatCount(win models.Win, wins []models.Win) int {
	if win.ActivityID == nil || *win.ActivityID == "" {
		return 1
	}
	count := 0
	for _, candidate := range wins {
		if candidate.ActivityID != nil && *candidate.ActivityID == *win.ActivityID {
			count++
		}
	}
	if count == 0 {
		return 1
	}
	return count
}

// Representatives collapses repeats to their latest win, newest activity first.
func Representatives(wins []models.Win) []RepeatGroup {
	groups := make([]RepeatGroup, 0, len(wins))
	indexByKey := make(map[string]int, len(wins))

	for _, win := range wins {
		key := "win:" + win.ID
		if win.ActivityID != nil && *win.ActivityID != "" {
			key = "activity:" + *win.ActivityID
		}

		index, seen := indexByKey[key]
		if !seen {
			indexByKey[key] = len(groups)
			groups = append(groups, RepeatGroup{Win: win, Count: 1})
			continue
		}
		groups[index].Count++
		if winIsLater(win, groups[index].Win) {
			groups[index].Win = win
		}
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return winIsLater(groups[i].Win, groups[j].Win)
	})
	return groups
}

func winIsLater(candidate models.Win, current models.Win) bool {
	if !candidate.LoggedDate.Equal(current.LoggedDate) {
		return candidate.LoggedDate.After(current.LoggedDate)
	}
	if !candidate.CreatedAt.Equal(current.CreatedAt) {
		return candidate.CreatedAt.After(current.CreatedAt)
	}
	return candidate.ID > current.ID
}
