package services

import (
	"errors"
	"testing"
	"time"

	"github.com/terraincognita07/ssclab/internal/badges"
	"github.com/terraincognita07/ssclab/internal/models"
)

func winAt(id string, activityID *string, logged time.Time) models.Win {
	return models.Win{ID: id, Title: "Win " + id, ActivityID: activityID, LoggedDate: logged, CreatedAt: logged}
}

func TestRepeatCountScenario(t *testing.T) {
	day := time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC)
	w1 := winAt("w1", models.StringPtr("X"), day)
	w2 := winAt("w2", models.StringPtr("X"), day.AddDate(0, 0, 1))
	w3 := winAt("w3", models.StringPtr("Y"), day.AddDate(0, 0, 2))
	standalone := winAt("w4", nil, day)
	wins := []models.Win{w1, w2, w3, standalone}

	if got := RepeatCount(w1, wins); got != 2 {
		t.Fatalf("RepeatCount(w1) = %d, want 2", got)
	}
	if got := RepeatCount(w3, wins); got != 1 {
		t.Fatalf("RepeatCount(w3) = %d, want 1", got)
	}
	if got := RepeatCount(standalone, wins); got != 1 {
		t.Fatalf("RepeatCount(standalone) = %d, want 1", got)
	}

	reversed := []models.Win{standalone, w3, w2, w1}
	if RepeatCount(w1, reversed) != RepeatCount(w1, wins) {
		t.Fatal("expected repeat count to ignore ordering")
	}
}

func TestRepresentativesPickLatestPerActivity(t *testing.T) {
	day := time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC)
	w1 := winAt("w1", models.StringPtr("X"), day)
	w2 := winAt("w2", models.StringPtr("X"), day.AddDate(0, 0, 3))
	w3 := winAt("w3", models.StringPtr("Y"), day.AddDate(0, 0, 1))
	w4 := winAt("w4", nil, day.AddDate(0, 0, 2))
	w5 := winAt("w5", nil, day.AddDate(0, 0, 2))

	groups := Representatives([]models.Win{w1, w3, w4, w2, w5})
	if len(groups) != 4 {
		t.Fatalf("Representatives() returned %d groups, want 4", len(groups))
	}

	wantOrder := []string{"w2", "w5", "w4", "w3"}
	for index, want := range wantOrder {
		if groups[index].Win.ID != want {
			t.Fatalf("group %d = %s, want %s (groups=%#v)", index, groups[index].Win.ID, want, groups)
		}
	}
	if groups[0].Count != 2 {
		t.Fatalf("expected activity X count 2, got %d", groups[0].Count)
	}
}

func TestSynthesizeExperimentReversesBadgeIcons(t *testing.T) {
	win := models.Win{
		ID:           "w1",
		Title:        "Kayak the bay",
		ActivityID:   models.StringPtr("activity-1"),
		BadgeIcon1:   badges.IconOutdoor,
		BadgeIcon2:   badges.IconNoTools,
		BadgeIcon3:   badges.IconFor(badges.Timeframe(models.Timeframe30D)),
		LogTypeIcon:  badges.IconNewInterest,
		IconOverride: models.StringPtr("sailboat.fill"),
	}

	experiment := SynthesizeExperiment(win)
	if experiment.Environment != models.EnvironmentOutdoor || experiment.Tools != models.ToolsNone {
		t.Fatalf("unexpected environment/tools: %#v", experiment)
	}
	if experiment.Timeframe != models.Timeframe30D {
		t.Fatalf("expected timeframe 30D, got %q", experiment.Timeframe)
	}
	if experiment.LogType == nil || *experiment.LogType != models.LogTypeNewInterest {
		t.Fatalf("expected newInterest log type, got %v", experiment.LogType)
	}
	if experiment.ActivityID != "activity-1" || experiment.Icon != "sailboat.fill" || experiment.Title != win.Title {
		t.Fatalf("unexpected identity fields: %#v", experiment)
	}
}

type repeatExperimentStub struct {
	byActivity map[string]models.Experiment
	byTitle    map[string]models.Experiment
	created    []models.Experiment
	backfilled map[string]string
	createErr  error
}

func (stub *repeatExperimentStub) FindByActivityID(activityID string) (models.Experiment, bool, error) {
	experiment, ok := stub.byActivity[activityID]
	return experiment, ok, nil
}

func (stub *repeatExperimentStub) FindByTitle(title string) (models.Experiment, bool, error) {
	experiment, ok := stub.byTitle[title]
	return experiment, ok, nil
}

func (stub *repeatExperimentStub) CreateLinkedToWin(experiment *models.Experiment, winID string, backfillWin bool) error {
	if stub.createErr != nil {
		return stub.createErr
	}
	experiment.ID = "synthesized"
	stub.created = append(stub.created, *experiment)
	if backfillWin {
		if stub.backfilled == nil {
			stub.backfilled = make(map[string]string)
		}
		stub.backfilled[winID] = experiment.ActivityID
	}
	return nil
}

func TestResolveLookupOrder(t *testing.T) {
	byActivity := models.Experiment{ID: "e1", ActivityID: "X", Title: "Original"}
	byTitle := models.Experiment{ID: "e2", ActivityID: "Z", Title: "Legacy"}
	stub := &repeatExperimentStub{
		byActivity: map[string]models.Experiment{"X": byActivity},
		byTitle:    map[string]models.Experiment{"Legacy": byTitle, "Original": byTitle},
	}
	service := NewRepeatService(stub, nil, nil, discardLogger())

	resolved, synthesized, err := service.Resolve(models.Win{ID: "w1", Title: "Original", ActivityID: models.StringPtr("X")})
	if err != nil || synthesized || resolved.ID != "e1" {
		t.Fatalf("Resolve(by activity) = %#v, %v, %v; want e1", resolved, synthesized, err)
	}

	resolved, synthesized, err = service.Resolve(models.Win{ID: "w2", Title: "Legacy"})
	if err != nil || synthesized || resolved.ID != "e2" {
		t.Fatalf("Resolve(by title) = %#v, %v, %v; want e2", resolved, synthesized, err)
	}
	if len(stub.created) != 0 {
		t.Fatalf("expected no synthesized experiments, got %d", len(stub.created))
	}
}

func TestResolveSynthesizesAndBackfillsMissingActivity(t *testing.T) {
	stub := &repeatExperimentStub{}
	service := NewRepeatService(stub, nil, nil, discardLogger())

	resolved, synthesized, err := service.Resolve(models.Win{ID: "w1", Title: "Orphan", BadgeIcon1: badges.IconOutdoor})
	if err != nil || !synthesized {
		t.Fatalf("Resolve() = %v, %v; want synthesized", synthesized, err)
	}
	if resolved.ActivityID == "" || stub.backfilled["w1"] != resolved.ActivityID {
		t.Fatalf("expected win backfilled with %q, got %v", resolved.ActivityID, stub.backfilled)
	}
	if resolved.Environment != models.EnvironmentOutdoor {
		t.Fatalf("expected outdoor environment, got %q", resolved.Environment)
	}

	kept, _, err := service.Resolve(models.Win{ID: "w2", Title: "Deleted", ActivityID: models.StringPtr("gone")})
	if err != nil || kept.ActivityID != "gone" {
		t.Fatalf("expected synthesized experiment to keep activity id, got %#v err=%v", kept, err)
	}
	if _, ok := stub.backfilled["w2"]; ok {
		t.Fatal("win with an activity id must not be backfilled")
	}
}

func TestResolveReportsPersistFailure(t *testing.T) {
	stub := &repeatExperimentStub{createErr: errors.New("readonly database")}
	service := NewRepeatService(stub, nil, nil, discardLogger())

	if _, _, err := service.Resolve(models.Win{ID: "w1", Title: "Orphan"}); !errors.Is(err, ErrPersistFailed) {
		t.Fatalf("expected ErrPersistFailed, got %v", err)
	}
}
