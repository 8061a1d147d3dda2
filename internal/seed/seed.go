// Package seed holds the demo data written on first launch.
package seed

import (
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/ssclab/internal/badges"
	"github.com/terraincognita07/ssclab/internal/models"
	"gopkg.in/yaml.v3"
)

const dateLayout = "2006-01-02"

//go:embed sample.yaml
var sampleYAML []byte

type sampleFile struct {
	Collections []sampleCollection `yaml:"collections"`
	Experiments []sampleExperiment `yaml:"experiments"`
	Wins        []sampleWin        `yaml:"wins"`
}

type sampleCollection struct {
	Key  string `yaml:"key"`
	Name string `yaml:"name"`
}

type sampleExperiment struct {
	Key          string `yaml:"key"`
	Title        string `yaml:"title"`
	Icon         string `yaml:"icon"`
	Environment  string `yaml:"environment"`
	Tools        string `yaml:"tools"`
	Timeframe    string `yaml:"timeframe"`
	LogType      string `yaml:"log_type"`
	ReferenceURL string `yaml:"reference_url"`
	Notes        string `yaml:"notes"`
	Created      string `yaml:"created"`
}

type sampleWin struct {
	Title       string   `yaml:"title"`
	Experiment  string   `yaml:"experiment"`
	Collection  string   `yaml:"collection"`
	Logged      string   `yaml:"logged"`
	Notes       string   `yaml:"notes"`
	Badges      []string `yaml:"badges"`
	LogTypeIcon string   `yaml:"log_type_icon"`
}

// Records is the sample set ready to insert. Every call to Load yields fresh ids.
type Records struct {
	Collections []models.WinCollection
	Experiments []models.Experiment
	Wins        []models.Win
}

func Load() (Records, error) {
	return Parse(sampleYAML)
}

// Parse builds records from a sample document. Wins logged from an experiment
// share its activity id and complete it.
func Parse(document []byte) (Records, error) {
	file := sampleFile{}
	if err := yaml.Unmarshal(document, &file); err != nil {
		return Records{}, fmt.Errorf("parse sample data: %w", err)
	}

	records := Records{}
	collectionIDs := make(map[string]string, len(file.Collections))
	for _, entry := range file.Collections {
		id := uuid.NewString()
		collectionIDs[entry.Key] = id
		records.Collections = append(records.Collections, models.WinCollection{ID: id, Name: entry.Name})
	}

	experimentIndex := make(map[string]int, len(file.Experiments))
	for _, entry := range file.Experiments {
		created, err := parseDate(entry.Created)
		if err != nil {
			return Records{}, fmt.Errorf("experiment %q: %w", entry.Key, err)
		}
		experiment := models.Experiment{
			ID:           uuid.NewString(),
			ActivityID:   uuid.NewString(),
			Title:        entry.Title,
			Icon:         entry.Icon,
			Environment:  entry.Environment,
			Tools:        entry.Tools,
			Timeframe:    entry.Timeframe,
			ReferenceURL: entry.ReferenceURL,
			Notes:        entry.Notes,
			CreatedAt:    created,
		}
		if entry.LogType != "" {
			experiment.LogType = models.StringPtr(entry.LogType)
		}
		experimentIndex[entry.Key] = len(records.Experiments)
		records.Experiments = append(records.Experiments, experiment)
	}

	for _, entry := range file.Wins {
		logged, err := parseDate(entry.Logged)
		if err != nil {
			return Records{}, fmt.Errorf("win %q: %w", entry.Title, err)
		}
		win := models.Win{
			ID:          uuid.NewString(),
			Title:       entry.Title,
			CreatedAt:   logged,
			LoggedDate:  logged,
			Notes:       entry.Notes,
			LogTypeIcon: entry.LogTypeIcon,
		}
		setBadgeSlots(&win, entry.Badges)

		if entry.Collection != "" {
			id, ok := collectionIDs[entry.Collection]
			if !ok {
				return Records{}, fmt.Errorf("win %q: unknown collection %q", entry.Title, entry.Collection)
			}
			win.CollectionID = models.StringPtr(id)
		}

		if entry.Experiment != "" {
			index, ok := experimentIndex[entry.Experiment]
			if !ok {
				return Records{}, fmt.Errorf("win %q: unknown experiment %q", entry.Title, entry.Experiment)
			}
			experiment := &records.Experiments[index]
			experiment.IsCompleted = true
			win.ActivityID = models.StringPtr(experiment.ActivityID)
			win.BadgeIcon1, win.BadgeIcon2, win.BadgeIcon3, win.LogTypeIcon = badges.BadgeIconsFor(*experiment)
			win.IconOverride = models.StringPtr(experiment.Icon)
		}
		records.Wins = append(records.Wins, win)
	}

	stampCollections(records)
	return records, nil
}

func parseDate(value string) (time.Time, error) {
	parsed, err := time.ParseInLocation(dateLayout, strings.TrimSpace(value), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", value)
	}
	return parsed, nil
}

func setBadgeSlots(win *models.Win, icons []string) {
	slots := []*string{&win.BadgeIcon1, &win.BadgeIcon2, &win.BadgeIcon3}
	for index, icon := range icons {
		if index >= len(slots) {
			break
		}
		*slots[index] = icon
	}
}

// stampCollections dates each collection by its newest win.
func stampCollections(records Records) {
	for index := range records.Collections {
		collection := &records.Collections[index]
		for _, win := range records.Wins {
			if win.CollectionID == nil || *win.CollectionID != collection.ID {
				continue
			}
			if collection.CreatedAt.IsZero() || win.CreatedAt.Before(collection.CreatedAt) {
				collection.CreatedAt = win.CreatedAt
			}
			if win.LoggedDate.After(collection.LastModified) {
				collection.LastModified = win.LoggedDate
			}
		}
	}
}
