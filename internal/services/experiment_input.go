package services

import (
	"errors"
	"net/url"
	"strings"

	"github.com/terraincognita07/ssclab/internal/models"
)

const (
	MaxTitleLength = 120
	MaxNotesLength = 2000
)

var ErrInvalidExperiment = errors.New("invalid experiment")

type ExperimentInput struct {
	Title        string
	Icon         string
	Environment  string
	Tools        string
	Timeframe    string
	LogType      *string
	ReferenceURL string
	Notes        string
}

func NormalizeExperimentInput(input ExperimentInput) (ExperimentInput, error) {
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" || len([]rune(input.Title)) > MaxTitleLength {
		return input, ErrInvalidExperiment
	}

	input.Icon = strings.TrimSpace(input.Icon)
	if input.Icon == "" {
		input.Icon = models.DefaultExperimentIcon
	}

	switch environment := strings.ToLower(strings.TrimSpace(input.Environment)); environment {
	case "":
		input.Environment = models.EnvironmentIndoor
	case models.EnvironmentIndoor, models.EnvironmentOutdoor:
		input.Environment = environment
	default:
		return input, ErrInvalidExperiment
	}

	switch tools := strings.ToLower(strings.TrimSpace(input.Tools)); tools {
	case "":
		input.Tools = models.ToolsRequired
	case models.ToolsRequired, models.ToolsNone:
		input.Tools = tools
	default:
		return input, ErrInvalidExperiment
	}

	input.Timeframe = strings.ToUpper(strings.TrimSpace(input.Timeframe))
	if input.Timeframe == "" {
		input.Timeframe = models.Timeframe1D
	}
	if !models.IsKnownTimeframe(input.Timeframe) {
		return input, ErrInvalidExperiment
	}

	logType, err := normalizeLogType(input.LogType)
	if err != nil {
		return input, err
	}
	input.LogType = logType

	input.ReferenceURL = strings.TrimSpace(input.ReferenceURL)
	if input.ReferenceURL != "" {
		parsed, err := url.Parse(input.ReferenceURL)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return input, ErrInvalidExperiment
		}
	}

	notes, ok := normalizeNotes(input.Notes)
	if !ok {
		return input, ErrInvalidExperiment
	}
	input.Notes = notes
	return input, nil
}

func normalizeLogType(value *string) (*string, error) {
	if value == nil {
		return nil, nil
	}
	switch trimmed := strings.TrimSpace(*value); trimmed {
	case "":
		return nil, nil
	case models.LogTypeOneTime, models.LogTypeNewInterest:
		return models.StringPtr(trimmed), nil
	default:
		return nil, ErrInvalidExperiment
	}
}

// normalizeNotes trims notes and reports false when they exceed MaxNotesLength runes.
func normalizeNotes(value string) (string, bool) {
	value = strings.TrimSpace(value)
	return value, len([]rune(value)) <= MaxNotesLength
}
