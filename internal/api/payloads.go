package api

import (
	"time"

	"github.com/terraincognita07/ssclab/internal/services"
)

const dateLayout = "2006-01-02"

type experimentPayload struct {
	Title        string  `json:"title" validate:"required,max=120"`
	Icon         string  `json:"icon" validate:"max=64"`
	Environment  string  `json:"environment" validate:"max=16"`
	Tools        string  `json:"tools" validate:"max=16"`
	Timeframe    string  `json:"timeframe" validate:"max=8"`
	LogType      *string `json:"log_type" validate:"omitempty,max=16"`
	ReferenceURL string  `json:"reference_url" validate:"omitempty,url"`
	Notes        string  `json:"notes" validate:"max=2000"`
}

func (payload experimentPayload) input() services.ExperimentInput {
	return services.ExperimentInput{
		Title:        payload.Title,
		Icon:         payload.Icon,
		Environment:  payload.Environment,
		Tools:        payload.Tools,
		Timeframe:    payload.Timeframe,
		LogType:      payload.LogType,
		ReferenceURL: payload.ReferenceURL,
		Notes:        payload.Notes,
	}
}

// winPayload carries image_data as base64 in JSON.
type winPayload struct {
	Title        string  `json:"title" validate:"max=120"`
	ImageData    []byte  `json:"image_data"`
	LoggedDate   string  `json:"logged_date" validate:"omitempty,datetime=2006-01-02"`
	BadgeIcon1   string  `json:"badge_icon1" validate:"max=64"`
	BadgeIcon2   string  `json:"badge_icon2" validate:"max=64"`
	BadgeIcon3   string  `json:"badge_icon3" validate:"max=64"`
	LogTypeIcon  string  `json:"log_type_icon" validate:"max=64"`
	IconOverride *string `json:"icon_override" validate:"omitempty,max=64"`
	Notes        string  `json:"notes" validate:"max=2000"`
	CollectionID *string `json:"collection_id"`
}

func (payload winPayload) input() services.WinInput {
	input := services.WinInput{
		Title:        payload.Title,
		ImageData:    payload.ImageData,
		BadgeIcon1:   payload.BadgeIcon1,
		BadgeIcon2:   payload.BadgeIcon2,
		BadgeIcon3:   payload.BadgeIcon3,
		LogTypeIcon:  payload.LogTypeIcon,
		IconOverride: payload.IconOverride,
		Notes:        payload.Notes,
		CollectionID: payload.CollectionID,
	}
	if payload.LoggedDate != "" {
		if logged, err := time.ParseInLocation(dateLayout, payload.LoggedDate, time.UTC); err == nil {
			input.LoggedDate = logged
		}
	}
	return input
}

type movePayload struct {
	CollectionID *string `json:"collection_id"`
}

type collectionPayload struct {
	Name string `json:"name" validate:"required"`
}

type undoPayload struct {
	Token string `json:"token" validate:"required"`
}

type resetPayload struct {
	Reseed bool `json:"reseed"`
}
