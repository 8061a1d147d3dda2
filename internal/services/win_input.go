package services

import (
	"errors"
	"strings"
	"time"
)

const MaxImageBytes = 4 << 20

var ErrInvalidWin = errors.New("invalid win")

type WinInput struct {
	Title        string
	ImageData    []byte
	LoggedDate   time.Time
	BadgeIcon1   string
	BadgeIcon2   string
	BadgeIcon3   string
	LogTypeIcon  string
	IconOverride *string
	Notes        string
	CollectionID *string
}

func NormalizeWinInput(input WinInput) (WinInput, error) {
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" || len([]rune(input.Title)) > MaxTitleLength {
		return input, ErrInvalidWin
	}
	if len(input.ImageData) > MaxImageBytes {
		return input, ErrInvalidWin
	}
	input.BadgeIcon1 = strings.TrimSpace(input.BadgeIcon1)
	input.BadgeIcon2 = strings.TrimSpace(input.BadgeIcon2)
	input.BadgeIcon3 = strings.TrimSpace(input.BadgeIcon3)
	input.LogTypeIcon = strings.TrimSpace(input.LogTypeIcon)
	input.IconOverride = trimmedOrNil(input.IconOverride)
	input.CollectionID = trimmedOrNil(input.CollectionID)
	notes, ok := normalizeNotes(input.Notes)
	if !ok {
		return input, ErrInvalidWin
	}
	input.Notes = notes
	return input, nil
}

func trimmedOrNil(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
