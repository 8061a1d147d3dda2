package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultWinIcon = "trophy.fill"

type Win struct {
	ID           string    `gorm:"primaryKey;type:text" json:"id"`
	ActivityID   *string   `gorm:"index" json:"activity_id,omitempty"`
	Title        string    `gorm:"not null" json:"title"`
	ImageData    []byte    `json:"image_data,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	LoggedDate   time.Time `gorm:"not null;index" json:"logged_date"`
	BadgeIcon1   string    `gorm:"column:badge_icon1" json:"badge_icon1"`
	BadgeIcon2   string    `gorm:"column:badge_icon2" json:"badge_icon2"`
	BadgeIcon3   string    `gorm:"column:badge_icon3" json:"badge_icon3"`
	LogTypeIcon  string    `json:"log_type_icon"`
	IconOverride *string   `json:"icon_override,omitempty"`
	Notes        string    `json:"notes"`
	CollectionID *string   `gorm:"index" json:"collection_id,omitempty"`
}

func (win *Win) BeforeCreate(*gorm.DB) error {
	if win.ID == "" {
		win.ID = uuid.NewString()
	}
	return nil
}

// BadgeIcons returns the three badge slots followed by the log type slot.
func (win Win) BadgeIcons() []string {
	return []string{win.BadgeIcon1, win.BadgeIcon2, win.BadgeIcon3, win.LogTypeIcon}
}

func (win Win) DisplayIcon() string {
	if win.IconOverride != nil && *win.IconOverride != "" {
		return *win.IconOverride
	}
	return DefaultWinIcon
}

// CopyForRestore returns the win's field values under a fresh identity.
func (win Win) CopyForRestore() Win {
	restored := win
	restored.ID = ""
	restored.ActivityID = cloneString(win.ActivityID)
	restored.IconOverride = cloneString(win.IconOverride)
	restored.CollectionID = cloneString(win.CollectionID)
	if win.ImageData != nil {
		restored.ImageData = append([]byte(nil), win.ImageData...)
	}
	return restored
}

func cloneString(value *string) *string {
	if value == nil {
		return nil
	}
	copied := *value
	return &copied
}
