package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	EnvironmentIndoor  = "indoor"
	EnvironmentOutdoor = "outdoor"

	ToolsRequired = "required"
	ToolsNone     = "none"

	Timeframe1D     = "1D"
	Timeframe7D     = "7D"
	Timeframe30D    = "30D"
	TimeframePlus30 = "+30D"

	LogTypeOneTime     = "oneTime"
	LogTypeNewInterest = "newInterest"
)

const DefaultExperimentIcon = "flask.fill"

type Experiment struct {
	ID           string     `gorm:"primaryKey;type:text" json:"id"`
	ActivityID   string     `gorm:"not null;index" json:"activity_id"`
	Title        string     `gorm:"not null" json:"title"`
	Icon         string     `gorm:"not null" json:"icon"`
	Environment  string     `gorm:"not null;default:indoor" json:"environment"`
	Tools        string     `gorm:"not null;default:required" json:"tools"`
	Timeframe    string     `gorm:"not null;default:1D" json:"timeframe"`
	LogType      *string    `json:"log_type,omitempty"`
	ReferenceURL string     `json:"reference_url"`
	Notes        string     `json:"notes"`
	IsActive     bool       `gorm:"not null;default:false" json:"is_active"`
	IsCompleted  bool       `gorm:"not null;default:false" json:"is_completed"`
	ActivatedAt  *time.Time `json:"activated_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

func (experiment *Experiment) BeforeCreate(*gorm.DB) error {
	if experiment.ID == "" {
		experiment.ID = uuid.NewString()
	}
	if experiment.ActivityID == "" {
		experiment.ActivityID = uuid.NewString()
	}
	return nil
}

// CopyForRestore returns the experiment's field values under a fresh identity.
func (experiment Experiment) CopyForRestore() Experiment {
	restored := experiment
	restored.ID = ""
	if experiment.LogType != nil {
		logType := *experiment.LogType
		restored.LogType = &logType
	}
	if experiment.ActivatedAt != nil {
		activatedAt := *experiment.ActivatedAt
		restored.ActivatedAt = &activatedAt
	}
	return restored
}

func Timeframes() []string {
	return []string{Timeframe1D, Timeframe7D, Timeframe30D, TimeframePlus30}
}

func IsKnownTimeframe(value string) bool {
	for _, timeframe := range Timeframes() {
		if timeframe == value {
			return true
		}
	}
	return false
}

func StringPtr(value string) *string {
	return &value
}
