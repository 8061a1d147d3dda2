package models

import "time"

const FlagSampleDataSeeded = "sample_data_seeded"

type AppFlag struct {
	Name      string `gorm:"primaryKey;type:text"`
	Value     string `gorm:"not null"`
	UpdatedAt time.Time
}
