package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"gorm.io/gorm"
)

const (
	CollectionScopeAll           = "all"
	CollectionScopeUncategorized = "uncategorized"
)

// ErrCollectionNameTaken is returned by the store when another collection owns the name key.
var ErrCollectionNameTaken = errors.New("collection name taken")

type WinCollection struct {
	ID           string    `gorm:"primaryKey;type:text" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	NameKey      string    `gorm:"column:name_key;not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	LastModified time.Time `gorm:"not null" json:"last_modified"`
}

func (collection *WinCollection) BeforeCreate(*gorm.DB) error {
	if collection.ID == "" {
		collection.ID = uuid.NewString()
	}
	collection.NameKey = CollectionNameKey(collection.Name)
	if collection.LastModified.IsZero() {
		collection.LastModified = time.Now().UTC()
	}
	return nil
}

// CollectionNameKey is the unique form of a collection name: trimmed and Unicode case-folded.
func CollectionNameKey(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

// ReservedCollectionNames are the lower-cased names shown for built-in groupings.
func ReservedCollectionNames() []string {
	return []string{"all", "all wins", "uncategorized"}
}

// CollectionSummary pairs a collection with the number of wins it holds.
type CollectionSummary struct {
	WinCollection
	WinCount int64 `gorm:"column:win_count" json:"win_count"`
}
