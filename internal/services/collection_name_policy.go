package services

import (
	"errors"
	"strings"

	"github.com/terraincognita07/ssclab/internal/models"
)

const MaxCollectionNameLength = 40

var (
	ErrInvalidCollectionName   = errors.New("invalid collection name")
	ErrDuplicateCollectionName = errors.New("duplicate collection name")
)

// NormalizeCollectionName trims the name and rejects blank, overlong and reserved names.
// Reserved names are reported as duplicates of the built-in groupings.
func NormalizeCollectionName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" || len([]rune(name)) > MaxCollectionNameLength {
		return "", ErrInvalidCollectionName
	}
	if IsReservedCollectionName(name) {
		return "", ErrDuplicateCollectionName
	}
	return name, nil
}

func IsReservedCollectionName(name string) bool {
	normalized := models.CollectionNameKey(name)
	for _, reserved := range models.ReservedCollectionNames() {
		if normalized == reserved {
			return true
		}
	}
	return false
}
