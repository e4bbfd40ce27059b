package db

import (
	"errors"

	"gorm.io/gorm"
)

// Generic CRUD operations shared by every repository. They are the only
// storage primitives the entity-specific repositories build on, so the
// uniqueness-violation translation happens in exactly one place.

func GetAll[T any](database *gorm.DB) ([]T, error) {
	records := make([]T, 0)
	if err := database.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// GetByID returns nil without error when no row has the given id.
func GetByID[T any](database *gorm.DB, id uint) (*T, error) {
	var record T
	err := database.First(&record, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func Count[T any](database *gorm.DB) (int64, error) {
	var record T
	var count int64
	if err := database.Model(&record).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Insert creates the record and fills its generated key. A collision on any
// unique index comes back wrapped in ErrDuplicate.
func Insert[T any](database *gorm.DB, record *T) error {
	return translateError(database.Create(record).Error)
}

// UpdateByID applies a partial update. Updating an absent id is a no-op
// reporting zero affected rows, not an error.
func UpdateByID[T any](database *gorm.DB, id uint, updates map[string]any) (int64, error) {
	var record T
	result := database.Model(&record).Where("id = ?", id).Updates(updates)
	return result.RowsAffected, translateError(result.Error)
}

// DeleteByID removes one row. Deleting an absent id is a no-op.
func DeleteByID[T any](database *gorm.DB, id uint) (int64, error) {
	var record T
	result := database.Delete(&record, id)
	return result.RowsAffected, result.Error
}
