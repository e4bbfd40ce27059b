package db

import (
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/andresouzadev/sindigo/internal/models"
)

type SettingRepository struct {
	database *gorm.DB
}

func NewSettingRepository(database *gorm.DB) *SettingRepository {
	return &SettingRepository{database: database}
}

func (repo *SettingRepository) List() ([]models.Setting, error) {
	return GetAll[models.Setting](repo.database.Order("key"))
}

// Get returns the raw stored row (JSON-encoded value), or nil when the key
// is absent.
func (repo *SettingRepository) Get(key string) (*models.Setting, error) {
	var setting models.Setting
	err := repo.database.Where("key = ?", key).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

// GetString decodes a string-valued setting. Missing keys and non-string
// values come back as the empty string.
func (repo *SettingRepository) GetString(key string) (string, error) {
	setting, err := repo.Get(key)
	if err != nil || setting == nil {
		return "", err
	}
	value, err := decodeSettingString(setting.Value)
	if err != nil {
		return "", nil
	}
	return value, nil
}

// Upsert stores the JSON encoding of value under key, inserting or
// replacing in one statement.
func (repo *SettingRepository) Upsert(key string, value any) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode setting %s: %w", key, err)
	}
	return repo.database.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&models.Setting{Key: key, Value: string(encoded)}).Error
}

// StringValues decodes every string-valued setting into a map; non-string
// values are skipped.
func (repo *SettingRepository) StringValues() (map[string]string, error) {
	settings, err := repo.List()
	if err != nil {
		return nil, err
	}
	values := make(map[string]string, len(settings))
	for _, setting := range settings {
		if decoded, err := decodeSettingString(setting.Value); err == nil {
			values[setting.Key] = decoded
		}
	}
	return values, nil
}
