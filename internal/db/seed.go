package db

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/andresouzadev/sindigo/internal/models"
)

// EnsureSeeded inserts the default users and settings when they are absent.
// It runs on every open and is also reachable through the v4 upgrade hook;
// both paths gate on emptiness inside the transaction that performs the
// insert, so neither can duplicate the other's work.
func EnsureSeeded(database *gorm.DB) error {
	return database.Transaction(func(tx *gorm.DB) error {
		if err := seedDefaultUsers(tx); err != nil {
			return err
		}
		return seedDefaultSettings(tx)
	})
}

func seedDefaultUsers(tx *gorm.DB) error {
	var count int64
	if err := tx.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now()
	for _, seed := range models.DefaultUsers() {
		user := models.User{
			Username:  seed.Username,
			Password:  seed.Password,
			Role:      seed.Role,
			CreatedAt: now,
		}
		if err := tx.Create(&user).Error; err != nil {
			return fmt.Errorf("seed user %s: %w", seed.Username, err)
		}
	}
	return nil
}

func seedDefaultSettings(tx *gorm.DB) error {
	for key, value := range models.DefaultSettings() {
		var count int64
		if err := tx.Model(&models.Setting{}).Where("key = ?", key).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		encoded, err := encodeSettingValue(value)
		if err != nil {
			return fmt.Errorf("encode setting %s: %w", key, err)
		}
		if err := tx.Create(&models.Setting{Key: key, Value: encoded}).Error; err != nil {
			return fmt.Errorf("seed setting %s: %w", key, err)
		}
	}
	return nil
}

func encodeSettingValue(value any) (string, error) {
	encoded, err := json.Marshal(value)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

func decodeSettingString(stored string) (string, error) {
	var value string
	if err := json.Unmarshal([]byte(stored), &value); err != nil {
		return "", err
	}
	return value, nil
}
