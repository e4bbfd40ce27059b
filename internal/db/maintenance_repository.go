package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/andresouzadev/sindigo/internal/models"
)

// MaintenanceRepository holds the destructive administrative operations.
type MaintenanceRepository struct {
	database *gorm.DB
}

func NewMaintenanceRepository(database *gorm.DB) *MaintenanceRepository {
	return &MaintenanceRepository{database: database}
}

// WipeTransactionalData atomically clears clients, payments, declarations,
// expenses, documents and attendances. Settings and users survive: the wipe
// resets the business data, not the installation. Requiring the typed
// confirmation phrase is the calling layer's job.
func (repo *MaintenanceRepository) WipeTransactionalData() error {
	err := repo.database.Transaction(func(tx *gorm.DB) error {
		wipes := []any{
			&models.Payment{},
			&models.DeclarationLog{},
			&models.Document{},
			&models.Attendance{},
			&models.Expense{},
			&models.Client{},
		}
		for _, model := range wipes {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("wipe transactional data: %w", err)
	}
	return nil
}
