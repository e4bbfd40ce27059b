package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/andresouzadev/sindigo/internal/models"
)

type ClientRepository struct {
	database *gorm.DB
}

func NewClientRepository(database *gorm.DB) *ClientRepository {
	return &ClientRepository{database: database}
}

func (repo *ClientRepository) List() ([]models.Client, error) {
	return GetAll[models.Client](repo.database.Order("full_name"))
}

func (repo *ClientRepository) ListByStatus(status string) ([]models.Client, error) {
	return GetAll[models.Client](repo.database.Where("status = ?", status).Order("full_name"))
}

func (repo *ClientRepository) FindByID(clientID uint) (*models.Client, error) {
	return GetByID[models.Client](repo.database, clientID)
}

func (repo *ClientRepository) Count() (int64, error) {
	return Count[models.Client](repo.database)
}

func (repo *ClientRepository) Create(client *models.Client) error {
	return Insert(repo.database, client)
}

func (repo *ClientRepository) Update(clientID uint, updates map[string]any) (int64, error) {
	return UpdateByID[models.Client](repo.database, clientID, updates)
}

// DeleteClientAndRelations removes the client and every payment,
// declaration, document and attendance referencing it in one transaction.
// Any failure rolls all five tables back; success is reported only after
// verifying the client row is actually gone.
func (repo *ClientRepository) DeleteClientAndRelations(clientID uint) error {
	err := repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("client_id = ?", clientID).Delete(&models.Payment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("client_id = ?", clientID).Delete(&models.DeclarationLog{}).Error; err != nil {
			return err
		}
		if err := tx.Where("client_id = ?", clientID).Delete(&models.Document{}).Error; err != nil {
			return err
		}
		if err := tx.Where("client_id = ?", clientID).Delete(&models.Attendance{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Client{}, clientID).Error
	})
	if err != nil {
		return fmt.Errorf("delete client and relations: %w", err)
	}

	remaining, err := GetByID[models.Client](repo.database, clientID)
	if err != nil {
		return fmt.Errorf("verify client deletion: %w", err)
	}
	if remaining != nil {
		return fmt.Errorf("delete client and relations: client %d still present", clientID)
	}
	return nil
}
