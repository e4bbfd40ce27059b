package db

import (
	"gorm.io/gorm"

	"github.com/andresouzadev/sindigo/internal/models"
)

type DeclarationRepository struct {
	database *gorm.DB
}

func NewDeclarationRepository(database *gorm.DB) *DeclarationRepository {
	return &DeclarationRepository{database: database}
}

func (repo *DeclarationRepository) List() ([]models.DeclarationLog, error) {
	return GetAll[models.DeclarationLog](repo.database.Order("created_at DESC"))
}

func (repo *DeclarationRepository) ListByClient(clientID uint) ([]models.DeclarationLog, error) {
	return GetAll[models.DeclarationLog](repo.database.Where("client_id = ?", clientID).Order("created_at DESC"))
}

func (repo *DeclarationRepository) Count() (int64, error) {
	return Count[models.DeclarationLog](repo.database)
}

// Append records an issuance. The log is append-only; there is no update or
// single-row delete here on purpose.
func (repo *DeclarationRepository) Append(entry *models.DeclarationLog) error {
	return Insert(repo.database, entry)
}
