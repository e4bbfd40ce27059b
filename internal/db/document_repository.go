package db

import (
	"gorm.io/gorm"

	"github.com/andresouzadev/sindigo/internal/models"
)

type DocumentRepository struct {
	database *gorm.DB
}

func NewDocumentRepository(database *gorm.DB) *DocumentRepository {
	return &DocumentRepository{database: database}
}

func (repo *DocumentRepository) ListByClient(clientID uint) ([]models.Document, error) {
	return GetAll[models.Document](repo.database.Where("client_id = ?", clientID).Order("created_at DESC"))
}

func (repo *DocumentRepository) FindByID(documentID uint) (*models.Document, error) {
	return GetByID[models.Document](repo.database, documentID)
}

func (repo *DocumentRepository) Create(document *models.Document) error {
	return Insert(repo.database, document)
}

func (repo *DocumentRepository) Delete(documentID uint) (int64, error) {
	return DeleteByID[models.Document](repo.database, documentID)
}
