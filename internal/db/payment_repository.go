package db

import (
	"errors"

	"gorm.io/gorm"

	"github.com/andresouzadev/sindigo/internal/models"
)

type PaymentRepository struct {
	database *gorm.DB
}

func NewPaymentRepository(database *gorm.DB) *PaymentRepository {
	return &PaymentRepository{database: database}
}

func (repo *PaymentRepository) List() ([]models.Payment, error) {
	return GetAll[models.Payment](repo.database.Order("reference DESC, id DESC"))
}

func (repo *PaymentRepository) FindByID(paymentID uint) (*models.Payment, error) {
	return GetByID[models.Payment](repo.database, paymentID)
}

func (repo *PaymentRepository) Count() (int64, error) {
	return Count[models.Payment](repo.database)
}

func (repo *PaymentRepository) ListByClient(clientID uint) ([]models.Payment, error) {
	return GetAll[models.Payment](repo.database.Where("client_id = ?", clientID).Order("reference DESC"))
}

// LastByClient returns the payment with the most recent reference period,
// or nil when the client has no payments.
func (repo *PaymentRepository) LastByClient(clientID uint) (*models.Payment, error) {
	var payment models.Payment
	err := repo.database.
		Where("client_id = ?", clientID).
		Order("reference DESC").
		First(&payment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (repo *PaymentRepository) ListByReference(reference string) ([]models.Payment, error) {
	return GetAll[models.Payment](repo.database.Where("reference = ?", reference))
}

func (repo *PaymentRepository) Create(payment *models.Payment) error {
	return Insert(repo.database, payment)
}

func (repo *PaymentRepository) Update(paymentID uint, updates map[string]any) (int64, error) {
	return UpdateByID[models.Payment](repo.database, paymentID, updates)
}

func (repo *PaymentRepository) Delete(paymentID uint) (int64, error) {
	return DeleteByID[models.Payment](repo.database, paymentID)
}
