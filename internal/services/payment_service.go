package services

import (
	"errors"
	"regexp"
	"time"

	"github.com/shopspring/decimal"

	"github.com/andresouzadev/sindigo/internal/models"
)

var (
	ErrInvalidReference  = errors.New("reference must be YYYY-MM")
	ErrAmountNotPositive = errors.New("amount must be positive")
	ErrPaymentNotFound   = errors.New("payment not found")
	ErrPaymentClientGone = errors.New("payment client not found")
)

var referencePattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

type PaymentRepositoryPort interface {
	List() ([]models.Payment, error)
	FindByID(paymentID uint) (*models.Payment, error)
	ListByClient(clientID uint) ([]models.Payment, error)
	LastByClient(clientID uint) (*models.Payment, error)
	ListByReference(reference string) ([]models.Payment, error)
	Create(payment *models.Payment) error
	Update(paymentID uint, updates map[string]any) (int64, error)
	Delete(paymentID uint) (int64, error)
}

type PaymentClientReader interface {
	FindByID(clientID uint) (*models.Client, error)
}

type PaymentInput struct {
	ClientID    uint
	Reference   string
	PaymentDate string
	Amount      decimal.Decimal
}

type PaymentService struct {
	payments PaymentRepositoryPort
	clients  PaymentClientReader
}

func NewPaymentService(payments PaymentRepositoryPort, clients PaymentClientReader) *PaymentService {
	return &PaymentService{payments: payments, clients: clients}
}

func ValidReference(reference string) bool {
	return referencePattern.MatchString(reference)
}

func (service *PaymentService) List() ([]models.Payment, error) {
	return service.payments.List()
}

func (service *PaymentService) FindByID(paymentID uint) (*models.Payment, error) {
	return service.payments.FindByID(paymentID)
}

func (service *PaymentService) ListByClient(clientID uint) ([]models.Payment, error) {
	return service.payments.ListByClient(clientID)
}

// Register records a dues payment. The composite unique index makes a
// second payment for the same (client, reference) fail with db.ErrDuplicate;
// the caller turns that into a validation message.
func (service *PaymentService) Register(input PaymentInput, registeredBy string) (*models.Payment, error) {
	if !ValidReference(input.Reference) {
		return nil, ErrInvalidReference
	}
	if !input.Amount.IsPositive() {
		return nil, ErrAmountNotPositive
	}

	client, err := service.clients.FindByID(input.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, ErrPaymentClientGone
	}

	payment := models.Payment{
		ClientID:     input.ClientID,
		Reference:    input.Reference,
		PaymentDate:  input.PaymentDate,
		Amount:       input.Amount,
		RegisteredBy: registeredBy,
		CreatedAt:    time.Now(),
	}
	if err := service.payments.Create(&payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

func (service *PaymentService) Delete(paymentID uint) error {
	affected, err := service.payments.Delete(paymentID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrPaymentNotFound
	}
	return nil
}
