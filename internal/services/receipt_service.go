package services

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/andresouzadev/sindigo/internal/models"
)

// ReceiptData is everything the receipt renderer needs for one payment.
type ReceiptData struct {
	SyndicateName string
	ClientName    string
	ClientCPF     string
	Reference     string // MM/YYYY, already formatted for display
	PaymentDate   string
	Amount        decimal.Decimal
	RegisteredBy  string
	IssuedAt      time.Time
}

type ReceiptRenderer interface {
	Render(data ReceiptData) ([]byte, error)
}

type ReceiptService struct {
	payments PaymentRepositoryPort
	clients  PaymentClientReader
	settings DeclarationSettingsReader
	renderer ReceiptRenderer
	now      func() time.Time
}

func NewReceiptService(
	payments PaymentRepositoryPort,
	clients PaymentClientReader,
	settings DeclarationSettingsReader,
	renderer ReceiptRenderer,
) *ReceiptService {
	return &ReceiptService{
		payments: payments,
		clients:  clients,
		settings: settings,
		renderer: renderer,
		now:      time.Now,
	}
}

// Issue renders the payment receipt PDF for one payment.
func (service *ReceiptService) Issue(paymentID uint) ([]byte, error) {
	payment, err := service.payments.FindByID(paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}

	client, err := service.clients.FindByID(payment.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, ErrPaymentClientGone
	}

	name, err := service.settings.GetString(models.SettingSyndicateName)
	if err != nil {
		return nil, err
	}

	return service.renderer.Render(ReceiptData{
		SyndicateName: name,
		ClientName:    client.FullName,
		ClientCPF:     client.CPF,
		Reference:     displayReference(payment.Reference),
		PaymentDate:   brazilianDate(payment.PaymentDate),
		Amount:        payment.Amount,
		RegisteredBy:  payment.RegisteredBy,
		IssuedAt:      service.now(),
	})
}

// displayReference turns YYYY-MM into MM/YYYY for the printed receipt.
func displayReference(reference string) string {
	year, month, found := strings.Cut(reference, "-")
	if !found {
		return reference
	}
	return month + "/" + year
}
