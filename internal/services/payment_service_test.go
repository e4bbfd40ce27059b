package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresouzadev/sindigo/internal/models"
)

type fakePaymentRepo struct {
	payments []models.Payment
	nextID   uint
}

func (f *fakePaymentRepo) List() ([]models.Payment, error) { return f.payments, nil }

func (f *fakePaymentRepo) FindByID(paymentID uint) (*models.Payment, error) {
	for index := range f.payments {
		if f.payments[index].ID == paymentID {
			return &f.payments[index], nil
		}
	}
	return nil, nil
}

func (f *fakePaymentRepo) ListByClient(clientID uint) ([]models.Payment, error) {
	result := make([]models.Payment, 0)
	for _, payment := range f.payments {
		if payment.ClientID == clientID {
			result = append(result, payment)
		}
	}
	return result, nil
}

func (f *fakePaymentRepo) LastByClient(clientID uint) (*models.Payment, error) {
	var last *models.Payment
	for index := range f.payments {
		payment := &f.payments[index]
		if payment.ClientID != clientID {
			continue
		}
		if last == nil || payment.Reference > last.Reference {
			last = payment
		}
	}
	return last, nil
}

func (f *fakePaymentRepo) ListByReference(reference string) ([]models.Payment, error) {
	result := make([]models.Payment, 0)
	for _, payment := range f.payments {
		if payment.Reference == reference {
			result = append(result, payment)
		}
	}
	return result, nil
}

func (f *fakePaymentRepo) Create(payment *models.Payment) error {
	f.nextID++
	payment.ID = f.nextID
	f.payments = append(f.payments, *payment)
	return nil
}

func (f *fakePaymentRepo) Update(paymentID uint, updates map[string]any) (int64, error) {
	return 0, nil
}

func (f *fakePaymentRepo) Delete(paymentID uint) (int64, error) {
	for index := range f.payments {
		if f.payments[index].ID == paymentID {
			f.payments = append(f.payments[:index], f.payments[index+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

type fakeClientLookup struct {
	clients []models.Client
}

func (f *fakeClientLookup) FindByID(clientID uint) (*models.Client, error) {
	for index := range f.clients {
		if f.clients[index].ID == clientID {
			return &f.clients[index], nil
		}
	}
	return nil, nil
}

func TestRegisterPaymentValidatesReference(t *testing.T) {
	service := NewPaymentService(&fakePaymentRepo{}, &fakeClientLookup{
		clients: []models.Client{{ID: 1, FullName: "Maria"}},
	})

	invalid := []string{"2024-13", "2024-00", "24-01", "2024/01", "2024-1", "", "abcd-ef"}
	for _, reference := range invalid {
		_, err := service.Register(PaymentInput{
			ClientID:  1,
			Reference: reference,
			Amount:    decimal.NewFromInt(25),
		}, "admin")
		assert.ErrorIs(t, err, ErrInvalidReference, "reference %q", reference)
	}

	payment, err := service.Register(PaymentInput{
		ClientID:    1,
		Reference:   "2024-12",
		PaymentDate: "2024-12-05",
		Amount:      decimal.NewFromInt(25),
	}, "admin")
	require.NoError(t, err)
	assert.Equal(t, "2024-12", payment.Reference)
}

func TestRegisterPaymentRequiresPositiveAmount(t *testing.T) {
	service := NewPaymentService(&fakePaymentRepo{}, &fakeClientLookup{
		clients: []models.Client{{ID: 1}},
	})

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-5)} {
		_, err := service.Register(PaymentInput{
			ClientID:  1,
			Reference: "2024-01",
			Amount:    amount,
		}, "admin")
		assert.ErrorIs(t, err, ErrAmountNotPositive)
	}
}

func TestRegisterPaymentStampsAuthorAndCreation(t *testing.T) {
	repo := &fakePaymentRepo{}
	service := NewPaymentService(repo, &fakeClientLookup{
		clients: []models.Client{{ID: 7}},
	})

	payment, err := service.Register(PaymentInput{
		ClientID:    7,
		Reference:   "2024-06",
		PaymentDate: "2024-06-01",
		Amount:      decimal.NewFromFloat(25.50),
	}, "vinicius")
	require.NoError(t, err)
	assert.Equal(t, "vinicius", payment.RegisteredBy)
	assert.False(t, payment.CreatedAt.IsZero())
	assert.NotZero(t, payment.ID)
}

func TestRegisterPaymentRejectsUnknownClient(t *testing.T) {
	service := NewPaymentService(&fakePaymentRepo{}, &fakeClientLookup{})

	_, err := service.Register(PaymentInput{
		ClientID:  42,
		Reference: "2024-01",
		Amount:    decimal.NewFromInt(25),
	}, "admin")
	assert.ErrorIs(t, err, ErrPaymentClientGone)
}

func TestDeletePaymentReportsUnknownID(t *testing.T) {
	service := NewPaymentService(&fakePaymentRepo{}, &fakeClientLookup{})

	err := service.Delete(99)
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}
