package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresouzadev/sindigo/internal/models"
)

type capturingReceiptRenderer struct {
	data ReceiptData
}

func (r *capturingReceiptRenderer) Render(data ReceiptData) ([]byte, error) {
	r.data = data
	return []byte("%PDF"), nil
}

func TestIssueReceiptAssemblesDisplayData(t *testing.T) {
	renderer := &capturingReceiptRenderer{}
	payments := &fakePaymentRepo{payments: []models.Payment{{
		ID:           1,
		ClientID:     3,
		Reference:    "2024-03",
		PaymentDate:  "2024-03-05",
		Amount:       decimal.NewFromFloat(25.50),
		RegisteredBy: "admin",
	}}}
	clients := &fakeClientLookup{clients: []models.Client{{
		ID: 3, FullName: "Josefa Maria", CPF: "321.654.987-00",
	}}}
	settings := &fakeSettings{values: models.DefaultSettings()}
	service := NewReceiptService(payments, clients, settings, renderer)

	document, err := service.Issue(1)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), document)

	assert.Equal(t, "Josefa Maria", renderer.data.ClientName)
	assert.Equal(t, "03/2024", renderer.data.Reference, "reference flips to MM/YYYY for display")
	assert.Equal(t, "05/03/2024", renderer.data.PaymentDate)
	assert.Equal(t, "admin", renderer.data.RegisteredBy)
	assert.Contains(t, renderer.data.SyndicateName, "SINDICATO")
}

func TestIssueReceiptUnknownPaymentFails(t *testing.T) {
	service := NewReceiptService(&fakePaymentRepo{}, &fakeClientLookup{}, &fakeSettings{values: map[string]any{}}, &capturingReceiptRenderer{})

	_, err := service.Issue(123)
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}
