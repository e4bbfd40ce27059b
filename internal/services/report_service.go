package services

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/andresouzadev/sindigo/internal/models"
)

type ReportPaymentReader interface {
	ListByReference(reference string) ([]models.Payment, error)
	List() ([]models.Payment, error)
}

type ReportClientReader interface {
	List() ([]models.Client, error)
	ListByStatus(status string) ([]models.Client, error)
}

type ReportExpenseReader interface {
	List() ([]models.Expense, error)
	ListByMonth(month string) ([]models.Expense, error)
}

// DuesReport splits the active membership for one reference month into the
// members who paid it and the ones who did not. Inactive and suspended
// members are not billed, so they appear in neither list.
type DuesReport struct {
	Reference  string           `json:"reference"`
	Paid       []DuesReportLine `json:"paid"`
	Delinquent []models.Client  `json:"delinquent"`
	Total      decimal.Decimal  `json:"total"`
}

type DuesReportLine struct {
	Client  models.Client   `json:"client"`
	Payment models.Payment  `json:"payment"`
	Amount  decimal.Decimal `json:"amount"`
}

// BalanceReport is the monthly cash-flow summary: dues collected minus
// expenses recorded for the same month.
type BalanceReport struct {
	Month        string          `json:"month"`
	Income       decimal.Decimal `json:"income"`
	Expenses     decimal.Decimal `json:"expenses"`
	Net          decimal.Decimal `json:"net"`
	PaymentCount int             `json:"paymentCount"`
	ExpenseCount int             `json:"expenseCount"`
}

type ReportService struct {
	payments ReportPaymentReader
	clients  ReportClientReader
	expenses ReportExpenseReader
}

func NewReportService(payments ReportPaymentReader, clients ReportClientReader, expenses ReportExpenseReader) *ReportService {
	return &ReportService{payments: payments, clients: clients, expenses: expenses}
}

// Dues builds the paid/delinquent report for one YYYY-MM reference.
func (service *ReportService) Dues(reference string) (*DuesReport, error) {
	if !ValidReference(reference) {
		return nil, ErrInvalidReference
	}

	active, err := service.clients.ListByStatus(models.ClientStatusActive)
	if err != nil {
		return nil, err
	}
	payments, err := service.payments.ListByReference(reference)
	if err != nil {
		return nil, err
	}

	paidByClient := make(map[uint]models.Payment, len(payments))
	for _, payment := range payments {
		paidByClient[payment.ClientID] = payment
	}

	report := DuesReport{
		Reference:  reference,
		Paid:       []DuesReportLine{},
		Delinquent: []models.Client{},
		Total:      decimal.Zero,
	}
	for _, client := range active {
		payment, paid := paidByClient[client.ID]
		if paid {
			report.Paid = append(report.Paid, DuesReportLine{
				Client:  client,
				Payment: payment,
				Amount:  payment.Amount,
			})
			report.Total = report.Total.Add(payment.Amount)
			continue
		}
		report.Delinquent = append(report.Delinquent, client)
	}
	return &report, nil
}

// Balance sums dues income against expenses for one YYYY-MM month. Income is
// grouped by payment reference, matching how members think about the month a
// payment covers rather than the day the money arrived.
func (service *ReportService) Balance(month string) (*BalanceReport, error) {
	if !ValidReference(month) {
		return nil, ErrInvalidReference
	}

	payments, err := service.payments.ListByReference(month)
	if err != nil {
		return nil, err
	}
	expenses, err := service.expenses.ListByMonth(month)
	if err != nil {
		return nil, err
	}

	report := BalanceReport{
		Month:        month,
		Income:       decimal.Zero,
		Expenses:     decimal.Zero,
		PaymentCount: len(payments),
		ExpenseCount: len(expenses),
	}
	for _, payment := range payments {
		report.Income = report.Income.Add(payment.Amount)
	}
	for _, expense := range expenses {
		report.Expenses = report.Expenses.Add(expense.Amount)
	}
	report.Net = report.Income.Sub(report.Expenses)
	return &report, nil
}

// ClientsCSV exports the full member registry as a CSV document with a
// header row, suitable for spreadsheets.
func (service *ReportService) ClientsCSV() ([]byte, error) {
	clients, err := service.clients.List()
	if err != nil {
		return nil, err
	}

	var buffer bytes.Buffer
	writer := csv.NewWriter(&buffer)
	header := []string{"id", "full_name", "cpf", "rg", "address", "phone", "email", "affiliation_date", "status"}
	if err := writer.Write(header); err != nil {
		return nil, err
	}
	for _, client := range clients {
		record := []string{
			fmt.Sprintf("%d", client.ID),
			client.FullName,
			client.CPF,
			client.RG,
			client.Address,
			client.Phone,
			client.Email,
			client.AffiliationDate,
			client.Status,
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// PaymentsCSV exports every payment with the owning client's name resolved.
func (service *ReportService) PaymentsCSV() ([]byte, error) {
	clients, err := service.clients.List()
	if err != nil {
		return nil, err
	}
	names := make(map[uint]string, len(clients))
	for _, client := range clients {
		names[client.ID] = client.FullName
	}

	payments, err := service.payments.List()
	if err != nil {
		return nil, err
	}

	var buffer bytes.Buffer
	writer := csv.NewWriter(&buffer)
	header := []string{"id", "client_id", "client_name", "reference", "payment_date", "amount", "registered_by"}
	if err := writer.Write(header); err != nil {
		return nil, err
	}
	for _, payment := range payments {
		record := []string{
			fmt.Sprintf("%d", payment.ID),
			fmt.Sprintf("%d", payment.ClientID),
			names[payment.ClientID],
			payment.Reference,
			payment.PaymentDate,
			payment.Amount.StringFixed(2),
			payment.RegisteredBy,
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// ExpensesCSV exports the full expense ledger.
func (service *ReportService) ExpensesCSV() ([]byte, error) {
	expenses, err := service.expenses.List()
	if err != nil {
		return nil, err
	}

	var buffer bytes.Buffer
	writer := csv.NewWriter(&buffer)
	header := []string{"id", "description", "category", "amount", "date"}
	if err := writer.Write(header); err != nil {
		return nil, err
	}
	for _, expense := range expenses {
		record := []string{
			fmt.Sprintf("%d", expense.ID),
			expense.Description,
			expense.Category,
			expense.Amount.StringFixed(2),
			expense.Date,
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
