package services

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/andresouzadev/sindigo/internal/models"
)

var (
	ErrExpenseDescriptionRequired = errors.New("expense description required")
	ErrExpenseNotFound            = errors.New("expense not found")
	ErrInvalidDate                = errors.New("date must be YYYY-MM-DD")
)

type ExpenseRepositoryPort interface {
	List() ([]models.Expense, error)
	FindByID(expenseID uint) (*models.Expense, error)
	ListByMonth(month string) ([]models.Expense, error)
	Create(expense *models.Expense) error
	Update(expenseID uint, updates map[string]any) (int64, error)
	Delete(expenseID uint) (int64, error)
}

type ExpenseInput struct {
	Description string
	Category    string
	Amount      decimal.Decimal
	Date        string
}

type ExpenseService struct {
	expenses ExpenseRepositoryPort
}

func NewExpenseService(expenses ExpenseRepositoryPort) *ExpenseService {
	return &ExpenseService{expenses: expenses}
}

func (service *ExpenseService) List() ([]models.Expense, error) {
	return service.expenses.List()
}

func (service *ExpenseService) ListByMonth(month string) ([]models.Expense, error) {
	return service.expenses.ListByMonth(month)
}

func (service *ExpenseService) Register(input ExpenseInput) (*models.Expense, error) {
	if strings.TrimSpace(input.Description) == "" {
		return nil, ErrExpenseDescriptionRequired
	}
	if !input.Amount.IsPositive() {
		return nil, ErrAmountNotPositive
	}
	if _, err := time.Parse("2006-01-02", input.Date); err != nil {
		return nil, ErrInvalidDate
	}

	expense := models.Expense{
		Description: strings.TrimSpace(input.Description),
		Category:    strings.TrimSpace(input.Category),
		Amount:      input.Amount,
		Date:        input.Date,
		CreatedAt:   time.Now(),
	}
	if err := service.expenses.Create(&expense); err != nil {
		return nil, err
	}
	return &expense, nil
}

func (service *ExpenseService) Update(expenseID uint, updates map[string]any) error {
	affected, err := service.expenses.Update(expenseID, updates)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrExpenseNotFound
	}
	return nil
}

func (service *ExpenseService) Delete(expenseID uint) error {
	affected, err := service.expenses.Delete(expenseID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrExpenseNotFound
	}
	return nil
}
