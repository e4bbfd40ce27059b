package db

import (
	"gorm.io/gorm"

	"github.com/andresouzadev/sindigo/internal/models"
)

type ExpenseRepository struct {
	database *gorm.DB
}

func NewExpenseRepository(database *gorm.DB) *ExpenseRepository {
	return &ExpenseRepository{database: database}
}

func (repo *ExpenseRepository) List() ([]models.Expense, error) {
	return GetAll[models.Expense](repo.database.Order("date DESC, id DESC"))
}

func (repo *ExpenseRepository) FindByID(expenseID uint) (*models.Expense, error) {
	return GetByID[models.Expense](repo.database, expenseID)
}

// ListByMonth returns expenses whose date falls inside the YYYY-MM month.
func (repo *ExpenseRepository) ListByMonth(month string) ([]models.Expense, error) {
	return GetAll[models.Expense](repo.database.Where("date LIKE ?", month+"-%").Order("date"))
}

func (repo *ExpenseRepository) Create(expense *models.Expense) error {
	return Insert(repo.database, expense)
}

func (repo *ExpenseRepository) Update(expenseID uint, updates map[string]any) (int64, error) {
	return UpdateByID[models.Expense](repo.database, expenseID, updates)
}

func (repo *ExpenseRepository) Delete(expenseID uint) (int64, error) {
	return DeleteByID[models.Expense](repo.database, expenseID)
}
