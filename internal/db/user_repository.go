package db

import (
	"errors"

	"gorm.io/gorm"

	"github.com/andresouzadev/sindigo/internal/models"
)

type UserRepository struct {
	database *gorm.DB
}

func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{database: database}
}

func (repo *UserRepository) List() ([]models.User, error) {
	return GetAll[models.User](repo.database.Order("username"))
}

func (repo *UserRepository) FindByID(userID uint) (*models.User, error) {
	return GetByID[models.User](repo.database, userID)
}

// FindByUsername matches case-insensitively and returns nil when no account
// exists, mirroring the lookup the login flow depends on.
func (repo *UserRepository) FindByUsername(username string) (*models.User, error) {
	var user models.User
	err := repo.database.Where("lower(trim(username)) = lower(trim(?))", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (repo *UserRepository) Count() (int64, error) {
	return Count[models.User](repo.database)
}

func (repo *UserRepository) Create(user *models.User) error {
	return Insert(repo.database, user)
}

func (repo *UserRepository) Update(userID uint, updates map[string]any) (int64, error) {
	return UpdateByID[models.User](repo.database, userID, updates)
}

func (repo *UserRepository) Delete(userID uint) (int64, error) {
	return DeleteByID[models.User](repo.database, userID)
}
