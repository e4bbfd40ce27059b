package db

import (
	"gorm.io/gorm"

	"github.com/andresouzadev/sindigo/internal/models"
)

type AttendanceRepository struct {
	database *gorm.DB
}

func NewAttendanceRepository(database *gorm.DB) *AttendanceRepository {
	return &AttendanceRepository{database: database}
}

func (repo *AttendanceRepository) ListByClient(clientID uint) ([]models.Attendance, error) {
	return GetAll[models.Attendance](repo.database.Where("client_id = ?", clientID).Order("created_at DESC"))
}

func (repo *AttendanceRepository) Create(attendance *models.Attendance) error {
	return Insert(repo.database, attendance)
}
