package services

import (
	"errors"
	"strings"
	"time"

	"github.com/andresouzadev/sindigo/internal/models"
)

var ErrAttendanceNotesRequired = errors.New("attendance notes required")

type AttendanceRepositoryPort interface {
	ListByClient(clientID uint) ([]models.Attendance, error)
	Create(attendance *models.Attendance) error
}

type AttendanceClientReader interface {
	FindByID(clientID uint) (*models.Client, error)
}

type AttendanceService struct {
	attendances AttendanceRepositoryPort
	clients     AttendanceClientReader
}

func NewAttendanceService(attendances AttendanceRepositoryPort, clients AttendanceClientReader) *AttendanceService {
	return &AttendanceService{attendances: attendances, clients: clients}
}

func (service *AttendanceService) ListByClient(clientID uint) ([]models.Attendance, error) {
	return service.attendances.ListByClient(clientID)
}

// Record appends one attendance note. Entries are never edited or removed
// individually; they only disappear with the owning client.
func (service *AttendanceService) Record(clientID uint, notes string, createdBy string) (*models.Attendance, error) {
	if strings.TrimSpace(notes) == "" {
		return nil, ErrAttendanceNotesRequired
	}

	client, err := service.clients.FindByID(clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, ErrClientNotFound
	}

	attendance := models.Attendance{
		ClientID:  clientID,
		Notes:     strings.TrimSpace(notes),
		CreatedBy: createdBy,
		CreatedAt: time.Now(),
	}
	if err := service.attendances.Create(&attendance); err != nil {
		return nil, err
	}
	return &attendance, nil
}
