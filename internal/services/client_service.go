package services

import (
	"errors"
	"strings"
	"time"

	"github.com/andresouzadev/sindigo/internal/models"
)

var (
	ErrClientNameRequired = errors.New("client full name required")
	ErrClientCPFRequired  = errors.New("client cpf required")
	ErrClientNotFound     = errors.New("client not found")
	ErrInvalidStatus      = errors.New("invalid client status")
)

type ClientRepositoryPort interface {
	List() ([]models.Client, error)
	ListByStatus(status string) ([]models.Client, error)
	FindByID(clientID uint) (*models.Client, error)
	Count() (int64, error)
	Create(client *models.Client) error
	Update(clientID uint, updates map[string]any) (int64, error)
	DeleteClientAndRelations(clientID uint) error
}

type ClientInput struct {
	FullName        string
	CPF             string
	RG              string
	Address         string
	Phone           string
	Email           string
	AffiliationDate string
	Status          string
	Photo           string
}

type ClientService struct {
	clients ClientRepositoryPort
}

func NewClientService(clients ClientRepositoryPort) *ClientService {
	return &ClientService{clients: clients}
}

func validStatus(status string) bool {
	switch status {
	case models.ClientStatusActive, models.ClientStatusInactive, models.ClientStatusSuspended:
		return true
	}
	return false
}

func (service *ClientService) List() ([]models.Client, error) {
	return service.clients.List()
}

func (service *ClientService) FindByID(clientID uint) (*models.Client, error) {
	return service.clients.FindByID(clientID)
}

func (service *ClientService) Count() (int64, error) {
	return service.clients.Count()
}

// Register creates a client, stamping both timestamps at call time.
// A duplicate CPF surfaces as db.ErrDuplicate from the store.
func (service *ClientService) Register(input ClientInput) (*models.Client, error) {
	if strings.TrimSpace(input.FullName) == "" {
		return nil, ErrClientNameRequired
	}
	if strings.TrimSpace(input.CPF) == "" {
		return nil, ErrClientCPFRequired
	}
	status := input.Status
	if status == "" {
		status = models.ClientStatusActive
	}
	if !validStatus(status) {
		return nil, ErrInvalidStatus
	}

	now := time.Now()
	client := models.Client{
		FullName:        strings.TrimSpace(input.FullName),
		CPF:             strings.TrimSpace(input.CPF),
		RG:              strings.TrimSpace(input.RG),
		Address:         strings.TrimSpace(input.Address),
		Phone:           strings.TrimSpace(input.Phone),
		Email:           strings.TrimSpace(input.Email),
		AffiliationDate: input.AffiliationDate,
		Status:          status,
		Photo:           input.Photo,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := service.clients.Create(&client); err != nil {
		return nil, err
	}
	return &client, nil
}

// Update applies a partial update and stamps updated_at. An unknown id is
// reported as ErrClientNotFound so the caller can answer 404 instead of
// silently succeeding.
func (service *ClientService) Update(clientID uint, updates map[string]any) error {
	if status, present := updates["status"]; present {
		value, _ := status.(string)
		if !validStatus(value) {
			return ErrInvalidStatus
		}
	}
	updates["updated_at"] = time.Now()

	affected, err := service.clients.Update(clientID, updates)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrClientNotFound
	}
	return nil
}

// Delete is the cascading delete: the client and all dependent rows go in
// one transaction. There is no direct single-row client delete on purpose.
func (service *ClientService) Delete(clientID uint) error {
	client, err := service.clients.FindByID(clientID)
	if err != nil {
		return err
	}
	if client == nil {
		return ErrClientNotFound
	}
	return service.clients.DeleteClientAndRelations(clientID)
}
