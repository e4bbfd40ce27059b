package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresouzadev/sindigo/internal/models"
)

type fakeClientRepo struct {
	clients []models.Client
	nextID  uint
	deleted []uint
}

func (f *fakeClientRepo) List() ([]models.Client, error) { return f.clients, nil }

func (f *fakeClientRepo) ListByStatus(status string) ([]models.Client, error) {
	result := make([]models.Client, 0)
	for _, client := range f.clients {
		if client.Status == status {
			result = append(result, client)
		}
	}
	return result, nil
}

func (f *fakeClientRepo) FindByID(clientID uint) (*models.Client, error) {
	for index := range f.clients {
		if f.clients[index].ID == clientID {
			return &f.clients[index], nil
		}
	}
	return nil, nil
}

func (f *fakeClientRepo) Count() (int64, error) { return int64(len(f.clients)), nil }

func (f *fakeClientRepo) Create(client *models.Client) error {
	f.nextID++
	client.ID = f.nextID
	f.clients = append(f.clients, *client)
	return nil
}

func (f *fakeClientRepo) Update(clientID uint, updates map[string]any) (int64, error) {
	for index := range f.clients {
		if f.clients[index].ID == clientID {
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakeClientRepo) DeleteClientAndRelations(clientID uint) error {
	f.deleted = append(f.deleted, clientID)
	for index := range f.clients {
		if f.clients[index].ID == clientID {
			f.clients = append(f.clients[:index], f.clients[index+1:]...)
			break
		}
	}
	return nil
}

func TestRegisterClientValidatesRequiredFields(t *testing.T) {
	service := NewClientService(&fakeClientRepo{})

	_, err := service.Register(ClientInput{FullName: "  ", CPF: "123"})
	assert.ErrorIs(t, err, ErrClientNameRequired)

	_, err = service.Register(ClientInput{FullName: "Maria", CPF: "   "})
	assert.ErrorIs(t, err, ErrClientCPFRequired)

	_, err = service.Register(ClientInput{FullName: "Maria", CPF: "123", Status: "Pendente"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestRegisterClientDefaultsToActiveAndTrims(t *testing.T) {
	service := NewClientService(&fakeClientRepo{})

	client, err := service.Register(ClientInput{
		FullName: "  Maria das Graças  ",
		CPF:      " 123.456.789-00 ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Maria das Graças", client.FullName)
	assert.Equal(t, "123.456.789-00", client.CPF)
	assert.Equal(t, models.ClientStatusActive, client.Status)
	assert.False(t, client.CreatedAt.IsZero())
	assert.Equal(t, client.CreatedAt, client.UpdatedAt)
}

func TestUpdateClientUnknownIDIsNotFound(t *testing.T) {
	service := NewClientService(&fakeClientRepo{})

	err := service.Update(42, map[string]any{"phone": "(79) 99999-0000"})
	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestUpdateClientValidatesStatus(t *testing.T) {
	repo := &fakeClientRepo{clients: []models.Client{{ID: 1, Status: models.ClientStatusActive}}}
	service := NewClientService(repo)

	err := service.Update(1, map[string]any{"status": "Desligado"})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	require.NoError(t, service.Update(1, map[string]any{"status": models.ClientStatusSuspended}))
}

func TestDeleteClientGoesThroughCascade(t *testing.T) {
	repo := &fakeClientRepo{clients: []models.Client{{ID: 1, FullName: "Maria"}}}
	service := NewClientService(repo)

	require.NoError(t, service.Delete(1))
	assert.Equal(t, []uint{1}, repo.deleted)

	err := service.Delete(99)
	assert.ErrorIs(t, err, ErrClientNotFound)
}
