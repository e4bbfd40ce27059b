package services

import (
	"errors"
	"strings"
	"time"

	"github.com/andresouzadev/sindigo/internal/models"
)

var (
	ErrDocumentNameRequired = errors.New("document name required")
	ErrDocumentEmpty        = errors.New("document content empty")
	ErrDocumentNotFound     = errors.New("document not found")
)

// MaxDocumentSize caps uploaded attachments. Scanned IDs and contracts sit
// well below this; anything bigger is almost certainly a mistake.
const MaxDocumentSize = 10 << 20

var ErrDocumentTooLarge = errors.New("document exceeds size limit")

type DocumentRepositoryPort interface {
	ListByClient(clientID uint) ([]models.Document, error)
	FindByID(documentID uint) (*models.Document, error)
	Create(document *models.Document) error
	Delete(documentID uint) (int64, error)
}

type DocumentClientReader interface {
	FindByID(clientID uint) (*models.Client, error)
}

type DocumentService struct {
	documents DocumentRepositoryPort
	clients   DocumentClientReader
}

func NewDocumentService(documents DocumentRepositoryPort, clients DocumentClientReader) *DocumentService {
	return &DocumentService{documents: documents, clients: clients}
}

func (service *DocumentService) ListByClient(clientID uint) ([]models.Document, error) {
	return service.documents.ListByClient(clientID)
}

func (service *DocumentService) FindByID(documentID uint) (*models.Document, error) {
	return service.documents.FindByID(documentID)
}

func (service *DocumentService) Attach(clientID uint, name string, contentType string, content []byte) (*models.Document, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrDocumentNameRequired
	}
	if len(content) == 0 {
		return nil, ErrDocumentEmpty
	}
	if len(content) > MaxDocumentSize {
		return nil, ErrDocumentTooLarge
	}

	client, err := service.clients.FindByID(clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, ErrClientNotFound
	}

	document := models.Document{
		ClientID:    clientID,
		Name:        strings.TrimSpace(name),
		ContentType: contentType,
		Content:     content,
		CreatedAt:   time.Now(),
	}
	if err := service.documents.Create(&document); err != nil {
		return nil, err
	}
	return &document, nil
}

func (service *DocumentService) Delete(documentID uint) error {
	affected, err := service.documents.Delete(documentID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrDocumentNotFound
	}
	return nil
}
