package services

import (
	"github.com/andresouzadev/sindigo/internal/models"
)

type SettingRepositoryPort interface {
	List() ([]models.Setting, error)
	Get(key string) (*models.Setting, error)
	GetString(key string) (string, error)
	Upsert(key string, value any) error
	StringValues() (map[string]string, error)
}

// SyndicateProfile is the organization identity shown on letterheads.
type SyndicateProfile struct {
	Name      string `json:"name"`
	CNPJ      string `json:"cnpj"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	Signature string `json:"signature"` // base64 image, may be empty
}

type SettingsService struct {
	settings SettingRepositoryPort
}

func NewSettingsService(settings SettingRepositoryPort) *SettingsService {
	return &SettingsService{settings: settings}
}

func (service *SettingsService) List() ([]models.Setting, error) {
	return service.settings.List()
}

func (service *SettingsService) Get(key string) (*models.Setting, error) {
	return service.settings.Get(key)
}

func (service *SettingsService) Upsert(key string, value any) error {
	return service.settings.Upsert(key, value)
}

func (service *SettingsService) Profile() (SyndicateProfile, error) {
	values, err := service.settings.StringValues()
	if err != nil {
		return SyndicateProfile{}, err
	}
	return SyndicateProfile{
		Name:      values[models.SettingSyndicateName],
		CNPJ:      values[models.SettingSyndicateCNPJ],
		Address:   values[models.SettingSyndicateAddress],
		Phone:     values[models.SettingSyndicatePhone],
		Signature: values[models.SettingSyndicateSignature],
	}, nil
}
