package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresouzadev/sindigo/internal/models"
)

type fakeDeclarationLog struct {
	entries []models.DeclarationLog
}

func (f *fakeDeclarationLog) List() ([]models.DeclarationLog, error) { return f.entries, nil }

func (f *fakeDeclarationLog) ListByClient(clientID uint) ([]models.DeclarationLog, error) {
	result := make([]models.DeclarationLog, 0)
	for _, entry := range f.entries {
		if entry.ClientID == clientID {
			result = append(result, entry)
		}
	}
	return result, nil
}

func (f *fakeDeclarationLog) Count() (int64, error) { return int64(len(f.entries)), nil }

func (f *fakeDeclarationLog) Append(entry *models.DeclarationLog) error {
	entry.ID = uint(len(f.entries) + 1)
	f.entries = append(f.entries, *entry)
	return nil
}

type fakeSettings struct {
	values map[string]any
}

func (f *fakeSettings) GetString(key string) (string, error) {
	raw, exists := f.values[key]
	if !exists {
		return "", nil
	}
	encoded, err := json.Marshal(raw)
	if err != nil {
		return "", err
	}
	var value string
	if err := json.Unmarshal(encoded, &value); err != nil {
		return "", err
	}
	return value, nil
}

func (f *fakeSettings) StringValues() (map[string]string, error) {
	result := make(map[string]string, len(f.values))
	for key := range f.values {
		value, err := f.GetString(key)
		if err != nil {
			continue
		}
		result[key] = value
	}
	return result, nil
}

type capturingRenderer struct {
	document DeclarationDocument
	output   []byte
	err      error
}

func (r *capturingRenderer) Render(document DeclarationDocument) ([]byte, error) {
	r.document = document
	if r.err != nil {
		return nil, r.err
	}
	if r.output == nil {
		return []byte("%PDF"), nil
	}
	return r.output, nil
}

func testDeclarationService(renderer DeclarationRenderer, log *fakeDeclarationLog, payments *fakePaymentRepo) *DeclarationService {
	clients := &fakeClientLookup{clients: []models.Client{{
		ID:              1,
		FullName:        "Maria Aparecida da Silva",
		CPF:             "123.456.789-00",
		RG:              "1.234.567",
		AffiliationDate: "2019-05-02",
	}}}
	settings := &fakeSettings{values: models.DefaultSettings()}
	service := NewDeclarationService(log, clients, payments, settings, renderer)
	service.now = func() time.Time { return time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC) }
	return service
}

func TestIssueMembershipSubstitutesTokensAndLogs(t *testing.T) {
	renderer := &capturingRenderer{}
	log := &fakeDeclarationLog{}
	service := testDeclarationService(renderer, log, &fakePaymentRepo{})

	document, err := service.Issue(1, models.DeclarationKindMembership)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), document)

	body := renderer.document.BodyHTML
	assert.Contains(t, body, "Maria Aparecida da Silva")
	assert.Contains(t, body, "123.456.789-00")
	assert.Contains(t, body, "1.234.567")
	assert.Contains(t, body, "02/05/2019")
	assert.NotContains(t, body, "{{")

	assert.Equal(t, "DECLARAÇÃO DE FILIAÇÃO", renderer.document.Title)
	assert.Equal(t, "Indiaroba/SE, 15 de março de 2026", renderer.document.DateLine)

	require.Len(t, log.entries, 1)
	assert.Equal(t, models.DeclarationKindMembership, log.entries[0].Kind)
	assert.Equal(t, "2026-03-15", log.entries[0].IssueDate)
}

func TestIssuePaymentStatusUsesLastPaymentReference(t *testing.T) {
	renderer := &capturingRenderer{}
	payments := &fakePaymentRepo{payments: []models.Payment{
		{ID: 1, ClientID: 1, Reference: "2025-07"},
		{ID: 2, ClientID: 1, Reference: "2025-11"},
	}}
	service := testDeclarationService(renderer, &fakeDeclarationLog{}, payments)

	_, err := service.Issue(1, models.DeclarationKindPaymentStatus)
	require.NoError(t, err)

	body := renderer.document.BodyHTML
	assert.Contains(t, body, "novembro de 2025")
	assert.Equal(t, "DECLARAÇÃO DE QUITAÇÃO", renderer.document.Title)
}

func TestIssuePaymentStatusWithoutPaymentsFails(t *testing.T) {
	renderer := &capturingRenderer{}
	log := &fakeDeclarationLog{}
	service := testDeclarationService(renderer, log, &fakePaymentRepo{})

	_, err := service.Issue(1, models.DeclarationKindPaymentStatus)
	assert.ErrorIs(t, err, ErrNoPayments)
	assert.Empty(t, log.entries, "failed issue must not log")
}

func TestIssueFailedRenderLeavesNoLogEntry(t *testing.T) {
	renderer := &capturingRenderer{err: assert.AnError}
	log := &fakeDeclarationLog{}
	service := testDeclarationService(renderer, log, &fakePaymentRepo{})

	_, err := service.Issue(1, models.DeclarationKindMembership)
	require.Error(t, err)
	assert.Empty(t, log.entries)
}

func TestIssueRejectsUnknownKindAndClient(t *testing.T) {
	service := testDeclarationService(&capturingRenderer{}, &fakeDeclarationLog{}, &fakePaymentRepo{})

	_, err := service.Issue(1, "certidão")
	assert.ErrorIs(t, err, ErrUnknownDeclaration)

	_, err = service.Issue(99, models.DeclarationKindMembership)
	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestReferencePartsFallsBackOnMalformedInput(t *testing.T) {
	month, year := referenceParts("2024-03")
	assert.Equal(t, "março", month)
	assert.Equal(t, "2024", year)

	month, year = referenceParts("garbage")
	assert.Equal(t, "garbage", month)
	assert.Equal(t, "", year)

	month, year = referenceParts("2024-99")
	assert.Equal(t, "2024-99", month)
	assert.Equal(t, "2024", year)
}
