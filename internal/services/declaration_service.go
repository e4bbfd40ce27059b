package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/andresouzadev/sindigo/internal/models"
)

var (
	ErrNoPayments         = errors.New("client has no registered payments")
	ErrTemplateMissing    = errors.New("declaration template not configured")
	ErrUnknownDeclaration = errors.New("unknown declaration kind")
)

// monthNames maps month numbers to their Portuguese names, used when a
// payment reference like "2024-03" is written out as "março de 2024".
var monthNames = [13]string{
	"", "janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// DeclarationDocument is everything the PDF renderer needs to lay out one
// declaration: letterhead identity, title, the substituted HTML body and
// the city/date line.
type DeclarationDocument struct {
	Profile   SyndicateProfile
	Title     string
	BodyHTML  string
	DateLine  string
	Signature string // base64 image, empty renders a plain signature line
}

// DeclarationRenderer turns a document into PDF bytes. The service never
// touches layout; the renderer never touches templates or the store.
type DeclarationRenderer interface {
	Render(document DeclarationDocument) ([]byte, error)
}

type DeclarationLogPort interface {
	List() ([]models.DeclarationLog, error)
	ListByClient(clientID uint) ([]models.DeclarationLog, error)
	Count() (int64, error)
	Append(entry *models.DeclarationLog) error
}

type DeclarationClientReader interface {
	FindByID(clientID uint) (*models.Client, error)
}

type DeclarationPaymentReader interface {
	LastByClient(clientID uint) (*models.Payment, error)
}

type DeclarationSettingsReader interface {
	GetString(key string) (string, error)
	StringValues() (map[string]string, error)
}

type DeclarationService struct {
	log      DeclarationLogPort
	clients  DeclarationClientReader
	payments DeclarationPaymentReader
	settings DeclarationSettingsReader
	renderer DeclarationRenderer
	now      func() time.Time
}

func NewDeclarationService(
	log DeclarationLogPort,
	clients DeclarationClientReader,
	payments DeclarationPaymentReader,
	settings DeclarationSettingsReader,
	renderer DeclarationRenderer,
) *DeclarationService {
	return &DeclarationService{
		log:      log,
		clients:  clients,
		payments: payments,
		settings: settings,
		renderer: renderer,
		now:      time.Now,
	}
}

func (service *DeclarationService) History() ([]models.DeclarationLog, error) {
	return service.log.List()
}

func (service *DeclarationService) HistoryByClient(clientID uint) ([]models.DeclarationLog, error) {
	return service.log.ListByClient(clientID)
}

// Issue generates a declaration PDF for the client and appends one entry to
// the audit log. The log entry is written only after the renderer succeeds,
// so a failed render leaves no trace of an issued document.
func (service *DeclarationService) Issue(clientID uint, kind string) ([]byte, error) {
	client, err := service.clients.FindByID(clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, ErrClientNotFound
	}

	var title, body string
	switch kind {
	case models.DeclarationKindMembership:
		title, body, err = service.membershipBody(client)
	case models.DeclarationKindPaymentStatus:
		title, body, err = service.paymentStatusBody(client)
	default:
		return nil, ErrUnknownDeclaration
	}
	if err != nil {
		return nil, err
	}

	profile, err := service.profile()
	if err != nil {
		return nil, err
	}

	issuedAt := service.now()
	document := DeclarationDocument{
		Profile:   profile,
		Title:     title,
		BodyHTML:  body,
		DateLine:  dateLine(issuedAt),
		Signature: profile.Signature,
	}
	rendered, err := service.renderer.Render(document)
	if err != nil {
		return nil, fmt.Errorf("render declaration: %w", err)
	}

	entry := models.DeclarationLog{
		ClientID:  clientID,
		Kind:      kind,
		IssueDate: issuedAt.Format("2006-01-02"),
		CreatedAt: issuedAt,
	}
	if err := service.log.Append(&entry); err != nil {
		return nil, err
	}
	return rendered, nil
}

func (service *DeclarationService) membershipBody(client *models.Client) (string, string, error) {
	template, err := service.settings.GetString(models.SettingDeclarationTemplate)
	if err != nil {
		return "", "", err
	}
	if template == "" {
		return "", "", ErrTemplateMissing
	}
	body := substitute(template, map[string]string{
		"NOME_ASSOCIADO": client.FullName,
		"CPF":            client.CPF,
		"RG":             client.RG,
		"DATA_FILIACAO":  brazilianDate(client.AffiliationDate),
	})
	return "DECLARAÇÃO DE FILIAÇÃO", body, nil
}

func (service *DeclarationService) paymentStatusBody(client *models.Client) (string, string, error) {
	template, err := service.settings.GetString(models.SettingPaymentDeclarationTemplate)
	if err != nil {
		return "", "", err
	}
	if template == "" {
		return "", "", ErrTemplateMissing
	}

	last, err := service.payments.LastByClient(client.ID)
	if err != nil {
		return "", "", err
	}
	if last == nil {
		return "", "", ErrNoPayments
	}
	month, year := referenceParts(last.Reference)

	body := substitute(template, map[string]string{
		"NOME_ASSOCIADO":       client.FullName,
		"CPF":                  client.CPF,
		"RG":                   client.RG,
		"DATA_FILIACAO":        brazilianDate(client.AffiliationDate),
		"MES_ULTIMO_PAGAMENTO": month,
		"ANO_ULTIMO_PAGAMENTO": year,
	})
	return "DECLARAÇÃO DE QUITAÇÃO", body, nil
}

func (service *DeclarationService) profile() (SyndicateProfile, error) {
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

func substitute(template string, tokens map[string]string) string {
	result := template
	for token, value := range tokens {
		result = strings.ReplaceAll(result, "{{"+token+"}}", value)
	}
	return result
}

// referenceParts splits a YYYY-MM reference into the Portuguese month name
// and the year. A malformed reference falls back to the raw string so a
// broken row still produces a readable document.
func referenceParts(reference string) (string, string) {
	year, monthDigits, found := strings.Cut(reference, "-")
	if !found {
		return reference, ""
	}
	month, err := strconv.Atoi(monthDigits)
	if err != nil || month < 1 || month > 12 {
		return reference, year
	}
	return monthNames[month], year
}

// brazilianDate rewrites YYYY-MM-DD as DD/MM/YYYY; anything else passes
// through unchanged.
func brazilianDate(date string) string {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return parsed.Format("02/01/2006")
}

// dateLine renders the city/date footer, e.g.
// "Indiaroba/SE, 15 de março de 2026".
func dateLine(at time.Time) string {
	return fmt.Sprintf("Indiaroba/SE, %d de %s de %d", at.Day(), monthNames[int(at.Month())], at.Year())
}
