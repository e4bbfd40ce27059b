// Package api exposes the application over a JSON HTTP API. Handlers stay
// thin: they decode input, call one service and translate the outcome into
// a status code. All domain rules live in the services.
package api

import (
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/andresouzadev/sindigo/internal/db"
	"github.com/andresouzadev/sindigo/internal/pdf"
	"github.com/andresouzadev/sindigo/internal/services"
	"github.com/andresouzadev/sindigo/pkg/config"
)

type Handler struct {
	db  *gorm.DB
	log zerolog.Logger
	jwt config.JWTConfig

	repositories       *db.Repositories
	authService        *services.AuthService
	clientService      *services.ClientService
	paymentService     *services.PaymentService
	declarationService *services.DeclarationService
	receiptService     *services.ReceiptService
	expenseService     *services.ExpenseService
	documentService    *services.DocumentService
	attendanceService  *services.AttendanceService
	settingsService    *services.SettingsService
	adminService       *services.AdminService
	reportService      *services.ReportService
}

func NewHandler(database *gorm.DB, jwtConfig config.JWTConfig, log zerolog.Logger) *Handler {
	handler := &Handler{
		db:  database,
		log: log,
		jwt: jwtConfig,
	}
	return handler.withDependencies(database)
}

func (handler *Handler) withDependencies(database *gorm.DB) *Handler {
	repositories := db.NewRepositories(database)
	handler.repositories = repositories
	handler.authService = services.NewAuthService(repositories.Users)
	handler.clientService = services.NewClientService(repositories.Clients)
	handler.paymentService = services.NewPaymentService(repositories.Payments, repositories.Clients)
	handler.declarationService = services.NewDeclarationService(
		repositories.Declarations,
		repositories.Clients,
		repositories.Payments,
		repositories.Settings,
		pdf.NewDeclarationPDF(),
	)
	handler.receiptService = services.NewReceiptService(
		repositories.Payments,
		repositories.Clients,
		repositories.Settings,
		pdf.NewReceiptPDF(),
	)
	handler.expenseService = services.NewExpenseService(repositories.Expenses)
	handler.documentService = services.NewDocumentService(repositories.Documents, repositories.Clients)
	handler.attendanceService = services.NewAttendanceService(repositories.Attendances, repositories.Clients)
	handler.settingsService = services.NewSettingsService(repositories.Settings)
	handler.adminService = services.NewAdminService(repositories.Users, repositories.Maintenance)
	handler.reportService = services.NewReportService(repositories.Payments, repositories.Clients, repositories.Expenses)
	return handler
}
