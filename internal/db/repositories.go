package db

import "gorm.io/gorm"

type Repositories struct {
	Clients      *ClientRepository
	Payments     *PaymentRepository
	Declarations *DeclarationRepository
	Expenses     *ExpenseRepository
	Documents    *DocumentRepository
	Attendances  *AttendanceRepository
	Settings     *SettingRepository
	Users        *UserRepository
	Maintenance  *MaintenanceRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Clients:      NewClientRepository(database),
		Payments:     NewPaymentRepository(database),
		Declarations: NewDeclarationRepository(database),
		Expenses:     NewExpenseRepository(database),
		Documents:    NewDocumentRepository(database),
		Attendances:  NewAttendanceRepository(database),
		Settings:     NewSettingRepository(database),
		Users:        NewUserRepository(database),
		Maintenance:  NewMaintenanceRepository(database),
	}
}
