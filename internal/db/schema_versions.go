package db

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/andresouzadev/sindigo/internal/models"
)

const (
	ddlClients = `
CREATE TABLE IF NOT EXISTS clients (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  full_name TEXT NOT NULL DEFAULT '',
  cpf TEXT NOT NULL,
  rg TEXT NOT NULL DEFAULT '',
  address TEXT NOT NULL DEFAULT '',
  phone TEXT NOT NULL DEFAULT '',
  email TEXT NOT NULL DEFAULT '',
  affiliation_date TEXT NOT NULL DEFAULT '',
  photo TEXT NOT NULL DEFAULT '',
  created_at DATETIME,
  updated_at DATETIME
)`
	ddlClientsCPFUnique  = `CREATE UNIQUE INDEX IF NOT EXISTS uidx_clients_cpf ON clients(cpf)`
	ddlClientsNameIndex  = `CREATE INDEX IF NOT EXISTS idx_clients_full_name ON clients(full_name)`
	ddlClientsStatusCol  = `ALTER TABLE clients ADD COLUMN status TEXT NOT NULL DEFAULT 'Active'`
	ddlClientsStatusIdx  = `CREATE INDEX IF NOT EXISTS idx_clients_status ON clients(status)`
	ddlPaymentsLegacy    = `
CREATE TABLE IF NOT EXISTS payments (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  client_id INTEGER NOT NULL,
  month_reference INTEGER,
  year_reference INTEGER,
  payment_date TEXT NOT NULL DEFAULT '',
  amount DECIMAL(10,2) NOT NULL DEFAULT 0,
  created_at DATETIME
)`
	ddlPaymentsLegacyUnique = `CREATE UNIQUE INDEX IF NOT EXISTS uidx_payments_client_month_year ON payments(client_id, month_reference, year_reference)`
	ddlPaymentsRegisteredBy = `ALTER TABLE payments ADD COLUMN registered_by TEXT NOT NULL DEFAULT ''`
	ddlPayments             = `
CREATE TABLE IF NOT EXISTS payments (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  client_id INTEGER NOT NULL,
  reference TEXT NOT NULL DEFAULT '',
  payment_date TEXT NOT NULL DEFAULT '',
  amount DECIMAL(10,2) NOT NULL DEFAULT 0,
  registered_by TEXT NOT NULL DEFAULT '',
  created_at DATETIME
)`
	ddlPaymentsReferenceUnique = `CREATE UNIQUE INDEX IF NOT EXISTS uidx_client_reference ON payments(client_id, reference)`
	ddlPaymentsClientIndex     = `CREATE INDEX IF NOT EXISTS idx_payments_client_id ON payments(client_id)`
	ddlDeclarations            = `
CREATE TABLE IF NOT EXISTS declarations (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  client_id INTEGER NOT NULL,
  issue_date TEXT NOT NULL DEFAULT '',
  created_at DATETIME
)`
	ddlDeclarationsClientIndex    = `CREATE INDEX IF NOT EXISTS idx_declarations_client_id ON declarations(client_id)`
	ddlDeclarationsCreatedAtIndex = `CREATE INDEX IF NOT EXISTS idx_declarations_created_at ON declarations(created_at)`
	ddlDeclarationsKindCol        = `ALTER TABLE declarations ADD COLUMN kind TEXT NOT NULL DEFAULT ''`
	ddlExpenses                   = `
CREATE TABLE IF NOT EXISTS expenses (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  description TEXT NOT NULL DEFAULT '',
  category TEXT NOT NULL DEFAULT '',
  amount DECIMAL(10,2) NOT NULL DEFAULT 0,
  date TEXT NOT NULL DEFAULT '',
  created_at DATETIME
)`
	ddlExpensesDateIndex = `CREATE INDEX IF NOT EXISTS idx_expenses_date ON expenses(date)`
	ddlDocuments         = `
CREATE TABLE IF NOT EXISTS documents (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  client_id INTEGER NOT NULL,
  name TEXT NOT NULL DEFAULT '',
  content_type TEXT NOT NULL DEFAULT '',
  content BLOB,
  created_at DATETIME
)`
	ddlDocumentsClientIndex = `CREATE INDEX IF NOT EXISTS idx_documents_client_id ON documents(client_id)`
	ddlSettings             = `
CREATE TABLE IF NOT EXISTS settings (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL DEFAULT ''
)`
	ddlUsers = `
CREATE TABLE IF NOT EXISTS users (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  username TEXT NOT NULL,
  password TEXT NOT NULL DEFAULT '',
  role TEXT NOT NULL DEFAULT 'user',
  created_at DATETIME
)`
	ddlUsersUsernameUnique = `CREATE UNIQUE INDEX IF NOT EXISTS uidx_users_username ON users(username)`
	ddlAttendances         = `
CREATE TABLE IF NOT EXISTS attendances (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  client_id INTEGER NOT NULL,
  notes TEXT NOT NULL DEFAULT '',
  created_by TEXT NOT NULL DEFAULT '',
  created_at DATETIME
)`
	ddlAttendancesClientIndex    = `CREATE INDEX IF NOT EXISTS idx_attendances_client_id ON attendances(client_id)`
	ddlAttendancesCreatedAtIndex = `CREATE INDEX IF NOT EXISTS idx_attendances_created_at ON attendances(created_at)`
)

// CurrentSchemaVersion is the version a fully migrated store reports; it is
// stamped into exported snapshots.
func CurrentSchemaVersion() int {
	steps := schemaVersions()
	return steps[len(steps)-1].Version
}

// schemaVersions returns the ordered migration sequence. Every step restates
// the complete table set valid as of that version.
func schemaVersions() []versionStep {
	return []versionStep{
		{
			Version: 1,
			Name:    "initial_schema",
			Schema: []string{
				ddlClients, ddlClientsCPFUnique, ddlClientsNameIndex,
				ddlPaymentsLegacy, ddlPaymentsLegacyUnique,
				ddlDeclarations, ddlDeclarationsClientIndex,
			},
			Tables: []string{"clients", "payments", "declarations"},
		},
		{
			Version: 2,
			Name:    "declarations_created_at_index",
			Schema: []string{
				ddlClients, ddlClientsCPFUnique, ddlClientsNameIndex,
				ddlPaymentsLegacy, ddlPaymentsLegacyUnique,
				ddlDeclarations, ddlDeclarationsClientIndex, ddlDeclarationsCreatedAtIndex,
			},
			Tables: []string{"clients", "payments", "declarations"},
		},
		{
			Version: 3,
			Name:    "expenses_documents_settings",
			Schema: []string{
				ddlClients, ddlClientsCPFUnique, ddlClientsNameIndex, ddlClientsStatusCol, ddlClientsStatusIdx,
				ddlPaymentsLegacy, ddlPaymentsLegacyUnique,
				ddlDeclarations, ddlDeclarationsClientIndex, ddlDeclarationsCreatedAtIndex,
				ddlExpenses, ddlExpensesDateIndex,
				ddlDocuments, ddlDocumentsClientIndex,
				ddlSettings,
			},
			Tables:    []string{"clients", "payments", "declarations", "expenses", "documents", "settings"},
			Transform: backfillClientStatus,
		},
		{
			Version: 4,
			Name:    "users_table",
			Schema: []string{
				ddlClients, ddlClientsCPFUnique, ddlClientsNameIndex, ddlClientsStatusCol, ddlClientsStatusIdx,
				ddlPaymentsLegacy, ddlPaymentsLegacyUnique,
				ddlDeclarations, ddlDeclarationsClientIndex, ddlDeclarationsCreatedAtIndex,
				ddlExpenses, ddlExpensesDateIndex,
				ddlDocuments, ddlDocumentsClientIndex,
				ddlSettings,
				ddlUsers, ddlUsersUsernameUnique,
			},
			Tables:    []string{"clients", "payments", "declarations", "expenses", "documents", "settings", "users"},
			Transform: seedUsersTransform,
		},
		{
			Version: 5,
			Name:    "payment_registered_by",
			Schema: []string{
				ddlClients, ddlClientsCPFUnique, ddlClientsNameIndex, ddlClientsStatusCol, ddlClientsStatusIdx,
				ddlPaymentsLegacy, ddlPaymentsLegacyUnique, ddlPaymentsRegisteredBy,
				ddlDeclarations, ddlDeclarationsClientIndex, ddlDeclarationsCreatedAtIndex,
				ddlExpenses, ddlExpensesDateIndex,
				ddlDocuments, ddlDocumentsClientIndex,
				ddlSettings,
				ddlUsers, ddlUsersUsernameUnique,
			},
			Tables: []string{"clients", "payments", "declarations", "expenses", "documents", "settings", "users"},
		},
		{
			Version: 6,
			Name:    "payment_reference_rewrite",
			Schema: []string{
				ddlClients, ddlClientsCPFUnique, ddlClientsNameIndex, ddlClientsStatusCol, ddlClientsStatusIdx,
				ddlPayments, ddlPaymentsReferenceUnique, ddlPaymentsClientIndex,
				ddlDeclarations, ddlDeclarationsClientIndex, ddlDeclarationsCreatedAtIndex,
				ddlExpenses, ddlExpensesDateIndex,
				ddlDocuments, ddlDocumentsClientIndex,
				ddlSettings,
				ddlUsers, ddlUsersUsernameUnique,
			},
			Tables:    []string{"clients", "payments", "declarations", "expenses", "documents", "settings", "users"},
			Transform: rewritePaymentReferences,
		},
		{
			Version: 7,
			Name:    "attendances_table",
			Schema: []string{
				ddlClients, ddlClientsCPFUnique, ddlClientsNameIndex, ddlClientsStatusCol, ddlClientsStatusIdx,
				ddlPayments, ddlPaymentsReferenceUnique, ddlPaymentsClientIndex,
				ddlDeclarations, ddlDeclarationsClientIndex, ddlDeclarationsCreatedAtIndex,
				ddlExpenses, ddlExpensesDateIndex,
				ddlDocuments, ddlDocumentsClientIndex,
				ddlSettings,
				ddlUsers, ddlUsersUsernameUnique,
				ddlAttendances, ddlAttendancesClientIndex, ddlAttendancesCreatedAtIndex,
			},
			Tables: []string{"clients", "payments", "declarations", "expenses", "documents", "settings", "users", "attendances"},
		},
		{
			Version: 8,
			Name:    "payment_declaration_template",
			Schema: []string{
				ddlClients, ddlClientsCPFUnique, ddlClientsNameIndex, ddlClientsStatusCol, ddlClientsStatusIdx,
				ddlPayments, ddlPaymentsReferenceUnique, ddlPaymentsClientIndex,
				ddlDeclarations, ddlDeclarationsClientIndex, ddlDeclarationsCreatedAtIndex, ddlDeclarationsKindCol,
				ddlExpenses, ddlExpensesDateIndex,
				ddlDocuments, ddlDocumentsClientIndex,
				ddlSettings,
				ddlUsers, ddlUsersUsernameUnique,
				ddlAttendances, ddlAttendancesClientIndex, ddlAttendancesCreatedAtIndex,
			},
			Tables:    []string{"clients", "payments", "declarations", "expenses", "documents", "settings", "users", "attendances"},
			Transform: upgradeDeclarationTemplates,
		},
	}
}

func backfillClientStatus(tx *gorm.DB, _ zerolog.Logger) error {
	return tx.Exec(
		`UPDATE clients SET status = ? WHERE status IS NULL OR status = ''`,
		models.ClientStatusActive,
	).Error
}

// seedUsersTransform covers databases upgrading from v3 and earlier, which
// never went through the first-creation populate path. Both this hook and
// EnsureSeeded gate on the table being empty, so whichever fires first wins
// and the other becomes a no-op.
func seedUsersTransform(tx *gorm.DB, _ zerolog.Logger) error {
	return seedDefaultUsers(tx)
}

type legacyPaymentRow struct {
	ID             uint `gorm:"column:id"`
	ClientID       uint `gorm:"column:client_id"`
	MonthReference *int `gorm:"column:month_reference"`
	YearReference  *int `gorm:"column:year_reference"`
}

// rewritePaymentReferences rebuilds the payments table around a single
// YYYY-MM reference column. SQLite cannot drop the old composite unique
// constraint in place, so the rows are copied into a fresh table. Rows where
// month or year is missing cannot produce a reference and are skipped, each
// logged with its id so the operator can re-enter it.
func rewritePaymentReferences(tx *gorm.DB, log zerolog.Logger) error {
	hasLegacyColumn, err := tableColumnExists(tx, "payments", "month_reference")
	if err != nil {
		return err
	}
	if !hasLegacyColumn {
		return nil
	}

	malformed := make([]legacyPaymentRow, 0)
	err = tx.Raw(
		`SELECT id, client_id, month_reference, year_reference FROM payments
		 WHERE month_reference IS NULL OR year_reference IS NULL`,
	).Scan(&malformed).Error
	if err != nil {
		return fmt.Errorf("scan malformed legacy payments: %w", err)
	}
	for _, row := range malformed {
		log.Warn().
			Uint("payment_id", row.ID).
			Uint("client_id", row.ClientID).
			Msg("legacy payment lacks month or year reference, skipping row")
	}

	rebuild := strings.Replace(ddlPayments, "IF NOT EXISTS payments", "payments_next", 1)
	statements := []string{
		rebuild,
		`INSERT INTO payments_next (id, client_id, reference, payment_date, amount, registered_by, created_at)
		 SELECT id, client_id, printf('%04d-%02d', year_reference, month_reference),
		        payment_date, amount, registered_by, created_at
		 FROM payments
		 WHERE month_reference IS NOT NULL AND year_reference IS NOT NULL`,
		`DROP TABLE payments`,
		`ALTER TABLE payments_next RENAME TO payments`,
		ddlPaymentsReferenceUnique,
		ddlPaymentsClientIndex,
	}
	for _, statement := range statements {
		if err := tx.Exec(statement).Error; err != nil {
			return fmt.Errorf("rebuild payments table: %w", err)
		}
	}
	return nil
}

// upgradeDeclarationTemplates adds the payment-status template when missing
// and converts a legacy plain-text membership template to HTML paragraphs.
// Detection is heuristic: stored values already starting with <p> are HTML.
func upgradeDeclarationTemplates(tx *gorm.DB, _ zerolog.Logger) error {
	var matched int64
	err := tx.Raw(`SELECT COUNT(*) FROM settings WHERE key = ?`, models.SettingPaymentDeclarationTemplate).
		Scan(&matched).Error
	if err != nil {
		return err
	}
	if matched == 0 {
		encoded, err := encodeSettingValue(models.DefaultPaymentStatusTemplate)
		if err != nil {
			return err
		}
		err = tx.Exec(
			`INSERT INTO settings (key, value) VALUES (?, ?)`,
			models.SettingPaymentDeclarationTemplate, encoded,
		).Error
		if err != nil {
			return err
		}
	}

	var stored struct {
		Value string `gorm:"column:value"`
	}
	result := tx.Raw(`SELECT value FROM settings WHERE key = ?`, models.SettingDeclarationTemplate).Scan(&stored)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return nil
	}

	template, err := decodeSettingString(stored.Value)
	if err != nil || strings.HasPrefix(template, "<p>") {
		return nil
	}

	paragraphs := strings.Split(template, "\n\n")
	for index, paragraph := range paragraphs {
		paragraphs[index] = "<p>" + strings.ReplaceAll(paragraph, "\n", "<br>") + "</p>"
	}
	encoded, err := encodeSettingValue(strings.Join(paragraphs, ""))
	if err != nil {
		return err
	}
	return tx.Exec(
		`UPDATE settings SET value = ? WHERE key = ?`,
		encoded, models.SettingDeclarationTemplate,
	).Error
}
