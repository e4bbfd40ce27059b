package db

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/andresouzadev/sindigo/internal/models"
)

func seedClientWithRelations(t *testing.T, repositories *Repositories, name string, cpf string) *models.Client {
	t.Helper()

	client := createTestClient(t, repositories, name, cpf)
	createTestPayment(t, repositories, client.ID, "2024-01")
	createTestPayment(t, repositories, client.ID, "2024-02")

	declaration := models.DeclarationLog{
		ClientID:  client.ID,
		Kind:      models.DeclarationKindMembership,
		IssueDate: "2024-02-15",
		CreatedAt: time.Now(),
	}
	if err := repositories.Declarations.Append(&declaration); err != nil {
		t.Fatalf("append declaration: %v", err)
	}

	document := models.Document{
		ClientID:    client.ID,
		Name:        "rg.png",
		ContentType: "image/png",
		Content:     []byte{0x89, 0x50, 0x4e, 0x47},
		CreatedAt:   time.Now(),
	}
	if err := repositories.Documents.Create(&document); err != nil {
		t.Fatalf("create document: %v", err)
	}

	attendance := models.Attendance{
		ClientID:  client.ID,
		Notes:     "orientação sobre aposentadoria",
		CreatedBy: "admin",
		CreatedAt: time.Now(),
	}
	if err := repositories.Attendances.Create(&attendance); err != nil {
		t.Fatalf("create attendance: %v", err)
	}

	return client
}

func TestDeleteClientCascadesToAllRelatedTables(t *testing.T) {
	database := newTestStore(t)
	repositories := NewRepositories(database)

	target := seedClientWithRelations(t, repositories, "Antônio Ferreira", "666.666.666-66")
	sibling := seedClientWithRelations(t, repositories, "Luzia Campos", "777.777.777-77")

	if err := repositories.Clients.DeleteClientAndRelations(target.ID); err != nil {
		t.Fatalf("cascade delete: %v", err)
	}

	gone, err := repositories.Clients.FindByID(target.ID)
	if err != nil {
		t.Fatalf("reload deleted client: %v", err)
	}
	if gone != nil {
		t.Fatal("expected client to be gone after cascade delete")
	}

	relatedCounts := map[string]int64{}
	for table, model := range map[string]any{
		"payments":     &models.Payment{},
		"declarations": &models.DeclarationLog{},
		"documents":    &models.Document{},
		"attendances":  &models.Attendance{},
	} {
		var count int64
		if err := database.Model(model).Where("client_id = ?", target.ID).Count(&count).Error; err != nil {
			t.Fatalf("count %s for deleted client: %v", table, err)
		}
		relatedCounts[table] = count
	}
	for table, count := range relatedCounts {
		if count != 0 {
			t.Fatalf("expected no %s rows for deleted client, found %d", table, count)
		}
	}

	// The sibling and everything attached to it stays intact.
	kept, err := repositories.Clients.FindByID(sibling.ID)
	if err != nil || kept == nil {
		t.Fatalf("sibling client lost: client=%v err=%v", kept, err)
	}
	siblingPayments, err := repositories.Payments.ListByClient(sibling.ID)
	if err != nil {
		t.Fatalf("list sibling payments: %v", err)
	}
	if len(siblingPayments) != 2 {
		t.Fatalf("expected sibling to keep 2 payments, got %d", len(siblingPayments))
	}
}

func TestWipeClearsTransactionalDataOnly(t *testing.T) {
	database := newTestStore(t)
	repositories := NewRepositories(database)

	seedClientWithRelations(t, repositories, "Francisca Melo", "888.888.888-88")
	expense := models.Expense{
		Description: "combustível",
		Category:    "transporte",
		Amount:      decimal.NewFromInt(120),
		Date:        "2024-02-10",
		CreatedAt:   time.Now(),
	}
	if err := repositories.Expenses.Create(&expense); err != nil {
		t.Fatalf("create expense: %v", err)
	}

	if err := repositories.Maintenance.WipeTransactionalData(); err != nil {
		t.Fatalf("wipe: %v", err)
	}

	for table, model := range map[string]any{
		"clients":      &models.Client{},
		"payments":     &models.Payment{},
		"declarations": &models.DeclarationLog{},
		"documents":    &models.Document{},
		"attendances":  &models.Attendance{},
		"expenses":     &models.Expense{},
	} {
		var count int64
		if err := database.Model(model).Count(&count).Error; err != nil {
			t.Fatalf("count %s after wipe: %v", table, err)
		}
		if count != 0 {
			t.Fatalf("expected %s to be empty after wipe, found %d rows", table, count)
		}
	}

	// Settings and users survive the wipe.
	var userCount int64
	if err := database.Model(&models.User{}).Count(&userCount).Error; err != nil {
		t.Fatalf("count users after wipe: %v", err)
	}
	if userCount != int64(len(models.DefaultUsers())) {
		t.Fatalf("expected users untouched by wipe, got %d", userCount)
	}
	var settingCount int64
	if err := database.Model(&models.Setting{}).Count(&settingCount).Error; err != nil {
		t.Fatalf("count settings after wipe: %v", err)
	}
	if settingCount != int64(len(models.DefaultSettings())) {
		t.Fatalf("expected settings untouched by wipe, got %d", settingCount)
	}
}
