package db

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/andresouzadev/sindigo/internal/models"
)

func createTestClient(t *testing.T, repositories *Repositories, name string, cpf string) *models.Client {
	t.Helper()

	now := time.Now()
	client := models.Client{
		FullName:  name,
		CPF:       cpf,
		Status:    models.ClientStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := repositories.Clients.Create(&client); err != nil {
		t.Fatalf("create client %s: %v", name, err)
	}
	return &client
}

func createTestPayment(t *testing.T, repositories *Repositories, clientID uint, reference string) *models.Payment {
	t.Helper()

	payment := models.Payment{
		ClientID:    clientID,
		Reference:   reference,
		PaymentDate: "2024-03-10",
		Amount:      decimal.NewFromFloat(25.50),
		CreatedAt:   time.Now(),
	}
	if err := repositories.Payments.Create(&payment); err != nil {
		t.Fatalf("create payment %s: %v", reference, err)
	}
	return &payment
}

func TestDuplicateCPFIsRejected(t *testing.T) {
	database := newTestStore(t)
	repositories := NewRepositories(database)

	createTestClient(t, repositories, "João Batista", "222.222.222-22")

	duplicate := models.Client{
		FullName: "João Impostor",
		CPF:      "222.222.222-22",
		Status:   models.ClientStatusActive,
	}
	err := repositories.Clients.Create(&duplicate)
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate for repeated CPF, got %v", err)
	}
}

func TestDuplicatePaymentReferenceIsRejected(t *testing.T) {
	database := newTestStore(t)
	repositories := NewRepositories(database)

	client := createTestClient(t, repositories, "Josefa Lima", "333.333.333-33")
	createTestPayment(t, repositories, client.ID, "2024-03")

	second := models.Payment{
		ClientID:    client.ID,
		Reference:   "2024-03",
		PaymentDate: "2024-03-20",
		Amount:      decimal.NewFromInt(30),
		CreatedAt:   time.Now(),
	}
	err := repositories.Payments.Create(&second)
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate for repeated (client, reference), got %v", err)
	}

	// A different month for the same client and the same month for another
	// client must both succeed.
	createTestPayment(t, repositories, client.ID, "2024-04")
	other := createTestClient(t, repositories, "Severino Ramos", "444.444.444-44")
	createTestPayment(t, repositories, other.ID, "2024-03")

	count, err := repositories.Payments.Count()
	if err != nil {
		t.Fatalf("count payments: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 payments after valid inserts, got %d", count)
	}
}

func TestLastByClientOrdersByReference(t *testing.T) {
	database := newTestStore(t)
	repositories := NewRepositories(database)

	client := createTestClient(t, repositories, "Rita Souza", "555.555.555-55")
	createTestPayment(t, repositories, client.ID, "2023-12")
	createTestPayment(t, repositories, client.ID, "2024-02")
	createTestPayment(t, repositories, client.ID, "2024-01")

	last, err := repositories.Payments.LastByClient(client.ID)
	if err != nil {
		t.Fatalf("last payment: %v", err)
	}
	if last == nil || last.Reference != "2024-02" {
		t.Fatalf("expected latest reference 2024-02, got %+v", last)
	}

	none, err := repositories.Payments.LastByClient(client.ID + 100)
	if err != nil {
		t.Fatalf("last payment for unknown client: %v", err)
	}
	if none != nil {
		t.Fatalf("expected nil for client without payments, got %+v", none)
	}
}

func TestGetByIDReturnsNilWhenAbsent(t *testing.T) {
	database := newTestStore(t)

	client, err := GetByID[models.Client](database, 9999)
	if err != nil {
		t.Fatalf("get absent client: %v", err)
	}
	if client != nil {
		t.Fatalf("expected nil for absent row, got %+v", client)
	}
}

func TestUpdateByIDReportsZeroRowsForUnknownID(t *testing.T) {
	database := newTestStore(t)

	affected, err := UpdateByID[models.Client](database, 9999, map[string]any{"full_name": "Ghost"})
	if err != nil {
		t.Fatalf("update absent client: %v", err)
	}
	if affected != 0 {
		t.Fatalf("expected 0 affected rows, got %d", affected)
	}
}

func TestSettingUpsertRoundTrip(t *testing.T) {
	database := newTestStore(t)
	settings := NewSettingRepository(database)

	if err := settings.Upsert(models.SettingSyndicatePhone, "(79) 3543-0000"); err != nil {
		t.Fatalf("upsert phone: %v", err)
	}
	phone, err := settings.GetString(models.SettingSyndicatePhone)
	if err != nil {
		t.Fatalf("read phone: %v", err)
	}
	if phone != "(79) 3543-0000" {
		t.Fatalf("expected updated phone, got %q", phone)
	}

	// Upserting again replaces, never duplicates the key.
	if err := settings.Upsert(models.SettingSyndicatePhone, "(79) 3543-1111"); err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	var count int64
	if err := database.Model(&models.Setting{}).
		Where("key = ?", models.SettingSyndicatePhone).
		Count(&count).Error; err != nil {
		t.Fatalf("count phone keys: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected a single row for the key, got %d", count)
	}
}

func TestFindByUsernameIsCaseAndSpaceInsensitive(t *testing.T) {
	database := newTestStore(t)
	users := NewUserRepository(database)

	found, err := users.FindByUsername("  ADMIN  ")
	if err != nil {
		t.Fatalf("find seeded admin: %v", err)
	}
	if found == nil || found.Username != "admin" {
		t.Fatalf("expected to find seeded admin, got %+v", found)
	}
}
