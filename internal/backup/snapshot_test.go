package backup

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/andresouzadev/sindigo/internal/db"
	"github.com/andresouzadev/sindigo/internal/models"
)

func newSeededStore(t *testing.T) *gorm.DB {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "backup-test.db"), zerolog.Nop())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	repositories := db.NewRepositories(database)

	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	client := models.Client{
		FullName:        "Maria Aparecida",
		CPF:             "123.456.789-00",
		RG:              "1.234.567",
		AffiliationDate: "2019-05-02",
		Status:          models.ClientStatusActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := repositories.Clients.Create(&client); err != nil {
		t.Fatalf("create client: %v", err)
	}

	payment := models.Payment{
		ClientID:    client.ID,
		Reference:   "2024-03",
		PaymentDate: "2024-03-05",
		Amount:      decimal.NewFromFloat(25.00),
		CreatedAt:   now,
	}
	if err := repositories.Payments.Create(&payment); err != nil {
		t.Fatalf("create payment: %v", err)
	}

	document := models.Document{
		ClientID:    client.ID,
		Name:        "contrato.pdf",
		ContentType: "application/pdf",
		Content:     []byte("%PDF-1.4 fake body"),
		CreatedAt:   now,
	}
	if err := repositories.Documents.Create(&document); err != nil {
		t.Fatalf("create document: %v", err)
	}

	return database
}

func TestSnapshotRoundTripRestoresEveryTable(t *testing.T) {
	database := newSeededStore(t)

	exported, err := Export(database)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	// Mutate the store so the import has something real to undo.
	repositories := db.NewRepositories(database)
	intruder := models.Client{
		FullName: "Cadastro Intruso",
		CPF:      "999.999.999-99",
		Status:   models.ClientStatusActive,
	}
	if err := repositories.Clients.Create(&intruder); err != nil {
		t.Fatalf("create intruder: %v", err)
	}
	if err := repositories.Settings.Upsert(models.SettingSyndicatePhone, "(11) 0000-0000"); err != nil {
		t.Fatalf("mutate setting: %v", err)
	}

	if err := Import(database, exported); err != nil {
		t.Fatalf("import: %v", err)
	}

	reExported, err := Export(database)
	if err != nil {
		t.Fatalf("re-export: %v", err)
	}

	// Everything except the export timestamp must round-trip byte for byte.
	if !bytes.Equal(stripExportedAt(t, exported), stripExportedAt(t, reExported)) {
		t.Fatal("expected snapshot to round-trip unchanged")
	}

	gone, err := repositories.Clients.FindByID(intruder.ID)
	if err != nil {
		t.Fatalf("reload intruder: %v", err)
	}
	if gone != nil {
		t.Fatal("expected import to remove rows not present in the snapshot")
	}

	// Document bytes survive the base64 leg intact.
	documents, err := repositories.Documents.ListByClient(1)
	if err != nil {
		t.Fatalf("list documents: %v", err)
	}
	if len(documents) != 1 || string(documents[0].Content) != "%PDF-1.4 fake body" {
		t.Fatalf("document content corrupted by round trip: %+v", documents)
	}

	// Passwords travel in snapshots even though the API never serializes
	// them; a restore must leave accounts usable.
	var admin models.User
	if err := database.Where("username = ?", "admin").First(&admin).Error; err != nil {
		t.Fatalf("load restored admin: %v", err)
	}
	if admin.Password != "admin" {
		t.Fatalf("expected restored admin password, got %q", admin.Password)
	}
}

func TestImportRejectsCorruptArtifactAndLeavesStoreUntouched(t *testing.T) {
	database := newSeededStore(t)

	before, err := Export(database)
	if err != nil {
		t.Fatalf("export baseline: %v", err)
	}

	corrupt := [][]byte{
		[]byte(`{not json`),
		[]byte(`{"version": 1, "exportedAt": "2024-01-01T00:00:00Z", "tables": {"unknown_table": []}}`),
	}
	for _, artifact := range corrupt {
		if err := Import(database, artifact); !errors.Is(err, ErrSnapshotCorrupt) {
			t.Fatalf("expected ErrSnapshotCorrupt for %q, got %v", artifact, err)
		}
	}

	after, err := Export(database)
	if err != nil {
		t.Fatalf("export after rejects: %v", err)
	}
	if !bytes.Equal(stripExportedAt(t, before), stripExportedAt(t, after)) {
		t.Fatal("rejected import must leave the store unchanged")
	}
}

func TestImportRejectsFutureSchemaVersion(t *testing.T) {
	database := newSeededStore(t)

	exported, err := Export(database)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	var snapshot map[string]any
	if err := json.Unmarshal(exported, &snapshot); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	snapshot["version"] = db.CurrentSchemaVersion() + 1
	future, err := json.Marshal(snapshot)
	if err != nil {
		t.Fatalf("encode future snapshot: %v", err)
	}

	if err := Import(database, future); !errors.Is(err, ErrSnapshotCorrupt) {
		t.Fatalf("expected ErrSnapshotCorrupt for future version, got %v", err)
	}
}

func stripExportedAt(t *testing.T, artifact []byte) []byte {
	t.Helper()

	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(artifact, &decoded); err != nil {
		t.Fatalf("decode artifact: %v", err)
	}
	delete(decoded, "exportedAt")
	normalized, err := json.Marshal(decoded)
	if err != nil {
		t.Fatalf("re-encode artifact: %v", err)
	}
	return normalized
}
