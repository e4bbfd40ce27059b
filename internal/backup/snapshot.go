// Package backup serializes the whole record store into a single portable
// artifact and rebuilds the store from one. It works at the row level,
// independent of the storage engine: every table is read and written
// generically, with two deliberate special cases: document content travels
// as raw bytes and setting values stay in their JSON-encoded string form.
package backup

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/andresouzadev/sindigo/internal/db"
	"github.com/andresouzadev/sindigo/internal/models"
)

// ErrSnapshotCorrupt marks an artifact that cannot be parsed or does not
// match the live schema. Import failures of this class leave the store
// exactly as it was.
var ErrSnapshotCorrupt = errors.New("snapshot corrupt or incompatible")

// Snapshot is the portable backup artifact: one JSON document holding every
// row of every table.
type Snapshot struct {
	Version    int       `json:"version"`
	ExportedAt time.Time `json:"exportedAt"`
	Tables     Tables    `json:"tables"`
}

type Tables struct {
	Clients      []models.Client         `json:"clients"`
	Payments     []models.Payment        `json:"payments"`
	Declarations []models.DeclarationLog `json:"declarations"`
	Expenses     []models.Expense        `json:"expenses"`
	Documents    []models.Document       `json:"documents"`
	Attendances  []models.Attendance     `json:"attendances"`
	Settings     []models.Setting        `json:"settings"`
	Users        []snapshotUser          `json:"users"`
}

// snapshotUser mirrors models.User but serializes the password, which the
// model deliberately hides from API responses. A backup that silently
// dropped credentials would not restore a working system.
type snapshotUser struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"password"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// Export reads every table and returns the serialized snapshot.
func Export(database *gorm.DB) ([]byte, error) {
	snapshot := Snapshot{
		Version:    db.CurrentSchemaVersion(),
		ExportedAt: time.Now().UTC(),
	}

	var err error
	if snapshot.Tables.Clients, err = db.GetAll[models.Client](database.Order("id")); err != nil {
		return nil, fmt.Errorf("export clients: %w", err)
	}
	if snapshot.Tables.Payments, err = db.GetAll[models.Payment](database.Order("id")); err != nil {
		return nil, fmt.Errorf("export payments: %w", err)
	}
	if snapshot.Tables.Declarations, err = db.GetAll[models.DeclarationLog](database.Order("id")); err != nil {
		return nil, fmt.Errorf("export declarations: %w", err)
	}
	if snapshot.Tables.Expenses, err = db.GetAll[models.Expense](database.Order("id")); err != nil {
		return nil, fmt.Errorf("export expenses: %w", err)
	}
	if snapshot.Tables.Documents, err = db.GetAll[models.Document](database.Order("id")); err != nil {
		return nil, fmt.Errorf("export documents: %w", err)
	}
	if snapshot.Tables.Attendances, err = db.GetAll[models.Attendance](database.Order("id")); err != nil {
		return nil, fmt.Errorf("export attendances: %w", err)
	}
	if snapshot.Tables.Settings, err = db.GetAll[models.Setting](database.Order("key")); err != nil {
		return nil, fmt.Errorf("export settings: %w", err)
	}

	users, err := db.GetAll[models.User](database.Order("id"))
	if err != nil {
		return nil, fmt.Errorf("export users: %w", err)
	}
	snapshot.Tables.Users = make([]snapshotUser, 0, len(users))
	for _, user := range users {
		snapshot.Tables.Users = append(snapshot.Tables.Users, snapshotUser{
			ID:        user.ID,
			Username:  user.Username,
			Password:  user.Password,
			Role:      user.Role,
			CreatedAt: user.CreatedAt,
		})
	}

	return json.MarshalIndent(snapshot, "", "  ")
}

// Import atomically replaces the entire contents of every table with the
// artifact's contents. The artifact is parsed in full before any table is
// touched; inside the transaction any failure rolls everything back.
// Import always runs against an already-migrated store.
func Import(database *gorm.DB, artifact []byte) error {
	snapshot, err := parse(artifact)
	if err != nil {
		return err
	}

	return database.Transaction(func(tx *gorm.DB) error {
		clears := []any{
			&models.Payment{},
			&models.DeclarationLog{},
			&models.Document{},
			&models.Attendance{},
			&models.Expense{},
			&models.Client{},
			&models.Setting{},
			&models.User{},
		}
		for _, model := range clears {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return fmt.Errorf("restore: clear table: %w", err)
			}
		}

		for index := range snapshot.Tables.Clients {
			if err := tx.Create(&snapshot.Tables.Clients[index]).Error; err != nil {
				return fmt.Errorf("restore clients: %w", err)
			}
		}
		for index := range snapshot.Tables.Payments {
			if err := tx.Create(&snapshot.Tables.Payments[index]).Error; err != nil {
				return fmt.Errorf("restore payments: %w", err)
			}
		}
		for index := range snapshot.Tables.Declarations {
			if err := tx.Create(&snapshot.Tables.Declarations[index]).Error; err != nil {
				return fmt.Errorf("restore declarations: %w", err)
			}
		}
		for index := range snapshot.Tables.Expenses {
			if err := tx.Create(&snapshot.Tables.Expenses[index]).Error; err != nil {
				return fmt.Errorf("restore expenses: %w", err)
			}
		}
		for index := range snapshot.Tables.Documents {
			if err := tx.Create(&snapshot.Tables.Documents[index]).Error; err != nil {
				return fmt.Errorf("restore documents: %w", err)
			}
		}
		for index := range snapshot.Tables.Attendances {
			if err := tx.Create(&snapshot.Tables.Attendances[index]).Error; err != nil {
				return fmt.Errorf("restore attendances: %w", err)
			}
		}
		for index := range snapshot.Tables.Settings {
			if err := tx.Create(&snapshot.Tables.Settings[index]).Error; err != nil {
				return fmt.Errorf("restore settings: %w", err)
			}
		}
		for _, user := range snapshot.Tables.Users {
			record := models.User{
				ID:        user.ID,
				Username:  user.Username,
				Password:  user.Password,
				Role:      user.Role,
				CreatedAt: user.CreatedAt,
			}
			if err := tx.Create(&record).Error; err != nil {
				return fmt.Errorf("restore users: %w", err)
			}
		}

		return nil
	})
}

// parse rejects anything that is not a snapshot of this system's schema:
// malformed JSON, unknown table names and future schema versions all fail
// before a single row is written.
func parse(artifact []byte) (*Snapshot, error) {
	decoder := json.NewDecoder(bytes.NewReader(artifact))
	decoder.DisallowUnknownFields()

	var snapshot Snapshot
	if err := decoder.Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSnapshotCorrupt, err)
	}
	if snapshot.Version <= 0 || snapshot.Version > db.CurrentSchemaVersion() {
		return nil, fmt.Errorf("%w: unsupported schema version %d", ErrSnapshotCorrupt, snapshot.Version)
	}
	return &snapshot, nil
}
