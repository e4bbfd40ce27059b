package db

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

var (
	addColumnStatementPattern   = regexp.MustCompile(`(?i)^ALTER\s+TABLE\s+([^\s]+)\s+ADD\s+COLUMN\s+([^\s]+)\b`)
	createIndexStatementPattern = regexp.MustCompile(`(?i)^CREATE\s+(?:UNIQUE\s+)?INDEX\s+IF\s+NOT\s+EXISTS\s+[^\s]+\s+ON\s+([^\s(]+)\s*\(([^)]+)\)`)
)

// versionStep is one entry in the ordered migration sequence. Schema holds
// the COMPLETE statement set valid as of that version, never a delta: a step
// that only restated changed tables could silently drop the rest, so
// cumulativity is enforced by construction and re-checked after the final
// step by assertSchemaComplete.
type versionStep struct {
	Version   int
	Name      string
	Schema    []string
	Tables    []string
	Transform func(tx *gorm.DB, log zerolog.Logger) error
}

func applyMigrations(database *gorm.DB, log zerolog.Logger) error {
	if err := ensureSchemaMigrationsTable(database); err != nil {
		return err
	}

	steps := schemaVersions()
	sort.Slice(steps, func(i, j int) bool { return steps[i].Version < steps[j].Version })
	if err := checkDuplicateVersions(steps); err != nil {
		return err
	}

	applied, err := loadAppliedVersions(database)
	if err != nil {
		return err
	}

	for _, step := range steps {
		if _, alreadyApplied := applied[step.Version]; alreadyApplied {
			continue
		}
		if err := applyVersionStep(database, step, log); err != nil {
			return err
		}
		log.Info().Int("version", step.Version).Str("name", step.Name).Msg("schema migrated")
	}

	return assertSchemaComplete(database, steps[len(steps)-1])
}

func ensureSchemaMigrationsTable(database *gorm.DB) error {
	const createTableSQL = `
CREATE TABLE IF NOT EXISTS schema_migrations (
  version INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);`
	if err := database.Exec(createTableSQL).Error; err != nil {
		return fmt.Errorf("create schema_migrations table: %w", err)
	}
	return nil
}

func checkDuplicateVersions(steps []versionStep) error {
	seen := make(map[int]string, len(steps))
	for _, step := range steps {
		if existing, exists := seen[step.Version]; exists {
			return fmt.Errorf("duplicate migration version %d in %s and %s", step.Version, existing, step.Name)
		}
		seen[step.Version] = step.Name
	}
	return nil
}

type appliedMigrationVersion struct {
	Version int `gorm:"column:version"`
}

func loadAppliedVersions(database *gorm.DB) (map[int]struct{}, error) {
	rows := make([]appliedMigrationVersion, 0)
	if err := database.Raw(`SELECT version FROM schema_migrations`).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("load applied migration versions: %w", err)
	}

	versions := make(map[int]struct{}, len(rows))
	for _, row := range rows {
		versions[row.Version] = struct{}{}
	}
	return versions, nil
}

func applyVersionStep(database *gorm.DB, step versionStep, log zerolog.Logger) error {
	return database.Transaction(func(tx *gorm.DB) error {
		if len(step.Schema) == 0 {
			return errors.New("migration step has no schema statements")
		}

		for _, statement := range step.Schema {
			skip, err := shouldSkipStatement(tx, statement)
			if err != nil {
				return fmt.Errorf("inspect migration v%d: %w", step.Version, err)
			}
			if skip {
				continue
			}
			if err := tx.Exec(statement).Error; err != nil {
				return fmt.Errorf("execute migration v%d statement %q: %w", step.Version, statement, err)
			}
		}

		if step.Transform != nil {
			if err := step.Transform(tx, log); err != nil {
				return fmt.Errorf("transform migration v%d (%s): %w", step.Version, step.Name, err)
			}
		}

		if err := tx.Exec(
			`INSERT INTO schema_migrations(version, name) VALUES (?, ?)`,
			step.Version,
			step.Name,
		).Error; err != nil {
			return fmt.Errorf("record migration v%d: %w", step.Version, err)
		}

		return nil
	})
}

// assertSchemaComplete fails loudly when any table the final version
// declares is missing after migration, guarding the pitfall where a later
// step forgets to restate an earlier table.
func assertSchemaComplete(database *gorm.DB, final versionStep) error {
	for _, tableName := range final.Tables {
		var matched int64
		err := database.Raw(
			`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`,
			tableName,
		).Scan(&matched).Error
		if err != nil {
			return fmt.Errorf("verify table %s: %w", tableName, err)
		}
		if matched == 0 {
			return fmt.Errorf("schema incomplete after migration: table %s missing", tableName)
		}
	}
	return nil
}

// Snapshot statements are restated by every later version, so two kinds
// must be skippable: ADD COLUMN once the column exists, and CREATE INDEX
// while a column it covers does not exist yet (the owning step's transform
// rebuilds the table and recreates the index itself).
func shouldSkipStatement(database *gorm.DB, statement string) (bool, error) {
	trimmed := strings.TrimSpace(statement)

	if matches := addColumnStatementPattern.FindStringSubmatch(trimmed); len(matches) == 3 {
		tableName := normalizeSQLIdentifier(matches[1])
		columnName := normalizeSQLIdentifier(matches[2])
		return tableColumnExists(database, tableName, columnName)
	}

	if matches := createIndexStatementPattern.FindStringSubmatch(trimmed); len(matches) == 3 {
		tableName := normalizeSQLIdentifier(matches[1])
		for _, rawColumn := range strings.Split(matches[2], ",") {
			exists, err := tableColumnExists(database, tableName, normalizeSQLIdentifier(rawColumn))
			if err != nil {
				return false, err
			}
			if !exists {
				return true, nil
			}
		}
	}

	return false, nil
}

type pragmaTableColumn struct {
	Name string `gorm:"column:name"`
}

func tableColumnExists(database *gorm.DB, tableName string, columnName string) (bool, error) {
	escapedTable := strings.ReplaceAll(tableName, `"`, `""`)
	query := fmt.Sprintf(`PRAGMA table_info("%s")`, escapedTable)

	columns := make([]pragmaTableColumn, 0)
	if err := database.Raw(query).Scan(&columns).Error; err != nil {
		return false, fmt.Errorf("load table_info for %s: %w", tableName, err)
	}
	for _, column := range columns {
		if strings.EqualFold(strings.TrimSpace(column.Name), columnName) {
			return true, nil
		}
	}
	return false, nil
}

func normalizeSQLIdentifier(identifier string) string {
	normalized := strings.TrimSpace(identifier)
	normalized = strings.Trim(normalized, "\"`[]")
	return strings.TrimSpace(normalized)
}
