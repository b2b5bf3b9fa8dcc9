package database

import (
	"context"
	"database/sql"
	"fmt"
)

// SchemaValidator checks a database against the structure the store expects.
type SchemaValidator struct {
	db *sql.DB
}

// NewSchemaValidator creates a new schema validator
func NewSchemaValidator(db *sql.DB) *SchemaValidator {
	return &SchemaValidator{db: db}
}

var requiredTables = []string{
	"students",
	"sessions",
	"session_students",
	"attachments",
	"notes",
	"schema_migrations",
}

var requiredIndexes = []string{
	"idx_sessions_kind_position",
	"idx_session_students_order",
	"idx_session_students_student",
}

// ValidateTablesExist verifies that all required tables exist
func (v *SchemaValidator) ValidateTablesExist() error {
	for _, table := range requiredTables {
		exists, err := v.exists("table", table)
		if err != nil {
			return fmt.Errorf("error checking table %s: %w", table, err)
		}
		if !exists {
			return fmt.Errorf("required table %s does not exist", table)
		}
	}
	return nil
}

// ValidateTableStructure verifies table column structure matches expectations
func (v *SchemaValidator) ValidateTableStructure() error {
	expected := map[string]map[string]string{
		"students": {
			"id":          "TEXT",
			"position":    "INTEGER",
			"name":        "TEXT",
			"phone":       "TEXT",
			"email":       "TEXT",
			"address":     "TEXT",
			"tags":        "TEXT",
			"performance": "INTEGER",
		},
		"sessions": {
			"kind":     "TEXT",
			"name":     "TEXT",
			"position": "INTEGER",
			"date":     "TEXT",
		},
		"session_students": {
			"kind":         "TEXT",
			"session_name": "TEXT",
			"position":     "INTEGER",
			"student_id":   "TEXT",
		},
		"attachments": {
			"kind":         "TEXT",
			"session_name": "TEXT",
			"position":     "INTEGER",
			"path":         "TEXT",
		},
		"notes": {
			"kind":         "TEXT",
			"session_name": "TEXT",
			"position":     "INTEGER",
			"text":         "TEXT",
			"created":      "TEXT",
		},
	}

	for _, table := range requiredTables {
		columns, ok := expected[table]
		if !ok {
			continue
		}
		if err := v.validateColumns(table, columns); err != nil {
			return fmt.Errorf("%s table structure invalid: %w", table, err)
		}
	}
	return nil
}

// ValidateIndexes verifies that the ordering indexes exist
func (v *SchemaValidator) ValidateIndexes() error {
	for _, index := range requiredIndexes {
		exists, err := v.exists("index", index)
		if err != nil {
			return fmt.Errorf("error checking index %s: %w", index, err)
		}
		if !exists {
			return fmt.Errorf("required index %s does not exist", index)
		}
	}
	return nil
}

// ValidateConstraints verifies that the database rejects rosters pointing at
// missing sessions and sessions of an unknown kind. It writes nothing on
// success.
func (v *SchemaValidator) ValidateConstraints() error {
	ctx := context.Background()
	conn, err := v.db.Conn(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	// foreign_keys is a no-op inside a transaction, so set it on the
	// connection first.
	if _, err := conn.ExecContext(ctx, `PRAGMA foreign_keys = ON`); err != nil {
		return err
	}
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(`
		INSERT INTO session_students (kind, session_name, position, student_id)
		VALUES ('tutorial', 'missing-session', 0, 'missing-student')
	`)
	if err == nil {
		return fmt.Errorf("foreign key constraint not enforced: session_students")
	}

	_, err = tx.Exec(`
		INSERT INTO sessions (kind, name, position, date)
		VALUES ('seminar', 'constraint-check', 0, '2024-01-01')
	`)
	if err == nil {
		return fmt.Errorf("check constraint not enforced: session kind")
	}

	return nil
}

func (v *SchemaValidator) exists(objectType, name string) (bool, error) {
	var count int
	err := v.db.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type = ? AND name = ?",
		objectType, name,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// validateColumns checks that a table has the expected columns with correct types
func (v *SchemaValidator) validateColumns(tableName string, expectedColumns map[string]string) error {
	rows, err := v.db.Query(fmt.Sprintf("PRAGMA table_info(%s)", tableName))
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	found := make(map[string]string)
	for rows.Next() {
		var (
			cid          int
			name, typ    string
			notNull, pk  int
			defaultValue any
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &defaultValue, &pk); err != nil {
			return err
		}
		found[name] = typ
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for col, want := range expectedColumns {
		got, ok := found[col]
		if !ok {
			return fmt.Errorf("column %s not found", col)
		}
		if got != want {
			return fmt.Errorf("column %s has type %s, expected %s", col, got, want)
		}
	}
	return nil
}
