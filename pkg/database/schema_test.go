package database

import (
	"testing"
)

func TestSchemaValidator_EmptyDatabase(t *testing.T) {
	validator := NewSchemaValidator(openTestDB(t))

	if err := validator.ValidateTablesExist(); err == nil {
		t.Error("ValidateTablesExist should fail on empty database")
	}
	if err := validator.ValidateIndexes(); err == nil {
		t.Error("ValidateIndexes should fail on empty database")
	}
}

func TestSchemaValidator_MigratedDatabase(t *testing.T) {
	db := openTestDB(t)
	if err := NewMigrationManager(db, Migrations()).ApplyMigrations(); err != nil {
		t.Fatalf("ApplyMigrations: %v", err)
	}
	validator := NewSchemaValidator(db)

	if err := validator.ValidateTablesExist(); err != nil {
		t.Errorf("ValidateTablesExist: %v", err)
	}
	if err := validator.ValidateTableStructure(); err != nil {
		t.Errorf("ValidateTableStructure: %v", err)
	}
	if err := validator.ValidateIndexes(); err != nil {
		t.Errorf("ValidateIndexes: %v", err)
	}
	if err := validator.ValidateConstraints(); err != nil {
		t.Errorf("ValidateConstraints: %v", err)
	}

	var sessions int
	if err := db.QueryRow("SELECT COUNT(*) FROM sessions").Scan(&sessions); err != nil {
		t.Fatalf("count sessions: %v", err)
	}
	if sessions != 0 {
		t.Errorf("ValidateConstraints left %d rows behind", sessions)
	}
}

func TestSchemaValidator_WrongColumnType(t *testing.T) {
	db := openTestDB(t)
	_, err := db.Exec(`
		CREATE TABLE students (id TEXT, position TEXT, name TEXT, phone TEXT,
			email TEXT, address TEXT, tags TEXT, performance INTEGER);
	`)
	if err != nil {
		t.Fatalf("create table: %v", err)
	}

	err = NewSchemaValidator(db).ValidateTableStructure()
	if err == nil {
		t.Fatal("expected a structure error for students.position")
	}
}

func TestSchema_CascadeFromStudentsAndSessions(t *testing.T) {
	db := openTestDB(t)
	if err := NewMigrationManager(db, Migrations()).ApplyMigrations(); err != nil {
		t.Fatalf("ApplyMigrations: %v", err)
	}

	stmts := []string{
		`INSERT INTO students (id, position, name) VALUES ('s1', 0, 'Alice')`,
		`INSERT INTO students (id, position, name) VALUES ('s2', 1, 'Bob')`,
		`INSERT INTO sessions (kind, name, position, date) VALUES ('tutorial', 'T1', 0, '2024-01-01')`,
		`INSERT INTO session_students (kind, session_name, position, student_id) VALUES ('tutorial', 'T1', 0, 's1')`,
		`INSERT INTO session_students (kind, session_name, position, student_id) VALUES ('tutorial', 'T1', 1, 's2')`,
		`INSERT INTO notes (kind, session_name, position, text, created) VALUES ('tutorial', 'T1', 0, 'hi', '2024-01-01')`,
		`DELETE FROM students WHERE id = 's1'`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("%s: %v", stmt, err)
		}
	}

	var roster int
	if err := db.QueryRow(`SELECT COUNT(*) FROM session_students`).Scan(&roster); err != nil {
		t.Fatalf("count roster: %v", err)
	}
	if roster != 1 {
		t.Errorf("roster rows = %d, want 1 after deleting a student", roster)
	}

	if _, err := db.Exec(`DELETE FROM sessions WHERE kind = 'tutorial' AND name = 'T1'`); err != nil {
		t.Fatalf("delete session: %v", err)
	}
	var notes int
	if err := db.QueryRow(`SELECT COUNT(*) FROM notes`).Scan(&notes); err != nil {
		t.Fatalf("count notes: %v", err)
	}
	if notes != 0 {
		t.Errorf("notes rows = %d, want 0 after deleting the session", notes)
	}
}
