package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	// ARCHITECTURAL DISCOVERY: Import SQLite driver but only reference in connection string
	"github.com/mattn/go-sqlite3"

	dbconfig "classmate/pkg/database"
	"classmate/pkg/types"
)

var (
	ErrClosed       = errors.New("database manager is closed")
	ErrShuttingDown = errors.New("database manager is shutting down")
	ErrWriteTimeout = errors.New("write operation timeout")
)

// Manager implements interfaces.SnapshotStore on top of SQLite.
type Manager struct {
	db           *sql.DB
	config       *dbconfig.Config
	writeChannel chan writeOperation // TECHNICAL: Single-writer pattern for SQLite
	shutdown     chan struct{}
	wg           sync.WaitGroup
	closed       bool
	mu           sync.RWMutex // TECHNICAL: Protect closed status
	retryDelay   time.Duration
}

// writeOperation represents a database write operation
type writeOperation struct {
	operation func(*sql.DB) error
	result    chan error
}

// NewManager opens the database at config.DatabasePath, creating the file and
// its directory when missing, and brings the schema up to date.
func NewManager(config *dbconfig.Config) (*Manager, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid database configuration: %w", err)
	}
	if dir := filepath.Dir(config.DatabasePath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbconfig.DSN(config.DatabasePath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(config.MaxConnections)
	db.SetConnMaxLifetime(config.ConnMaxLifetime)
	db.SetConnMaxIdleTime(config.ConnMaxIdleTime)

	if err := dbconfig.ApplySQLiteOptimizations(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply SQLite optimizations: %w", err)
	}

	if err := dbconfig.NewMigrationManager(db, dbconfig.Migrations()).ApplyMigrations(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply database migrations: %w", err)
	}

	manager := &Manager{
		db:           db,
		config:       config,
		writeChannel: make(chan writeOperation, 16),
		shutdown:     make(chan struct{}),
		retryDelay:   250 * time.Millisecond,
	}

	// ARCHITECTURAL DISCOVERY: Single-writer goroutine prevents SQLite write contention
	manager.wg.Add(1)
	go manager.writeLoop()

	log.Printf("Database opened: path=%s", config.DatabasePath)
	return manager, nil
}

// writeLoop processes all write operations in a single goroutine
func (m *Manager) writeLoop() {
	defer m.wg.Done()

	for {
		select {
		case op := <-m.writeChannel:
			// FUNCTIONAL DISCOVERY: A busy or locked database is retried exactly
			// once; constraint and other errors fail straight away
			err := op.operation(m.db)
			if err != nil && isTransient(err) {
				log.Printf("Database write failed, retrying in %v: %v", m.retryDelay, err)
				time.Sleep(m.retryDelay)
				err = op.operation(m.db)
				if err != nil {
					log.Printf("Database write failed after retry: %v", err)
				}
			}
			op.result <- err

		case <-m.shutdown:
			log.Println("Database write loop shutting down")
			return
		}
	}
}

// isTransient reports whether err is a lock conflict that may clear on retry.
func isTransient(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked
}

// executeWrite queues a write operation and waits for completion
func (m *Manager) executeWrite(ctx context.Context, operation func(*sql.DB) error) error {
	m.mu.RLock()
	if m.closed {
		m.mu.RUnlock()
		return ErrClosed
	}
	m.mu.RUnlock()

	result := make(chan error, 1)
	timeout := time.NewTimer(m.config.WriteTimeout)
	defer timeout.Stop()

	select {
	case m.writeChannel <- writeOperation{operation: operation, result: result}:
	case <-timeout.C:
		return ErrWriteTimeout
	case <-m.shutdown:
		return ErrShuttingDown
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-result:
		return err
	case <-timeout.C:
		return ErrWriteTimeout
	}
}

// SaveSnapshot replaces everything stored with snapshot in one transaction.
func (m *Manager) SaveSnapshot(ctx context.Context, snapshot *types.Snapshot) error {
	if snapshot == nil {
		return fmt.Errorf("%w: snapshot is nil", types.ErrInvalidArgument)
	}

	return m.executeWrite(ctx, func(db *sql.DB) error {
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}
		defer func() { _ = tx.Rollback() }() // TECHNICAL: Always rollback unless commit succeeds

		// Children first so the foreign keys never see an orphan.
		for _, table := range []string{"notes", "attachments", "session_students", "sessions", "students"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
				return fmt.Errorf("failed to clear %s: %w", table, err)
			}
		}

		if err := insertStudents(ctx, tx, snapshot.Students); err != nil {
			return err
		}
		for _, kind := range types.SessionKinds {
			if err := insertSessions(ctx, tx, kind, snapshot.Sessions(kind)); err != nil {
				return err
			}
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit snapshot: %w", err)
		}
		return nil
	})
}

func insertStudents(ctx context.Context, tx *sql.Tx, students []types.Student) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO students (id, position, name, phone, email, address, tags, performance)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare student insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, s := range students {
		// TECHNICAL DISCOVERY: JSON serialization for tags keeps one row per student
		tags := s.Tags
		if tags == nil {
			tags = []string{}
		}
		tagsJSON, err := json.Marshal(tags)
		if err != nil {
			return fmt.Errorf("failed to marshal tags: %w", err)
		}
		if _, err := stmt.ExecContext(ctx, s.ID, i, s.Name, s.Phone, s.Email, s.Address, string(tagsJSON), s.Performance); err != nil {
			return fmt.Errorf("failed to insert student %s: %w", s.ID, err)
		}
	}
	return nil
}

func insertSessions(ctx context.Context, tx *sql.Tx, kind types.SessionKind, records []types.SessionRecord) error {
	for i, rec := range records {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO sessions (kind, name, position, date) VALUES (?, ?, ?, ?)`,
			kind, rec.Name, i, rec.Date,
		); err != nil {
			return fmt.Errorf("failed to insert %s %s: %w", kind, rec.Name, err)
		}
		for pos, id := range rec.Roster {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO session_students (kind, session_name, position, student_id) VALUES (?, ?, ?, ?)`,
				kind, rec.Name, pos, id,
			); err != nil {
				return fmt.Errorf("failed to insert roster entry %s for %s %s: %w", id, kind, rec.Name, err)
			}
		}
		for pos, path := range rec.Attachments {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO attachments (kind, session_name, position, path) VALUES (?, ?, ?, ?)`,
				kind, rec.Name, pos, path,
			); err != nil {
				return fmt.Errorf("failed to insert attachment for %s %s: %w", kind, rec.Name, err)
			}
		}
		for pos, note := range rec.Notes {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO notes (kind, session_name, position, text, created) VALUES (?, ?, ?, ?, ?)`,
				kind, rec.Name, pos, note.Text, note.Date,
			); err != nil {
				return fmt.Errorf("failed to insert note for %s %s: %w", kind, rec.Name, err)
			}
		}
	}
	return nil
}

// LoadSnapshot reads the stored state. An empty database yields an empty
// snapshot.
func (m *Manager) LoadSnapshot(ctx context.Context) (*types.Snapshot, error) {
	// ARCHITECTURAL DISCOVERY: Read operations can be concurrent - no need for writeChannel
	snap := &types.Snapshot{
		Students:      []types.Student{},
		Tutorials:     []types.SessionRecord{},
		Labs:          []types.SessionRecord{},
		Consultations: []types.SessionRecord{},
	}

	students, err := m.loadStudents(ctx)
	if err != nil {
		return nil, err
	}
	snap.Students = append(snap.Students, students...)

	for _, kind := range types.SessionKinds {
		records, err := m.loadSessions(ctx, kind)
		if err != nil {
			return nil, err
		}
		snap.SetSessions(kind, records)
	}
	return snap, nil
}

func (m *Manager) loadStudents(ctx context.Context) ([]types.Student, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT id, name, phone, email, address, tags, performance
		FROM students
		ORDER BY position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query students: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var students []types.Student
	for rows.Next() {
		var s types.Student
		var tagsJSON string
		if err := rows.Scan(&s.ID, &s.Name, &s.Phone, &s.Email, &s.Address, &tagsJSON, &s.Performance); err != nil {
			return nil, fmt.Errorf("failed to scan student row: %w", err)
		}
		if err := json.Unmarshal([]byte(tagsJSON), &s.Tags); err != nil {
			return nil, fmt.Errorf("failed to unmarshal tags of %s: %w", s.ID, err)
		}
		if len(s.Tags) == 0 {
			s.Tags = nil
		}
		students = append(students, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating student rows: %w", err)
	}
	return students, nil
}

func (m *Manager) loadSessions(ctx context.Context, kind types.SessionKind) ([]types.SessionRecord, error) {
	rows, err := m.db.QueryContext(ctx,
		`SELECT name, date FROM sessions WHERE kind = ? ORDER BY position ASC`, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s sessions: %w", kind, err)
	}

	records := []types.SessionRecord{}
	for rows.Next() {
		rec := types.SessionRecord{
			Roster:      []types.StudentID{},
			Attachments: []string{},
			Notes:       []types.NoteRecord{},
		}
		if err := rows.Scan(&rec.Name, &rec.Date); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("failed to scan session row: %w", err)
		}
		records = append(records, rec)
	}
	err = rows.Err()
	_ = rows.Close()
	if err != nil {
		return nil, fmt.Errorf("error iterating session rows: %w", err)
	}

	for i := range records {
		if err := m.loadSessionChildren(ctx, kind, &records[i]); err != nil {
			return nil, err
		}
	}
	return records, nil
}

func (m *Manager) loadSessionChildren(ctx context.Context, kind types.SessionKind, rec *types.SessionRecord) error {
	err := m.queryEach(ctx,
		`SELECT student_id FROM session_students WHERE kind = ? AND session_name = ? ORDER BY position ASC`,
		[]any{kind, rec.Name},
		func(rows *sql.Rows) error {
			var id types.StudentID
			if err := rows.Scan(&id); err != nil {
				return err
			}
			rec.Roster = append(rec.Roster, id)
			return nil
		})
	if err != nil {
		return fmt.Errorf("failed to load roster of %s %s: %w", kind, rec.Name, err)
	}

	err = m.queryEach(ctx,
		`SELECT path FROM attachments WHERE kind = ? AND session_name = ? ORDER BY position ASC`,
		[]any{kind, rec.Name},
		func(rows *sql.Rows) error {
			var path string
			if err := rows.Scan(&path); err != nil {
				return err
			}
			rec.Attachments = append(rec.Attachments, path)
			return nil
		})
	if err != nil {
		return fmt.Errorf("failed to load attachments of %s %s: %w", kind, rec.Name, err)
	}

	err = m.queryEach(ctx,
		`SELECT text, created FROM notes WHERE kind = ? AND session_name = ? ORDER BY position ASC`,
		[]any{kind, rec.Name},
		func(rows *sql.Rows) error {
			var note types.NoteRecord
			if err := rows.Scan(&note.Text, &note.Date); err != nil {
				return err
			}
			rec.Notes = append(rec.Notes, note)
			return nil
		})
	if err != nil {
		return fmt.Errorf("failed to load notes of %s %s: %w", kind, rec.Name, err)
	}
	return nil
}

func (m *Manager) queryEach(ctx context.Context, query string, args []any, scan func(*sql.Rows) error) error {
	rows, err := m.db.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

// HealthCheck validates database connectivity
func (m *Manager) HealthCheck(ctx context.Context) error {
	if err := m.db.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	var count int
	if err := m.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM students").Scan(&count); err != nil {
		return fmt.Errorf("database read test failed: %w", err)
	}
	return nil
}

// GetDB returns the underlying database connection
func (m *Manager) GetDB() *sql.DB {
	return m.db
}

// Close shuts down the database manager
func (m *Manager) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	m.mu.Unlock()

	// ARCHITECTURAL DISCOVERY: Stop the writer before closing the pool it writes to
	close(m.shutdown)
	m.wg.Wait()

	if err := m.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}
