package app

import (
	"context"
	"fmt"
	"io"
	"log"

	"classmate/internal/command"
	"classmate/internal/config"
	"classmate/internal/database"
	"classmate/internal/dispatcher"
	"classmate/internal/model"
	"classmate/internal/shell"
	"classmate/internal/snapshot"
	pkgdatabase "classmate/pkg/database"
	"classmate/pkg/interfaces"
)

// Application coordinates all system components
// Clean dependency injection pattern with proper initialization order
type Application struct {
	config     *config.Config
	store      interfaces.SnapshotStore
	model      *model.Model
	dispatcher *dispatcher.Dispatcher
	shell      *shell.Shell
	logCloser  io.Closer

	// savedVersion is the model version last written to the store.
	savedVersion uint64
}

// NewApplication creates a new application instance with all components initialized
// Component initialization follows strict dependency order:
// Logging → Database → Model → Dispatcher → Shell
func NewApplication(cfg *config.Config) (*Application, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	// Validate configuration before component initialization
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logCloser, err := setupLogging(cfg.Log)
	if err != nil {
		return nil, err
	}

	// STEP 1: Initialize database manager (migrations run inside)
	dbConfig := pkgdatabase.DefaultConfig()
	dbConfig.DatabasePath = cfg.Database.Path
	dbConfig.WriteTimeout = cfg.Database.Timeout

	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		logCloser.Close()
		return nil, fmt.Errorf("failed to initialize database manager: %w", err)
	}

	application, err := newWithStore(cfg, dbManager)
	if err != nil {
		dbManager.Close()
		logCloser.Close()
		return nil, err
	}
	application.logCloser = logCloser
	return application, nil
}

// newWithStore builds everything above the store.
func newWithStore(cfg *config.Config, store interfaces.SnapshotStore) (*Application, error) {
	// STEP 2: Hydrate the model from the stored snapshot
	snap, err := store.LoadSnapshot(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to load stored state: %w", err)
	}
	m := model.New()
	if err := m.Hydrate(snap); err != nil {
		return nil, fmt.Errorf("failed to restore stored state: %w", err)
	}

	// STEP 3: Dispatcher and shell over the hydrated model
	d := dispatcher.New(m)
	sh := shell.New(d, cfg.Shell.Prompt)

	application := &Application{
		config:       cfg,
		store:        store,
		model:        m,
		dispatcher:   d,
		shell:        sh,
		logCloser:    nopCloser{},
		savedVersion: m.Version(),
	}
	sh.AfterCommand(application.autosave)

	log.Printf("Application ready: students=%d", len(m.Students()))
	return application, nil
}

// Run drives the interactive shell until exit or EOF.
func (app *Application) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	return app.shell.Run(ctx, in, out)
}

// Exec runs one command line and saves the result.
func (app *Application) Exec(ctx context.Context, line string) (command.Result, error) {
	return app.shell.Execute(ctx, line)
}

// Export writes the current state to path as a YAML snapshot.
func (app *Application) Export(path string) error {
	if err := snapshot.WriteFile(path, app.model.Snapshot()); err != nil {
		return fmt.Errorf("failed to export snapshot: %w", err)
	}
	log.Printf("Exported snapshot to %s", path)
	return nil
}

// Import replaces the current state with the YAML snapshot at path and
// stores it. A snapshot that fails validation changes nothing.
func (app *Application) Import(ctx context.Context, path string) error {
	snap, err := snapshot.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to import snapshot: %w", err)
	}
	if err := app.model.Hydrate(snap); err != nil {
		return fmt.Errorf("failed to import snapshot: %w", err)
	}
	log.Printf("Imported snapshot from %s", path)
	return app.autosave(ctx)
}

// Model exposes the live model.
func (app *Application) Model() *model.Model {
	return app.model
}

// autosave writes a snapshot when the model changed since the last save.
func (app *Application) autosave(ctx context.Context) error {
	version := app.model.Version()
	if version == app.savedVersion {
		return nil
	}
	if err := app.store.SaveSnapshot(ctx, app.model.Snapshot()); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	app.savedVersion = version
	log.Printf("Snapshot saved: version=%d", version)
	return nil
}

// Stop gracefully shuts down the application
// Pending changes are saved before the store closes
func (app *Application) Stop(ctx context.Context) error {
	log.Printf("Shutting down Classmate application")

	saveErr := app.autosave(ctx)
	if saveErr != nil {
		log.Printf("Final save error: %v", saveErr)
	}
	if err := app.Close(); err != nil && saveErr == nil {
		return err
	}
	return saveErr
}

// Close releases the store and the log file without saving.
func (app *Application) Close() error {
	if err := app.store.Close(); err != nil {
		log.Printf("Database shutdown error: %v", err)
	}

	log.Printf("Classmate application shutdown complete")
	if err := app.logCloser.Close(); err != nil {
		return fmt.Errorf("failed to close log file: %w", err)
	}
	return nil
}
