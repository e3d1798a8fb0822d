package sqlite

import (
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/cadence/internal/constants"
	"github.com/julianstephens/cadence/internal/logger"
	"github.com/julianstephens/cadence/internal/migration"
	"github.com/julianstephens/cadence/internal/models"
	"github.com/julianstephens/cadence/migrations"
)

type Store struct {
	path string
	db   *sql.DB
}

func NewStore(path string) *Store {
	return &Store{
		path: path,
	}
}

func (s *Store) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if s.db == nil {
		if err := s.open(); err != nil {
			return err
		}
	}

	if _, err := s.RunMigrations(func(msg string) { logger.Info(msg) }); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Fill in default settings on first init
	settings, err := s.GetSettings()
	if err != nil || settings.DayStart == "" {
		defaults := models.Settings{
			DayStart:           constants.DefaultDayStart,
			DayEnd:             constants.DefaultDayEnd,
			DefaultDurationMin: constants.DefaultDurationMin,
			Timezone:           constants.DefaultTimezone,
		}
		if err := s.SaveSettings(defaults); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}

	return nil
}

func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run '%s system init' first", constants.AppName)
	}

	if err := s.open(); err != nil {
		return err
	}
	return s.migrationRunner().ValidateVersion()
}

func (s *Store) open() error {
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	// one writer at a time
	db.SetMaxOpenConns(1)
	s.db = db
	return nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *Store) migrationRunner() *migration.Runner {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		// the embedded directory is fixed at build time
		panic(fmt.Sprintf("failed to access sqlite migrations: %v", err))
	}
	return migration.NewRunner(s.db, subFS, migration.SQLite)
}

// RunMigrations applies pending schema migrations and returns how many ran
func (s *Store) RunMigrations(logFn func(string)) (int, error) {
	return s.migrationRunner().ApplyMigrations(logFn)
}

// MigrationStatus reports the current and latest schema versions
func (s *Store) MigrationStatus() (migration.Status, error) {
	return s.migrationRunner().Status()
}

func (s *Store) GetConfigPath() string {
	return s.path
}

// GetDB exposes the underlying handle for diagnostics
func (s *Store) GetDB() *sql.DB {
	return s.db
}
