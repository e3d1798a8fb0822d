package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/cadence/internal/cli"
	"github.com/julianstephens/cadence/internal/constants"
	"github.com/julianstephens/cadence/internal/storage"
	"github.com/julianstephens/cadence/internal/storage/postgres"
	"github.com/julianstephens/cadence/internal/storage/sqlite"
)

type InitCmd struct {
	Force  bool   `help:"Delete an existing SQLite database before initializing."`
	Source string `help:"Database path or PostgreSQL connection string to copy data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.removeExisting(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized %s storage at: %s\n", constants.AppName, ctx.Store.GetConfigPath())

	if c.Source == "" {
		return nil
	}
	fmt.Printf("Copying data from: %s\n", c.Source)
	src, err := openSource(c.Source)
	if err != nil {
		return err
	}
	defer src.Close()

	if err := copyData(src, ctx.Store); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	fmt.Println(cli.SuccessStyle.Render("Migration completed successfully!"))
	return nil
}

func (c *InitCmd) removeExisting(ctx *cli.Context) error {
	if _, ok := ctx.Store.(*sqlite.Store); !ok {
		return errors.New("--force is only supported for SQLite storage")
	}
	dbPath, err := filepath.Abs(ctx.Store.GetConfigPath())
	if err != nil {
		return fmt.Errorf("failed to resolve database path: %w", err)
	}
	if c.Source != "" {
		if src, err := filepath.Abs(c.Source); err == nil && src == dbPath {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
		}
	}

	if _, err := os.Stat(dbPath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to access existing database: %w", err)
	}
	if err := ctx.Store.Close(); err != nil {
		return fmt.Errorf("failed to close existing database: %w", err)
	}
	if err := os.Remove(dbPath); err != nil {
		return fmt.Errorf("failed to delete existing database: %w", err)
	}
	fmt.Printf("Deleted existing database at: %s\n", dbPath)
	return nil
}

func openSource(source string) (storage.Provider, error) {
	var src storage.Provider
	if isPostgresConnString(source) {
		if _, err := postgres.ValidateConnString(source); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, errors.New("PostgreSQL source connection string contains embedded credentials, use environment variables or .pgpass instead")
			}
			return nil, err
		}
		src = postgres.New(source)
	} else {
		src = sqlite.NewStore(source)
	}
	if err := src.Load(); err != nil {
		return nil, fmt.Errorf("failed to load source database: %w", err)
	}
	return src, nil
}

// copyData copies every record from src into dst. Soft-deleted tasks are
// included so history keeps resolving.
func copyData(src, dst storage.Provider) error {
	settings, err := src.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings from source: %w", err)
	}
	if err := dst.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings to destination: %w", err)
	}
	for _, key := range []string{constants.SettingSpecialPeriods, constants.SettingPeriodCategories} {
		raw, ok, err := src.GetSetting(key)
		if err != nil {
			return fmt.Errorf("failed to get %s from source: %w", key, err)
		}
		if !ok {
			continue
		}
		if err := dst.SetSetting(key, raw); err != nil {
			return fmt.Errorf("failed to save %s to destination: %w", key, err)
		}
	}

	tasks, err := src.GetAllTasksIncludingDeleted()
	if err != nil {
		return fmt.Errorf("failed to get tasks from source: %w", err)
	}
	for _, task := range tasks {
		if err := dst.AddTask(task); err != nil {
			return fmt.Errorf("failed to add task %s: %w", task.ID, err)
		}
	}
	fmt.Printf("  Copied %d tasks\n", len(tasks))

	history, err := src.GetAllHistory()
	if err != nil {
		return fmt.Errorf("failed to get history from source: %w", err)
	}
	for _, entry := range history {
		if err := dst.AddHistoryEntry(entry); err != nil {
			return fmt.Errorf("failed to add history entry %s: %w", entry.ID, err)
		}
	}
	fmt.Printf("  Copied %d history entries\n", len(history))

	instances, err := src.GetAllScheduledInstances()
	if err != nil {
		return fmt.Errorf("failed to get scheduled instances from source: %w", err)
	}
	for _, inst := range instances {
		if err := dst.AddScheduledInstance(inst); err != nil {
			return fmt.Errorf("failed to add scheduled instance %s: %w", inst.ID, err)
		}
	}
	fmt.Printf("  Copied %d scheduled instances\n", len(instances))

	patterns, err := src.GetAllPatterns()
	if err != nil {
		return fmt.Errorf("failed to get patterns from source: %w", err)
	}
	for _, p := range patterns {
		if _, err := dst.SavePattern(p); err != nil {
			return fmt.Errorf("failed to save pattern %s: %w", p.ID, err)
		}
	}
	fmt.Printf("  Copied %d patterns\n", len(patterns))
	return nil
}
