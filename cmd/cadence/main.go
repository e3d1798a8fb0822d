package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/cadence/internal/cli"
	"github.com/julianstephens/cadence/internal/cli/analysis"
	"github.com/julianstephens/cadence/internal/cli/history"
	"github.com/julianstephens/cadence/internal/cli/periods"
	"github.com/julianstephens/cadence/internal/cli/schedule"
	"github.com/julianstephens/cadence/internal/cli/settings"
	"github.com/julianstephens/cadence/internal/cli/system"
	"github.com/julianstephens/cadence/internal/cli/tasks"
	"github.com/julianstephens/cadence/internal/constants"
	apperrors "github.com/julianstephens/cadence/internal/errors"
	"github.com/julianstephens/cadence/internal/keyring"
	"github.com/julianstephens/cadence/internal/logger"
	"github.com/julianstephens/cadence/internal/storage"
	"github.com/julianstephens/cadence/internal/storage/postgres"
	"github.com/julianstephens/cadence/internal/storage/sqlite"
)

// postgresFromKeyring selects the connection string stored in the environment or keyring
const postgresFromKeyring = "postgres"

var CLI struct {
	Version kong.VersionFlag `help:"Print version and exit."`
	Config  string           `help:"SQLite database path, PostgreSQL connection string, or 'postgres' to use the stored connection string. Credentials must NOT be embedded in the connection string." env:"CADENCE_CONFIG" default:"${default_config}"`
	Debug   bool             `help:"Enable debug logging to stderr." env:"CADENCE_DEBUG"`

	Analyze  analysis.AnalyzeCmd  `cmd:"" help:"Analyze history, refresh learned patterns and show insights."`
	Suggest  analysis.SuggestCmd  `cmd:"" help:"Suggest a routine for a day from learned patterns."`
	Patterns analysis.PatternsCmd `cmd:"" help:"List learned patterns."`
	Log      struct {
		Done history.LogDoneCmd `cmd:"" help:"Record a completed task."`
		Skip history.LogSkipCmd `cmd:"" help:"Record a skipped task."`
	} `cmd:"" help:"Record task history."`
	Task struct {
		Add     tasks.TaskAddCmd     `cmd:"" help:"Add a new task."`
		List    tasks.TaskListCmd    `cmd:"" help:"List tasks."`
		Edit    tasks.TaskEditCmd    `cmd:"" help:"Edit an existing task."`
		Delete  tasks.TaskDeleteCmd  `cmd:"" help:"Delete a task."`
		Restore tasks.TaskRestoreCmd `cmd:"" help:"Restore a deleted task."`
	} `cmd:"" help:"Manage tasks."`
	Schedule struct {
		Add  schedule.ScheduleAddCmd  `cmd:"" help:"Schedule a task on a day."`
		List schedule.ScheduleListCmd `cmd:"" help:"Show the schedule for a day."`
	} `cmd:"" help:"Manage the schedule."`
	Period struct {
		Add      periods.PeriodAddCmd    `cmd:"" help:"Mark a date range as a special period."`
		List     periods.PeriodListCmd   `cmd:"" help:"List special periods."`
		Remove   periods.PeriodRemoveCmd `cmd:"" help:"Remove a special period."`
		Category struct {
			Add  periods.CategoryAddCmd  `cmd:"" help:"Add a period category."`
			List periods.CategoryListCmd `cmd:"" help:"List period categories."`
		} `cmd:"" help:"Manage period categories."`
	} `cmd:"" help:"Manage special periods such as vacations or sick days."`
	Settings settings.SettingsCmd `cmd:"" help:"Show or change settings."`
	System   struct {
		Init    system.InitCmd    `cmd:"" help:"Initialize storage."`
		Migrate system.MigrateCmd `cmd:"" help:"Run database migrations."`
		Doctor  system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
		Keyring system.KeyringCmd `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
		Debug   system.DebugCmd   `cmd:"" help:"Debug commands for troubleshooting."`
	} `cmd:"" help:"Storage and maintenance commands."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Learns your routines from task history and suggests how to plan your week"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":              constants.Version,
			"default_config":       constants.DefaultConfigPath,
			"default_period_color": constants.DefaultPeriodCategoryColor,
		},
	)

	store, configDir, err := openStore(CLI.Config)
	if err != nil {
		apperrors.Fatal(err)
	}

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: configDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}
	logger.Debug("starting", "command", ctx.Command(), "storage", store.GetConfigPath())

	if needsLoadedStore(ctx.Command()) {
		if err := store.Load(); err != nil {
			apperrors.Fatal(apperrors.WithHint(err, fmt.Sprintf("run '%s system init' to create the database", constants.AppName)))
		}
	}
	defer store.Close()

	if err := ctx.Run(&cli.Context{Store: store}); err != nil {
		_ = store.Close()
		apperrors.Fatal(err)
	}
}

// needsLoadedStore is false for commands that manage storage themselves
func needsLoadedStore(command string) bool {
	return !strings.HasPrefix(command, "system init") && !strings.HasPrefix(command, "system keyring")
}

// openStore picks the backend for the --config value and returns the
// directory logs are written to
func openStore(config string) (storage.Provider, string, error) {
	defaultDir, err := expandHome(filepath.Dir(constants.DefaultConfigPath))
	if err != nil {
		return nil, "", err
	}

	if config == postgresFromKeyring {
		connStr, source, err := keyring.ResolveConnectionString()
		if err != nil {
			if errors.Is(err, keyring.ErrNotFound) {
				return nil, "", apperrors.WithHint(errors.New("no PostgreSQL connection string configured"),
					fmt.Sprintf("set %s or run '%s system keyring set <conn>'", constants.EnvDBConnection, constants.AppName))
			}
			return nil, "", err
		}
		// the keyring is trusted to hold credentials
		if _, err := postgres.ValidateConnString(connStr); err != nil && !errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return nil, "", fmt.Errorf("invalid connection string from %s: %w", source, err)
		}
		return postgres.New(connStr), defaultDir, nil
	}

	if strings.HasPrefix(config, "postgres://") || strings.HasPrefix(config, "postgresql://") {
		if _, err := postgres.ValidateConnString(config); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, "", apperrors.WithHint(err, fmt.Sprintf(
					"store the connection string with '%s system keyring set' and pass --config=%s, export %s, or use a .pgpass file",
					constants.AppName, postgresFromKeyring, constants.EnvDBConnection))
			}
			return nil, "", err
		}
		return postgres.New(config), defaultDir, nil
	}

	path, err := expandHome(config)
	if err != nil {
		return nil, "", err
	}
	return sqlite.NewStore(path), filepath.Dir(path), nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
