package system

import (
	"fmt"

	"github.com/julianstephens/cadence/internal/cli"
	"github.com/julianstephens/cadence/internal/migration"
)

// Migrator is implemented by stores backed by the embedded SQL migrations
type Migrator interface {
	RunMigrations(logFn func(string)) (int, error)
	MigrationStatus() (migration.Status, error)
}

type MigrateCmd struct {
	Status bool `help:"Only report pending migrations."`
}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	m, ok := ctx.Store.(Migrator)
	if !ok {
		return fmt.Errorf("storage backend %s does not support migrations", ctx.Store.GetConfigPath())
	}

	if c.Status {
		st, err := m.MigrationStatus()
		if err != nil {
			return err
		}
		fmt.Printf("Schema version %d of %d\n", st.Current, st.Latest)
		for _, p := range st.Pending {
			fmt.Printf("  pending: %03d_%s\n", p.Version, p.Name)
		}
		return nil
	}

	count, err := m.RunMigrations(func(msg string) {
		fmt.Println(msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		fmt.Println("No migrations to apply. Database is up to date.")
	} else {
		fmt.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}
	return nil
}
