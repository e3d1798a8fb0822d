package system

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/julianstephens/cadence/internal/cli"
	"github.com/julianstephens/cadence/internal/constants"
	"github.com/julianstephens/cadence/internal/keyring"
	"github.com/julianstephens/cadence/internal/storage/postgres"
)

type KeyringCmd struct {
	Set    *KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
	Get    *KeyringGetCmd    `cmd:"" help:"Show the stored connection string with the password masked."`
	Delete *KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
	Status *KeyringStatusCmd `cmd:"" help:"Report keyring availability and where the connection string comes from."`
}

type KeyringSetCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string to store."`
}

func isPostgresConnString(s string) bool {
	return strings.HasPrefix(s, "postgres://") ||
		strings.HasPrefix(s, "postgresql://") ||
		strings.Contains(s, "host=")
}

func (cmd *KeyringSetCmd) Run(ctx *cli.Context) error {
	if !isPostgresConnString(cmd.ConnectionString) {
		return errors.New("connection string must be a valid PostgreSQL connection string")
	}

	if _, err := postgres.ValidateConnString(cmd.ConnectionString); err != nil {
		if !errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return fmt.Errorf("invalid connection string: %w", err)
		}
		// the keyring itself is encrypted storage
		fmt.Println(cli.WarningStyle.Render("Connection string contains embedded credentials; storing it as-is in the OS keyring."))
	}

	if err := keyring.SetConnectionString(cmd.ConnectionString); err != nil {
		return fmt.Errorf("failed to store connection string in keyring: %w", err)
	}

	fmt.Println(cli.SuccessStyle.Render("✓ Connection string stored in OS keyring"))
	fmt.Printf("  Run %s with --config=postgres to use it\n", constants.AppName)
	return nil
}

type KeyringGetCmd struct{}

func (cmd *KeyringGetCmd) Run(ctx *cli.Context) error {
	connStr, err := keyring.GetConnectionString()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("no connection string found in keyring, use '%s system keyring set' to store one", constants.AppName)
		}
		return fmt.Errorf("failed to retrieve connection string from keyring: %w", err)
	}
	fmt.Println(maskPassword(connStr))
	return nil
}

type KeyringDeleteCmd struct{}

func (cmd *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	if err := keyring.DeleteConnectionString(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring")
		}
		return fmt.Errorf("failed to delete connection string from keyring: %w", err)
	}
	fmt.Println(cli.SuccessStyle.Render("✓ Connection string deleted from OS keyring"))
	return nil
}

type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		fmt.Println(cli.DangerStyle.Render("❌ OS keyring is not available on this system"))
		return keyring.ErrKeyringUnavailable
	}
	fmt.Println(cli.SuccessStyle.Render("✓ OS keyring is available"))

	connStr, source, err := keyring.ResolveConnectionString()
	switch {
	case err == nil:
		fmt.Printf("Connection string from %s: %s\n", source, maskPassword(connStr))
	case errors.Is(err, keyring.ErrNotFound):
		fmt.Println(cli.MutedStyle.Render("No connection string configured"))
	default:
		return err
	}
	return nil
}

// maskPassword hides the password of a URL or key=value connection string
func maskPassword(connStr string) string {
	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		u, err := url.Parse(connStr)
		if err != nil || u.User == nil {
			return connStr
		}
		if _, ok := u.User.Password(); !ok {
			return connStr
		}
		scheme, rest, _ := strings.Cut(connStr, "://")
		at := strings.LastIndex(rest, "@")
		return scheme + "://" + u.User.Username() + ":****" + rest[at:]
	}

	if !strings.Contains(connStr, "password=") {
		return connStr
	}
	fields := strings.Fields(connStr)
	for i, f := range fields {
		if strings.HasPrefix(f, "password=") {
			fields[i] = "password=****"
		}
	}
	return strings.Join(fields, " ")
}
