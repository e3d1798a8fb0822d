package postgres

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/julianstephens/cadence/internal/storage/storagetest"
)

// Set POSTGRES_TEST_URL to run, e.g.
// POSTGRES_TEST_URL="postgres://cadence_user@localhost:5432/cadence_test?sslmode=disable"
func TestStore_Integration(t *testing.T) {
	connStr := os.Getenv("POSTGRES_TEST_URL")
	if connStr == "" {
		t.Skip("POSTGRES_TEST_URL not set, skipping PostgreSQL integration test")
	}

	store := New(connStr)
	require.NoError(t, store.Init())
	defer store.Close()

	status, err := store.MigrationStatus()
	require.NoError(t, err)
	require.True(t, status.UpToDate())

	storagetest.RunProvider(t, store, fmt.Sprintf("it-%d-", time.Now().UnixNano()))
}
