package transactions

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Gustitos/gustitosgo-backend/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const transactionsCSV = `Merchant,Organization,Created at,Gross total cents,User
Burger King Downtown,OrgA,2025-01-15,500,u-001
Starbucks Mall Plaza,OrgA,2025-02-01,425,u-002
`

func writeTransactionsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "transactions.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestStoreLoad(t *testing.T) {
	store := NewStore(writeTransactionsFile(t, transactionsCSV), &logging.MockLogger{})

	snap := store.Load()

	require.NotNil(t, snap)
	assert.Equal(t, 2, snap.Len())
	fallback, _ := snap.Fallback()
	assert.False(t, fallback)

	rec := snap.Records()[0]
	assert.Equal(t, "Burger King Downtown", rec.Merchant)
	assert.Equal(t, "OrgA", rec.Organization)
	assert.Equal(t, "2025-01-15", rec.CreatedAt)
	assert.Equal(t, int64(500), rec.GrossTotalCents)
	assert.Equal(t, "u-001", rec.UserID)
}

func TestStoreMissingFileFallsBack(t *testing.T) {
	logger := &logging.MockLogger{}
	store := NewStore(filepath.Join(t.TempDir(), "nope.csv"), logger)

	snap := store.Load()

	fallback, reason := snap.Fallback()
	assert.True(t, fallback)
	assert.Contains(t, reason, "transaction load failed")
	assert.Equal(t, Placeholder().Len(), snap.Len())
	assert.True(t, logger.HasEntry("WARN", "Transaction data unavailable, using placeholder snapshot"))
}

func TestStoreSnapshotLazyLoads(t *testing.T) {
	store := NewStore(writeTransactionsFile(t, transactionsCSV), &logging.MockLogger{})

	snap := store.Snapshot()
	assert.Equal(t, 2, snap.Len())

	// Repeated calls return the same snapshot until a reload.
	assert.Same(t, snap, store.Snapshot())
}

func TestStoreReloadSwapsSnapshot(t *testing.T) {
	path := writeTransactionsFile(t, transactionsCSV)
	store := NewStore(path, &logging.MockLogger{})

	before := store.Snapshot()
	require.Equal(t, 2, before.Len())

	extended := transactionsCSV + "Pizza Hut Express,OrgB,2025-02-10,1299,u-003\n"
	require.NoError(t, os.WriteFile(path, []byte(extended), 0644))

	after := store.Load()
	assert.Equal(t, 3, after.Len())
	assert.Equal(t, 2, before.Len(), "held snapshots are immutable across reloads")
	assert.Same(t, after, store.Snapshot())
}

func TestPlaceholderDeterministic(t *testing.T) {
	first := Placeholder()
	second := Placeholder()

	assert.Equal(t, first.Records(), second.Records())
	fallback, reason := first.Fallback()
	assert.True(t, fallback)
	assert.Equal(t, "placeholder data", reason)
}
