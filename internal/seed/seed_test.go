package seed

import (
	"database/sql"
	"os"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Tareqhaboukh/project-one/internal/models"
	"github.com/Tareqhaboukh/project-one/internal/repository"
)

func newSeeder(t *testing.T) (*Seeder, *repository.UserRepository, *repository.VendorRepository, *repository.InvoiceRepository) {
	t.Helper()

	db, err := sql.Open("sqlite3", "file::memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	schema, err := os.ReadFile("../../migrations/001_initial_schema.sql")
	require.NoError(t, err)
	_, err = db.Exec(string(schema))
	require.NoError(t, err)

	logger := zap.NewNop()
	users := repository.NewUserRepository(db, logger)
	vendors := repository.NewVendorRepository(db, logger)
	invoices := repository.NewInvoiceRepository(db, logger)
	return NewSeeder(users, vendors, invoices, logger), users, vendors, invoices
}

func TestRun_SeedsDemoData(t *testing.T) {
	seeder, users, vendors, invoices := newSeeder(t)

	require.NoError(t, seeder.Run())

	guest, err := users.GetByUsername(models.GuestUsername)
	require.NoError(t, err)
	assert.True(t, guest.IsGuest())

	all, err := users.List()
	require.NoError(t, err)
	assert.Len(t, all, 5)

	refs, err := vendors.ListRefs()
	require.NoError(t, err)
	require.Len(t, refs, 5)
	assert.Equal(t, "Global Supplies Inc.", refs[0].Name)

	count, err := invoices.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)
}

func TestRun_IsIdempotent(t *testing.T) {
	seeder, users, _, invoices := newSeeder(t)

	require.NoError(t, seeder.Run())
	require.NoError(t, seeder.Run())

	all, err := users.List()
	require.NoError(t, err)
	assert.Len(t, all, 5)

	count, err := invoices.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)
}
