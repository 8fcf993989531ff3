package repository

import (
	"database/sql"
	"os"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Tareqhaboukh/project-one/internal/models"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", "file::memory:?_foreign_keys=on")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	schema, err := os.ReadFile("../../migrations/001_initial_schema.sql")
	require.NoError(t, err)
	_, err = db.Exec(string(schema))
	require.NoError(t, err)

	return db
}

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func TestVendorRepository_CRUD(t *testing.T) {
	db := newTestDB(t)
	repo := NewVendorRepository(db, zap.NewNop())

	vendor := &models.Vendor{
		VendorName:   "TechMart Solutions",
		BusinessType: "IT Services",
		TaxID:        "TAX54321",
		Country:      "USA",
		City:         "New York",
		PostalCode:   "10001",
		CreatedBy:    "asmith",
	}
	require.NoError(t, repo.Create(vendor))
	assert.NotZero(t, vendor.ID)

	got, err := repo.GetByID(vendor.ID)
	require.NoError(t, err)
	assert.Equal(t, "TechMart Solutions", got.VendorName)
	assert.Equal(t, "IT Services", got.BusinessType)

	got.City = "Boston"
	require.NoError(t, repo.Update(got))
	updated, err := repo.GetByID(vendor.ID)
	require.NoError(t, err)
	assert.Equal(t, "Boston", updated.City)

	require.NoError(t, repo.Delete(vendor.ID))
	_, err = repo.GetByID(vendor.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(vendor.ID), ErrNotFound)
}

func TestVendorRepository_ListRefsOrderedByID(t *testing.T) {
	db := newTestDB(t)
	repo := NewVendorRepository(db, zap.NewNop())

	for _, name := range []string{"TechMart", "TechMart Solutions", "Acme"} {
		require.NoError(t, repo.Create(&models.Vendor{VendorName: name, CreatedBy: "jdoe"}))
	}

	refs, err := repo.ListRefs()
	require.NoError(t, err)
	require.Len(t, refs, 3)
	assert.Equal(t, "TechMart", refs[0].Name)
	assert.Equal(t, "TechMart Solutions", refs[1].Name)
	assert.True(t, refs[0].ID < refs[1].ID && refs[1].ID < refs[2].ID)
}

func TestInvoiceRepository_NullableFields(t *testing.T) {
	db := newTestDB(t)
	vendorRepo := NewVendorRepository(db, zap.NewNop())
	repo := NewInvoiceRepository(db, zap.NewNop())

	vendor := &models.Vendor{VendorName: "BlueSky Logistics", CreatedBy: "jdoe"}
	require.NoError(t, vendorRepo.Create(vendor))

	full := &models.Invoice{
		InvoiceNumber: strPtr("INV007"),
		Date:          strPtr("03/14/2024"),
		Amount:        floatPtr(1234.56),
		Tax:           floatPtr(160.49),
		Description:   strPtr("Freight"),
		VendorID:      &vendor.ID,
		CreatedBy:     "jdoe",
	}
	require.NoError(t, repo.Create(full))

	// Partial parses persist with NULL columns rather than being rejected.
	partial := &models.Invoice{CreatedBy: "guest"}
	require.NoError(t, repo.Create(partial))

	got, err := repo.GetByID(full.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Amount)
	assert.InDelta(t, 1234.56, *got.Amount, 0.0001)
	require.NotNil(t, got.VendorName)
	assert.Equal(t, "BlueSky Logistics", *got.VendorName)

	got, err = repo.GetByID(partial.ID)
	require.NoError(t, err)
	assert.Nil(t, got.InvoiceNumber)
	assert.Nil(t, got.Amount)
	assert.Nil(t, got.VendorID)
	assert.Nil(t, got.VendorName)

	all, err := repo.List()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestAnalyticsRepository_Aggregation(t *testing.T) {
	db := newTestDB(t)
	vendorRepo := NewVendorRepository(db, zap.NewNop())
	invoiceRepo := NewInvoiceRepository(db, zap.NewNop())
	repo := NewAnalyticsRepository(db, zap.NewNop())

	techmart := &models.Vendor{VendorName: "TechMart Solutions", CreatedBy: "jdoe"}
	bluesky := &models.Vendor{VendorName: "BlueSky Logistics", CreatedBy: "jdoe"}
	require.NoError(t, vendorRepo.Create(techmart))
	require.NoError(t, vendorRepo.Create(bluesky))

	invoices := []*models.Invoice{
		{Date: strPtr("03/14/2024"), Amount: floatPtr(100), Tax: floatPtr(13), VendorID: &techmart.ID, CreatedBy: "jdoe"},
		{Date: strPtr("03/20/2024"), Amount: floatPtr(200), Tax: floatPtr(26), VendorID: &techmart.ID, CreatedBy: "jdoe"},
		{Date: strPtr("04/01/2024"), Amount: floatPtr(50), VendorID: &bluesky.ID, CreatedBy: "jdoe"},
		{CreatedBy: "guest"}, // dateless, amountless
	}
	for _, inv := range invoices {
		require.NoError(t, invoiceRepo.Create(inv))
	}

	overview, err := repo.GetOverview()
	require.NoError(t, err)
	assert.Equal(t, int64(2), overview.VendorCount)
	assert.Equal(t, int64(4), overview.InvoiceCount)
	assert.InDelta(t, 350, overview.TotalAmount, 0.0001)
	assert.InDelta(t, 39, overview.TotalTax, 0.0001)

	spend, err := repo.GetVendorSpend()
	require.NoError(t, err)
	require.Len(t, spend, 2)
	assert.Equal(t, "TechMart Solutions", spend[0].VendorName)
	assert.Equal(t, int64(2), spend[0].InvoiceCount)
	assert.InDelta(t, 300, spend[0].TotalAmount, 0.0001)

	monthly, err := repo.GetMonthlySpend()
	require.NoError(t, err)
	require.Len(t, monthly, 2)
	assert.Equal(t, "2024-03", monthly[0].Month)
	assert.InDelta(t, 300, monthly[0].TotalAmount, 0.0001)
	assert.Equal(t, "2024-04", monthly[1].Month)
}
