package invoice

import (
	"testing"

	"github.com/Tareqhaboukh/project-one/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newFakeParser(form RawFieldSet, pages []string) *Parser {
	logger := zap.NewNop()
	return &Parser{
		extractor:  newFakeExtractor(form, pages, nil, nil),
		normalizer: NewNormalizer(logger),
		logger:     logger,
	}
}

func TestParse_TextFallbackEndToEnd(t *testing.T) {
	text := "Invoice Number: INV007\nDate: 03/14/2024\nAmount: $1,234.56\nTax: $160.49\nVendor: TechMart Solutions"
	registry := []models.VendorRef{
		{ID: 1, Name: "Global Supplies Inc."},
		{ID: 2, Name: "TechMart Solutions"},
	}

	parsed, err := newFakeParser(nil, []string{text}).Parse([]byte("%PDF-1.4"), registry)
	require.NoError(t, err)

	require.NotNil(t, parsed.InvoiceNumber)
	assert.Equal(t, "INV007", *parsed.InvoiceNumber)
	require.NotNil(t, parsed.Date)
	assert.Equal(t, "03/14/2024", *parsed.Date)
	require.NotNil(t, parsed.Amount)
	assert.InDelta(t, 1234.56, *parsed.Amount, 0.0001)
	require.NotNil(t, parsed.Tax)
	assert.InDelta(t, 160.49, *parsed.Tax, 0.0001)
	require.NotNil(t, parsed.VendorID)
	assert.Equal(t, int64(2), *parsed.VendorID)
	require.NotNil(t, parsed.VendorName)
	assert.Equal(t, "TechMart Solutions", *parsed.VendorName)
}

func TestParse_StructuredFormEndToEnd(t *testing.T) {
	form := RawFieldSet{}
	form.Set("Invoice_Number", "INV-2024-001")
	form.Set("Date", "2024-03-14")
	form.Set("Vendor", "BlueSky")
	form.Set("Amount", "500")

	registry := []models.VendorRef{
		{ID: 4, Name: "BlueSky Logistics"},
	}

	parsed, err := newFakeParser(form, nil).Parse([]byte("%PDF-1.4"), registry)
	require.NoError(t, err)

	require.NotNil(t, parsed.InvoiceNumber)
	assert.Equal(t, "INV-2024-001", *parsed.InvoiceNumber)
	require.NotNil(t, parsed.Date)
	assert.Equal(t, "03/14/2024", *parsed.Date, "ISO input renders canonically")
	require.NotNil(t, parsed.VendorID)
	assert.Equal(t, int64(4), *parsed.VendorID)
	assert.Equal(t, "BlueSky Logistics", *parsed.VendorName)
	assert.Nil(t, parsed.Tax)
	assert.Nil(t, parsed.Description)
}

func TestParse_PartialDocumentYieldsPartialResult(t *testing.T) {
	// Garbled numerics and an unknown vendor: nothing raises, fields
	// degrade individually.
	text := "Invoice Number: INV500\nAmount: N/A\nVendor: Acme Corp"

	parsed, err := newFakeParser(nil, []string{text}).Parse([]byte("%PDF-1.4"), []models.VendorRef{
		{ID: 1, Name: "TechMart"},
	})
	require.NoError(t, err)

	require.NotNil(t, parsed.InvoiceNumber)
	assert.Equal(t, "INV500", *parsed.InvoiceNumber)
	assert.Nil(t, parsed.Amount)
	assert.Nil(t, parsed.VendorID)
	require.NotNil(t, parsed.VendorName)
	assert.Equal(t, "Acme Corp", *parsed.VendorName)
}

func TestParse_UnreadableDocumentPropagates(t *testing.T) {
	parser := NewParser(zap.NewNop())

	_, err := parser.Parse([]byte("definitely not a pdf"), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDocumentUnreadable)
}
