package invoice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func rawFields(pairs map[string]string) RawFieldSet {
	fields := make(RawFieldSet)
	for name, value := range pairs {
		fields.Set(name, value)
	}
	return fields
}

func TestNormalize_DateCanonicalization(t *testing.T) {
	n := NewNormalizer(zap.NewNop())

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"iso format", "2024-03-14", "03/14/2024"},
		{"us format", "03/14/2024", "03/14/2024"},
		{"us format unpadded", "3/14/2024", "03/14/2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed := n.Normalize(rawFields(map[string]string{"date": tt.raw}))
			require.NotNil(t, parsed.Date)
			assert.Equal(t, tt.want, *parsed.Date)
		})
	}
}

func TestNormalize_UnparseableDateDegrades(t *testing.T) {
	n := NewNormalizer(zap.NewNop())

	parsed := n.Normalize(rawFields(map[string]string{
		"date":           "14th of March",
		"invoice_number": "INV007",
	}))

	assert.Nil(t, parsed.Date)
	require.NotNil(t, parsed.InvoiceNumber)
	assert.Equal(t, "INV007", *parsed.InvoiceNumber)
}

func TestNormalize_Amounts(t *testing.T) {
	n := NewNormalizer(zap.NewNop())

	tests := []struct {
		name   string
		raw    string
		want   float64
		absent bool
	}{
		{"plain", "160.49", 160.49, false},
		{"thousands separator", "1,234.56", 1234.56, false},
		{"negative passes through", "-25.00", -25.00, false},
		{"malformed degrades", "N/A", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed := n.Normalize(rawFields(map[string]string{"amount": tt.raw, "tax": tt.raw}))
			if tt.absent {
				assert.Nil(t, parsed.Amount)
				assert.Nil(t, parsed.Tax)
				return
			}
			require.NotNil(t, parsed.Amount)
			assert.InDelta(t, tt.want, *parsed.Amount, 0.0001)
			require.NotNil(t, parsed.Tax)
			assert.InDelta(t, tt.want, *parsed.Tax, 0.0001)
		})
	}
}

func TestNormalize_VendorKeyAlias(t *testing.T) {
	n := NewNormalizer(zap.NewNop())

	// Structured form documents name the field "vendor".
	parsed := n.Normalize(rawFields(map[string]string{"vendor": "TechMart Solutions"}))
	require.NotNil(t, parsed.VendorName)
	assert.Equal(t, "TechMart Solutions", *parsed.VendorName)

	// Text fallback yields "vendor_name".
	parsed = n.Normalize(rawFields(map[string]string{"vendor_name": "BlueSky Logistics"}))
	require.NotNil(t, parsed.VendorName)
	assert.Equal(t, "BlueSky Logistics", *parsed.VendorName)

	// "vendor" wins when both are present.
	parsed = n.Normalize(rawFields(map[string]string{
		"vendor":      "TechMart Solutions",
		"vendor_name": "BlueSky Logistics",
	}))
	require.NotNil(t, parsed.VendorName)
	assert.Equal(t, "TechMart Solutions", *parsed.VendorName)
}

func TestNormalize_EmptyFieldSet(t *testing.T) {
	n := NewNormalizer(zap.NewNop())

	parsed := n.Normalize(make(RawFieldSet))

	assert.Nil(t, parsed.InvoiceNumber)
	assert.Nil(t, parsed.Date)
	assert.Nil(t, parsed.Amount)
	assert.Nil(t, parsed.Tax)
	assert.Nil(t, parsed.Description)
	assert.Nil(t, parsed.VendorName)
	assert.Nil(t, parsed.VendorID)
}
