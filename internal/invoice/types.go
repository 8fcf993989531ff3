// Package invoice implements the PDF invoice parsing pipeline: raw field
// extraction, normalization into typed values, and vendor name resolution
// against the vendor registry.
package invoice

import "strings"

// Strategy identifies which extraction path produced a RawFieldSet.
type Strategy string

const (
	// StrategyForm reads values from the document's embedded AcroForm fields.
	StrategyForm Strategy = "form"
	// StrategyText pattern-matches over concatenated page text when no
	// form fields exist.
	StrategyText Strategy = "text"
)

// RawFieldSet maps lower-cased field names to raw string values. A missing
// key means the field was absent from the document; values are never empty
// strings.
type RawFieldSet map[string]string

// Set records a field value, lower-casing the name and trimming the value.
// Empty values are dropped so absence stays unambiguous.
func (f RawFieldSet) Set(name, value string) {
	name = strings.ToLower(strings.TrimSpace(name))
	value = strings.TrimSpace(value)
	if name == "" || value == "" {
		return
	}
	f[name] = value
}

// Get returns the trimmed value for a field, or nil if absent.
func (f RawFieldSet) Get(name string) *string {
	value, ok := f[strings.ToLower(name)]
	if !ok {
		return nil
	}
	return &value
}

// ParsedInvoice is the normalized result of parsing an uploaded invoice.
// Every field is independently optional: a nil pointer means the document
// did not yield that field. Partial invoices are still useful for a human
// correcting the pre-filled entry form, so the pipeline degrades fields
// individually instead of failing the whole parse.
type ParsedInvoice struct {
	InvoiceNumber *string  `json:"invoice_number"`
	Date          *string  `json:"date"` // canonical MM/DD/YYYY
	Amount        *float64 `json:"amount"`
	Tax           *float64 `json:"tax"`
	Description   *string  `json:"description"`
	VendorID      *int64   `json:"vendor_id"`
	VendorName    *string  `json:"vendor_name"`
}
