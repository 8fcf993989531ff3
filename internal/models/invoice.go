package models

import "time"

// Invoice represents a stored vendor invoice. Parsed fields are pointers:
// a partial upload still produces a useful record, so every column except
// the audit fields is nullable.
type Invoice struct {
	ID            int64    `json:"id"`
	InvoiceNumber *string  `json:"invoice_number"`
	Date          *string  `json:"date"` // canonical MM/DD/YYYY
	Amount        *float64 `json:"amount"`
	Tax           *float64 `json:"tax"`
	Description   *string  `json:"description"`
	VendorID      *int64   `json:"vendor_id"`
	VendorName    *string  `json:"vendor_name,omitempty"`
	FilePath      *string  `json:"file_path,omitempty"`
	CreatedBy     string   `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
}
