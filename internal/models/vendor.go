package models

import "time"

// Vendor represents a supplier in the vendor registry
type Vendor struct {
	ID           int64     `json:"id"`
	VendorName   string    `json:"vendor_name"`
	BusinessType string    `json:"business_type,omitempty"`
	TaxID        string    `json:"tax_id,omitempty"`
	Country      string    `json:"country,omitempty"`
	City         string    `json:"city,omitempty"`
	PostalCode   string    `json:"postal_code,omitempty"`
	CreatedBy    string    `json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
}

// VendorRef is the minimal registry entry the invoice parser resolves
// extracted vendor names against. Snapshots are ordered by id (creation
// order) so first-match resolution stays deterministic.
type VendorRef struct {
	ID   int64  `json:"id"`
	Name string `json:"vendor_name"`
}
