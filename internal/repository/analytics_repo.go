package repository

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"
)

// VendorSpend aggregates invoice totals for one vendor
type VendorSpend struct {
	VendorID     int64   `json:"vendor_id"`
	VendorName   string  `json:"vendor_name"`
	InvoiceCount int64   `json:"invoice_count"`
	TotalAmount  float64 `json:"total_amount"`
	TotalTax     float64 `json:"total_tax"`
}

// MonthlySpend aggregates invoice totals for one calendar month
type MonthlySpend struct {
	Month        string  `json:"month"` // YYYY-MM
	InvoiceCount int64   `json:"invoice_count"`
	TotalAmount  float64 `json:"total_amount"`
	TotalTax     float64 `json:"total_tax"`
}

// Overview holds top-level counts and totals
type Overview struct {
	UserCount    int64   `json:"user_count"`
	VendorCount  int64   `json:"vendor_count"`
	InvoiceCount int64   `json:"invoice_count"`
	TotalAmount  float64 `json:"total_amount"`
	TotalTax     float64 `json:"total_tax"`
}

// AnalyticsRepository runs aggregation queries over the invoice tables
type AnalyticsRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *sql.DB, logger *zap.Logger) *AnalyticsRepository {
	return &AnalyticsRepository{
		db:     db,
		logger: logger,
	}
}

// GetOverview returns top-level counts and invoice totals
func (r *AnalyticsRepository) GetOverview() (*Overview, error) {
	var o Overview
	err := r.db.QueryRow(`
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM vendors),
			(SELECT COUNT(*) FROM invoices),
			COALESCE((SELECT SUM(amount) FROM invoices WHERE amount IS NOT NULL), 0),
			COALESCE((SELECT SUM(tax) FROM invoices WHERE tax IS NOT NULL), 0)
	`).Scan(&o.UserCount, &o.VendorCount, &o.InvoiceCount, &o.TotalAmount, &o.TotalTax)
	if err != nil {
		r.logger.Error("Failed to get analytics overview", zap.Error(err))
		return nil, fmt.Errorf("failed to get overview: %w", err)
	}
	return &o, nil
}

// GetVendorSpend returns per-vendor invoice totals, largest spend first
func (r *AnalyticsRepository) GetVendorSpend() ([]VendorSpend, error) {
	rows, err := r.db.Query(`
		SELECT v.id, v.vendor_name,
			COUNT(i.id),
			COALESCE(SUM(i.amount), 0),
			COALESCE(SUM(i.tax), 0)
		FROM vendors v
		LEFT JOIN invoices i ON i.vendor_id = v.id
		GROUP BY v.id, v.vendor_name
		ORDER BY COALESCE(SUM(i.amount), 0) DESC, v.id
	`)
	if err != nil {
		r.logger.Error("Failed to get vendor spend", zap.Error(err))
		return nil, fmt.Errorf("failed to get vendor spend: %w", err)
	}
	defer rows.Close()

	var spend []VendorSpend
	for rows.Next() {
		var s VendorSpend
		if err := rows.Scan(&s.VendorID, &s.VendorName, &s.InvoiceCount, &s.TotalAmount, &s.TotalTax); err != nil {
			return nil, fmt.Errorf("failed to scan vendor spend: %w", err)
		}
		spend = append(spend, s)
	}
	return spend, rows.Err()
}

// GetMonthlySpend returns invoice totals grouped by month. Invoice dates
// are stored as MM/DD/YYYY text, so the month key is rebuilt as YYYY-MM.
func (r *AnalyticsRepository) GetMonthlySpend() ([]MonthlySpend, error) {
	rows, err := r.db.Query(`
		SELECT substr(invoice_date, 7, 4) || '-' || substr(invoice_date, 1, 2) AS month,
			COUNT(id),
			COALESCE(SUM(amount), 0),
			COALESCE(SUM(tax), 0)
		FROM invoices
		WHERE invoice_date IS NOT NULL
		GROUP BY month
		ORDER BY month
	`)
	if err != nil {
		r.logger.Error("Failed to get monthly spend", zap.Error(err))
		return nil, fmt.Errorf("failed to get monthly spend: %w", err)
	}
	defer rows.Close()

	var spend []MonthlySpend
	for rows.Next() {
		var s MonthlySpend
		if err := rows.Scan(&s.Month, &s.InvoiceCount, &s.TotalAmount, &s.TotalTax); err != nil {
			return nil, fmt.Errorf("failed to scan monthly spend: %w", err)
		}
		spend = append(spend, s)
	}
	return spend, rows.Err()
}
