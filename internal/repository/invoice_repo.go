package repository

import (
	"database/sql"
	"fmt"

	"github.com/Tareqhaboukh/project-one/internal/models"
	"go.uber.org/zap"
)

// InvoiceRepository handles invoice database operations
type InvoiceRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *sql.DB, logger *zap.Logger) *InvoiceRepository {
	return &InvoiceRepository{
		db:     db,
		logger: logger,
	}
}

const invoiceColumns = `
	i.id, i.invoice_number, i.invoice_date, i.amount, i.tax, i.description,
	i.vendor_id, v.vendor_name, i.file_path, i.created_by, i.created_at
`

// Create inserts a new invoice record. Nil fields persist as NULL.
func (r *InvoiceRepository) Create(invoice *models.Invoice) error {
	query := `
		INSERT INTO invoices (invoice_number, invoice_date, amount, tax, description, vendor_id, file_path, created_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.Exec(query,
		invoice.InvoiceNumber,
		invoice.Date,
		invoice.Amount,
		invoice.Tax,
		invoice.Description,
		invoice.VendorID,
		invoice.FilePath,
		invoice.CreatedBy,
	)
	if err != nil {
		r.logger.Error("Failed to create invoice", zap.Error(err))
		return fmt.Errorf("failed to create invoice: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	invoice.ID = id
	return nil
}

// GetByID retrieves an invoice by id, including the resolved vendor name
func (r *InvoiceRepository) GetByID(id int64) (*models.Invoice, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM invoices i
		LEFT JOIN vendors v ON v.id = i.vendor_id
		WHERE i.id = ?
	`, invoiceColumns)

	invoice, err := r.scanOne(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get invoice", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	return invoice, nil
}

// List returns all invoices, newest first
func (r *InvoiceRepository) List() ([]*models.Invoice, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM invoices i
		LEFT JOIN vendors v ON v.id = i.vendor_id
		ORDER BY i.id DESC
	`, invoiceColumns)

	rows, err := r.db.Query(query)
	if err != nil {
		r.logger.Error("Failed to list invoices", zap.Error(err))
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	defer rows.Close()

	var invoices []*models.Invoice
	for rows.Next() {
		invoice, err := r.scanOne(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		invoices = append(invoices, invoice)
	}
	return invoices, rows.Err()
}

// ListRecent returns the most recent invoices up to limit
func (r *InvoiceRepository) ListRecent(limit int) ([]*models.Invoice, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM invoices i
		LEFT JOIN vendors v ON v.id = i.vendor_id
		ORDER BY i.id DESC
		LIMIT ?
	`, invoiceColumns)

	rows, err := r.db.Query(query, limit)
	if err != nil {
		r.logger.Error("Failed to list recent invoices", zap.Error(err))
		return nil, fmt.Errorf("failed to list recent invoices: %w", err)
	}
	defer rows.Close()

	var invoices []*models.Invoice
	for rows.Next() {
		invoice, err := r.scanOne(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		invoices = append(invoices, invoice)
	}
	return invoices, rows.Err()
}

// Update persists changes to an existing invoice
func (r *InvoiceRepository) Update(invoice *models.Invoice) error {
	query := `
		UPDATE invoices
		SET invoice_number = ?, invoice_date = ?, amount = ?, tax = ?, description = ?, vendor_id = ?
		WHERE id = ?
	`

	result, err := r.db.Exec(query,
		invoice.InvoiceNumber,
		invoice.Date,
		invoice.Amount,
		invoice.Tax,
		invoice.Description,
		invoice.VendorID,
		invoice.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update invoice", zap.Int64("id", invoice.ID), zap.Error(err))
		return fmt.Errorf("failed to update invoice: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an invoice by id
func (r *InvoiceRepository) Delete(id int64) error {
	result, err := r.db.Exec("DELETE FROM invoices WHERE id = ?", id)
	if err != nil {
		r.logger.Error("Failed to delete invoice", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to delete invoice: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the number of invoice records
func (r *InvoiceRepository) Count() (int64, error) {
	var count int64
	if err := r.db.QueryRow("SELECT COUNT(*) FROM invoices").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count invoices: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *InvoiceRepository) scanOne(row rowScanner) (*models.Invoice, error) {
	var invoice models.Invoice
	err := row.Scan(
		&invoice.ID,
		&invoice.InvoiceNumber,
		&invoice.Date,
		&invoice.Amount,
		&invoice.Tax,
		&invoice.Description,
		&invoice.VendorID,
		&invoice.VendorName,
		&invoice.FilePath,
		&invoice.CreatedBy,
		&invoice.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}
