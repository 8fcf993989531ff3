package repository

import (
	"database/sql"
	"fmt"

	"github.com/Tareqhaboukh/project-one/internal/models"
	"go.uber.org/zap"
)

// VendorRepository handles vendor database operations
type VendorRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewVendorRepository creates a new vendor repository
func NewVendorRepository(db *sql.DB, logger *zap.Logger) *VendorRepository {
	return &VendorRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new vendor record
func (r *VendorRepository) Create(vendor *models.Vendor) error {
	query := `
		INSERT INTO vendors (vendor_name, business_type, tax_id, country, city, postal_code, created_by)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.Exec(query,
		vendor.VendorName,
		vendor.BusinessType,
		vendor.TaxID,
		vendor.Country,
		vendor.City,
		vendor.PostalCode,
		vendor.CreatedBy,
	)
	if err != nil {
		r.logger.Error("Failed to create vendor", zap.String("vendor_name", vendor.VendorName), zap.Error(err))
		return fmt.Errorf("failed to create vendor: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	vendor.ID = id
	return nil
}

// GetByID retrieves a vendor by id
func (r *VendorRepository) GetByID(id int64) (*models.Vendor, error) {
	var vendor models.Vendor
	var businessType, taxID, country, city, postalCode sql.NullString
	err := r.db.QueryRow(`
		SELECT id, vendor_name, business_type, tax_id, country, city, postal_code, created_by, created_at
		FROM vendors WHERE id = ?
	`, id).Scan(
		&vendor.ID,
		&vendor.VendorName,
		&businessType,
		&taxID,
		&country,
		&city,
		&postalCode,
		&vendor.CreatedBy,
		&vendor.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get vendor", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get vendor: %w", err)
	}
	vendor.BusinessType = businessType.String
	vendor.TaxID = taxID.String
	vendor.Country = country.String
	vendor.City = city.String
	vendor.PostalCode = postalCode.String
	return &vendor, nil
}

// List returns all vendors ordered by creation
func (r *VendorRepository) List() ([]*models.Vendor, error) {
	rows, err := r.db.Query(`
		SELECT id, vendor_name, business_type, tax_id, country, city, postal_code, created_by, created_at
		FROM vendors ORDER BY id
	`)
	if err != nil {
		r.logger.Error("Failed to list vendors", zap.Error(err))
		return nil, fmt.Errorf("failed to list vendors: %w", err)
	}
	defer rows.Close()

	var vendors []*models.Vendor
	for rows.Next() {
		var vendor models.Vendor
		var businessType, taxID, country, city, postalCode sql.NullString
		if err := rows.Scan(
			&vendor.ID,
			&vendor.VendorName,
			&businessType,
			&taxID,
			&country,
			&city,
			&postalCode,
			&vendor.CreatedBy,
			&vendor.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan vendor: %w", err)
		}
		vendor.BusinessType = businessType.String
		vendor.TaxID = taxID.String
		vendor.Country = country.String
		vendor.City = city.String
		vendor.PostalCode = postalCode.String
		vendors = append(vendors, &vendor)
	}
	return vendors, rows.Err()
}

// ListRefs returns the registry snapshot used for vendor name resolution,
// ordered by id so first-match resolution is deterministic.
func (r *VendorRepository) ListRefs() ([]models.VendorRef, error) {
	rows, err := r.db.Query("SELECT id, vendor_name FROM vendors ORDER BY id")
	if err != nil {
		r.logger.Error("Failed to list vendor refs", zap.Error(err))
		return nil, fmt.Errorf("failed to list vendor refs: %w", err)
	}
	defer rows.Close()

	var refs []models.VendorRef
	for rows.Next() {
		var ref models.VendorRef
		if err := rows.Scan(&ref.ID, &ref.Name); err != nil {
			return nil, fmt.Errorf("failed to scan vendor ref: %w", err)
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

// Count returns the number of vendor records
func (r *VendorRepository) Count() (int64, error) {
	var count int64
	if err := r.db.QueryRow("SELECT COUNT(*) FROM vendors").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count vendors: %w", err)
	}
	return count, nil
}

// Update persists changes to an existing vendor
func (r *VendorRepository) Update(vendor *models.Vendor) error {
	query := `
		UPDATE vendors
		SET vendor_name = ?, business_type = ?, tax_id = ?, country = ?, city = ?, postal_code = ?
		WHERE id = ?
	`

	result, err := r.db.Exec(query,
		vendor.VendorName,
		vendor.BusinessType,
		vendor.TaxID,
		vendor.Country,
		vendor.City,
		vendor.PostalCode,
		vendor.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update vendor", zap.Int64("id", vendor.ID), zap.Error(err))
		return fmt.Errorf("failed to update vendor: %w", err)
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

// Delete removes a vendor by id
func (r *VendorRepository) Delete(id int64) error {
	result, err := r.db.Exec("DELETE FROM vendors WHERE id = ?", id)
	if err != nil {
		r.logger.Error("Failed to delete vendor", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to delete vendor: %w", err)
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
