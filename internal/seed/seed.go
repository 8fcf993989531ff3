// Package seed loads the demo dataset: a passwordless guest account, a
// few default users and vendors, and sample invoices so analytics and the
// assistant have data to work with on a fresh database.
package seed

import (
	"errors"
	"fmt"

	"github.com/Tareqhaboukh/project-one/internal/auth"
	"github.com/Tareqhaboukh/project-one/internal/models"
	"github.com/Tareqhaboukh/project-one/internal/repository"
	"go.uber.org/zap"
)

// Seeder populates a fresh database with demo data
type Seeder struct {
	users    *repository.UserRepository
	vendors  *repository.VendorRepository
	invoices *repository.InvoiceRepository
	logger   *zap.Logger
}

// NewSeeder creates a new seeder
func NewSeeder(
	users *repository.UserRepository,
	vendors *repository.VendorRepository,
	invoices *repository.InvoiceRepository,
	logger *zap.Logger,
) *Seeder {
	return &Seeder{
		users:    users,
		vendors:  vendors,
		invoices: invoices,
		logger:   logger,
	}
}

// Run seeds users, vendors and sample invoices. Safe to call on every
// startup: existing records are left untouched.
func (s *Seeder) Run() error {
	if err := s.seedUsers(); err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}
	if err := s.seedVendors(); err != nil {
		return fmt.Errorf("failed to seed vendors: %w", err)
	}
	if err := s.seedInvoices(); err != nil {
		return fmt.Errorf("failed to seed invoices: %w", err)
	}
	return nil
}

type seedUser struct {
	username  string
	firstName string
	lastName  string
	email     string
	password  string
}

var defaultUsers = []seedUser{
	{models.GuestUsername, "Guest", "User", "guest@projectone.com", ""},
	{"jdoe", "John", "Doe", "jdoe@example.com", "password"},
	{"asmith", "Anna", "Smith", "asmith@example.com", "password"},
	{"mbrown", "Michael", "Brown", "mbrown@example.com", "password"},
	{"ljones", "Laura", "Jones", "ljones@example.com", "password"},
}

func (s *Seeder) seedUsers() error {
	for _, u := range defaultUsers {
		_, err := s.users.GetByUsername(u.username)
		if err == nil {
			continue
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return err
		}

		hash, err := auth.HashPassword(u.password)
		if err != nil {
			return err
		}

		if err := s.users.Create(&models.User{
			Username:     u.username,
			FirstName:    u.firstName,
			LastName:     u.lastName,
			Email:        u.email,
			PasswordHash: hash,
		}); err != nil {
			return err
		}
		s.logger.Info("Seeded user", zap.String("username", u.username))
	}
	return nil
}

func (s *Seeder) seedVendors() error {
	count, err := s.vendors.Count()
	if err != nil {
		return err
	}
	if count > 0 {
		s.logger.Debug("Vendors already exist, skipping seed")
		return nil
	}

	vendors := []*models.Vendor{
		{VendorName: "Global Supplies Inc.", BusinessType: "Wholesale", TaxID: "TAX12345", Country: "Canada", City: "Toronto", PostalCode: "M5H 2N2", CreatedBy: "ljones"},
		{VendorName: "TechMart Solutions", BusinessType: "IT Services", TaxID: "TAX54321", Country: "USA", City: "New York", PostalCode: "10001", CreatedBy: "jdoe"},
		{VendorName: "GreenLeaf Construction", BusinessType: "Construction", TaxID: "TAX67890", Country: "Canada", City: "Ottawa", PostalCode: "K1P 5G4", CreatedBy: "asmith"},
		{VendorName: "BlueSky Logistics", BusinessType: "Transportation", TaxID: "TAX98765", Country: "UK", City: "London", PostalCode: "SW1A 1AA", CreatedBy: "mbrown"},
		{VendorName: "PureWater Systems", BusinessType: "Manufacturing", TaxID: "TAX11223", Country: "Germany", City: "Berlin", PostalCode: "10115", CreatedBy: "asmith"},
	}

	for _, vendor := range vendors {
		if err := s.vendors.Create(vendor); err != nil {
			return err
		}
	}
	s.logger.Info("Seeded vendors", zap.Int("count", len(vendors)))
	return nil
}

func (s *Seeder) seedInvoices() error {
	count, err := s.invoices.Count()
	if err != nil {
		return err
	}
	if count > 0 {
		s.logger.Debug("Invoices already exist, skipping seed")
		return nil
	}

	refs, err := s.vendors.ListRefs()
	if err != nil {
		return err
	}
	byName := make(map[string]int64, len(refs))
	for _, ref := range refs {
		byName[ref.Name] = ref.ID
	}

	type seedInvoice struct {
		number, date, description, vendor, createdBy string
		amount, tax                                  float64
	}
	samples := []seedInvoice{
		{"INV001", "01/15/2024", "Office supplies restock", "Global Supplies Inc.", "jdoe", 842.10, 109.47},
		{"INV002", "02/03/2024", "Laptop fleet renewal", "TechMart Solutions", "asmith", 5120.00, 665.60},
		{"INV003", "02/21/2024", "Warehouse ramp repair", "GreenLeaf Construction", "mbrown", 2310.75, 300.40},
		{"INV004", "03/14/2024", "Quarterly freight", "BlueSky Logistics", "jdoe", 1234.56, 160.49},
		{"INV005", "04/02/2024", "Filtration cartridges", "PureWater Systems", "ljones", 489.99, 63.70},
	}

	for _, sample := range samples {
		invoice := &models.Invoice{
			InvoiceNumber: &sample.number,
			Date:          &sample.date,
			Amount:        &sample.amount,
			Tax:           &sample.tax,
			Description:   &sample.description,
			CreatedBy:     sample.createdBy,
		}
		if id, ok := byName[sample.vendor]; ok {
			invoice.VendorID = &id
		}
		if err := s.invoices.Create(invoice); err != nil {
			return err
		}
	}
	s.logger.Info("Seeded invoices", zap.Int("count", len(samples)))
	return nil
}
