package assistant

import (
	"fmt"
	"strings"

	"github.com/Tareqhaboukh/project-one/internal/models"
	"github.com/Tareqhaboukh/project-one/internal/repository"
)

// recentInvoiceLimit bounds how many invoices go into one snapshot so the
// prompt stays inside the model's context window.
const recentInvoiceLimit = 50

// Snapshot is a plain-text rendering of the current database state. It is
// rebuilt per question so answers always reflect live data.
type Snapshot struct {
	Vendors  []*models.Vendor
	Invoices []*models.Invoice
	Overview *repository.Overview
	Spend    []repository.VendorSpend
}

// buildSnapshot reads the tables the assistant may be asked about
func (a *Assistant) buildSnapshot() (*Snapshot, error) {
	vendors, err := a.vendors.List()
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot vendors: %w", err)
	}

	invoices, err := a.invoices.ListRecent(recentInvoiceLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot invoices: %w", err)
	}

	overview, err := a.analytics.GetOverview()
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot overview: %w", err)
	}

	spend, err := a.analytics.GetVendorSpend()
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot vendor spend: %w", err)
	}

	return &Snapshot{
		Vendors:  vendors,
		Invoices: invoices,
		Overview: overview,
		Spend:    spend,
	}, nil
}

// Render formats the snapshot as the context block of the prompt
func (s *Snapshot) Render() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Totals: %d users, %d vendors, %d invoices, amount %.2f, tax %.2f\n\n",
		s.Overview.UserCount, s.Overview.VendorCount, s.Overview.InvoiceCount,
		s.Overview.TotalAmount, s.Overview.TotalTax)

	b.WriteString("Vendors:\n")
	for _, v := range s.Vendors {
		fmt.Fprintf(&b, "- [%d] %s", v.ID, v.VendorName)
		var details []string
		if v.BusinessType != "" {
			details = append(details, v.BusinessType)
		}
		if v.City != "" {
			details = append(details, v.City)
		}
		if v.Country != "" {
			details = append(details, v.Country)
		}
		if len(details) > 0 {
			fmt.Fprintf(&b, " (%s)", strings.Join(details, ", "))
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\nRecent invoices (up to %d):\n", recentInvoiceLimit)
	for _, inv := range s.Invoices {
		fmt.Fprintf(&b, "- #%d number=%s date=%s vendor=%s amount=%s tax=%s\n",
			inv.ID,
			orNA(inv.InvoiceNumber),
			orNA(inv.Date),
			orNA(inv.VendorName),
			floatOrNA(inv.Amount),
			floatOrNA(inv.Tax))
	}

	b.WriteString("\nSpend per vendor:\n")
	for _, s := range s.Spend {
		fmt.Fprintf(&b, "- %s: %d invoices, amount %.2f, tax %.2f\n",
			s.VendorName, s.InvoiceCount, s.TotalAmount, s.TotalTax)
	}

	return b.String()
}

func orNA(s *string) string {
	if s == nil {
		return "n/a"
	}
	return *s
}

func floatOrNA(f *float64) string {
	if f == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", *f)
}
