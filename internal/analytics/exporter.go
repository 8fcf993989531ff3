package analytics

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Exporter renders a spend summary as an Excel workbook
type Exporter struct {
	logger *zap.Logger
}

// NewExporter creates a new Excel exporter
func NewExporter(logger *zap.Logger) *Exporter {
	return &Exporter{logger: logger}
}

// Export builds a two-sheet workbook (vendor spend, monthly spend) and
// returns the serialized file
func (e *Exporter) Export(summary *Summary) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const vendorSheet = "Vendor Spend"
	if err := f.SetSheetName("Sheet1", vendorSheet); err != nil {
		return nil, fmt.Errorf("failed to name vendor sheet: %w", err)
	}

	headers := []string{"Vendor", "Invoices", "Total Amount", "Total Tax"}
	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(vendorSheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}
	for row, spend := range summary.Vendors {
		values := []interface{}{spend.VendorName, spend.InvoiceCount, spend.TotalAmount, spend.TotalTax}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(vendorSheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write vendor row: %w", err)
			}
		}
	}

	const monthlySheet = "Monthly Spend"
	if _, err := f.NewSheet(monthlySheet); err != nil {
		return nil, fmt.Errorf("failed to create monthly sheet: %w", err)
	}

	headers = []string{"Month", "Invoices", "Total Amount", "Total Tax"}
	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(monthlySheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}
	for row, spend := range summary.Monthly {
		values := []interface{}{spend.Month, spend.InvoiceCount, spend.TotalAmount, spend.TotalTax}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(monthlySheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write monthly row: %w", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}

	e.logger.Info("Exported spend report",
		zap.Int("vendors", len(summary.Vendors)),
		zap.Int("months", len(summary.Monthly)),
		zap.Int("size_bytes", buf.Len()))
	return buf.Bytes(), nil
}
