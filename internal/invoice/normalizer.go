package invoice

import (
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// CanonicalDateLayout is the single on-the-wire date form. Every parsed
// date is re-rendered to it regardless of the input pattern.
const CanonicalDateLayout = "01/02/2006"

// dateLayouts are the accepted input patterns, tried in order. The
// unpadded layout matters: the text fallback regex captures dates like
// "3/14/2024", which the padded layout rejects.
var dateLayouts = []string{"2006-01-02", CanonicalDateLayout, "1/2/2006"}

// Normalizer converts raw string fields into typed values. It never fails:
// a value that does not parse degrades to absent so a garbled document
// still yields a partial result.
type Normalizer struct {
	logger *zap.Logger
}

// NewNormalizer creates a new field normalizer
func NewNormalizer(logger *zap.Logger) *Normalizer {
	return &Normalizer{logger: logger}
}

// Normalize maps a RawFieldSet onto a ParsedInvoice. VendorID is left
// unset; vendor resolution happens afterwards against the registry.
func (n *Normalizer) Normalize(fields RawFieldSet) ParsedInvoice {
	parsed := ParsedInvoice{
		InvoiceNumber: fields.Get("invoice_number"),
		Description:   fields.Get("description"),
	}

	// Structured form fields name the field "vendor"; free-text labels
	// yield "vendor_name". First one present wins.
	parsed.VendorName = fields.Get("vendor")
	if parsed.VendorName == nil {
		parsed.VendorName = fields.Get("vendor_name")
	}

	parsed.Date = n.normalizeDate(fields.Get("date"))
	parsed.Amount = n.normalizeAmount("amount", fields.Get("amount"))
	parsed.Tax = n.normalizeAmount("tax", fields.Get("tax"))

	return parsed
}

// normalizeDate parses ISO then US slash format and re-renders the winner
// canonically. Both failing is a silent degradation, not an error.
func (n *Normalizer) normalizeDate(raw *string) *string {
	if raw == nil {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, *raw); err == nil {
			canonical := t.Format(CanonicalDateLayout)
			return &canonical
		}
	}
	n.logger.Debug("Unparseable date dropped", zap.String("raw", *raw))
	return nil
}

// normalizeAmount strips thousands separators and parses a float. Negative
// values pass through; range checks belong to the entry form, not here.
func (n *Normalizer) normalizeAmount(field string, raw *string) *float64 {
	if raw == nil {
		return nil
	}
	cleaned := strings.ReplaceAll(*raw, ",", "")
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		n.logger.Debug("Unparseable amount dropped",
			zap.String("field", field),
			zap.String("raw", *raw))
		return nil
	}
	return &value
}
