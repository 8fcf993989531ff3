package invoice

import (
	"github.com/Tareqhaboukh/project-one/internal/models"
	"go.uber.org/zap"
)

// Parser wires the three pipeline stages together: bytes -> raw fields ->
// normalized fields -> resolved vendor. Each call is synchronous and
// stateless; the registry snapshot is read once per parse.
type Parser struct {
	extractor  *Extractor
	normalizer *Normalizer
	logger     *zap.Logger
}

// NewParser creates a new invoice parser
func NewParser(logger *zap.Logger) *Parser {
	return &Parser{
		extractor:  NewExtractor(logger),
		normalizer: NewNormalizer(logger),
		logger:     logger,
	}
}

// Parse runs the full pipeline over uploaded document bytes. Only a
// document that cannot be opened at all returns an error; missing or
// malformed fields degrade to nil in the result.
func (p *Parser) Parse(data []byte, registry []models.VendorRef) (*ParsedInvoice, error) {
	fields, strategy, err := p.extractor.Extract(data)
	if err != nil {
		return nil, err
	}

	parsed := p.normalizer.Normalize(fields)
	parsed.VendorID, parsed.VendorName = ResolveVendor(parsed.VendorName, registry)

	p.logger.Info("Invoice parsed",
		zap.String("strategy", string(strategy)),
		zap.Int("raw_fields", len(fields)),
		zap.Bool("vendor_resolved", parsed.VendorID != nil))

	return &parsed, nil
}
