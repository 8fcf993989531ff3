package invoice

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"go.uber.org/zap"
)

// ErrDocumentUnreadable is returned when the uploaded bytes cannot be
// opened as a PDF at all. It is the only hard failure the pipeline
// surfaces; individual missing fields degrade silently instead.
var ErrDocumentUnreadable = errors.New("document is not a readable PDF")

// fallbackPatterns are the text-extraction regexes, one per target field.
// Each expects a "Label: value" shape and captures exactly one group.
var fallbackPatterns = map[string]*regexp.Regexp{
	"invoice_number": regexp.MustCompile(`(?i)Invoice\s*Number[:\s]*([A-Za-z0-9-]+)`),
	"date":           regexp.MustCompile(`(?i)Date[:\s\n]*([0-9]{1,2}[-/][0-9]{1,2}[-/][0-9]{2,4})`),
	"amount":         regexp.MustCompile(`(?i)Amount[:\s]*\$?\s*([0-9.,]+)`),
	"tax":            regexp.MustCompile(`(?i)Tax[:\s]*\$?\s*([0-9.,]+)`),
	"description":    regexp.MustCompile(`(?i)Description[:\s]*(.+)`),
	"vendor_name":    regexp.MustCompile(`(?i)Vendor[:\s]*(.+)`),
}

// Extractor produces a RawFieldSet from uploaded document bytes. Documents
// carrying an embedded AcroForm layer are read field-by-field; everything
// else falls back to regex matching over the page text.
type Extractor struct {
	logger *zap.Logger

	// seams for tests; default to the pdfcpu/mupdf readers
	readForm func(data []byte) (RawFieldSet, bool)
	readText func(data []byte) ([]string, error)
}

// NewExtractor creates a new field extractor
func NewExtractor(logger *zap.Logger) *Extractor {
	e := &Extractor{logger: logger}
	e.readForm = e.readFormFields
	e.readText = e.readPageTexts
	return e
}

// Extract reads raw invoice fields from document bytes and reports which
// strategy produced them. A document carrying a form layer is handled
// entirely by the form strategy, even when every field is blank; the
// fallback regexes never run for it.
func (e *Extractor) Extract(data []byte) (RawFieldSet, Strategy, error) {
	if fields, hasForm := e.readForm(data); hasForm {
		e.logger.Debug("Extracted structured form fields", zap.Int("count", len(fields)))
		return fields, StrategyForm, nil
	}

	pages, err := e.readText(data)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrDocumentUnreadable, err)
	}

	text := strings.Join(pages, "")
	fields := make(RawFieldSet)
	for name, pattern := range fallbackPatterns {
		if matches := pattern.FindStringSubmatch(text); len(matches) > 1 {
			fields.Set(name, matches[1])
		}
	}

	e.logger.Debug("Extracted fields from page text",
		zap.Int("pages", len(pages)),
		zap.Int("count", len(fields)))
	return fields, StrategyText, nil
}

// formExport mirrors the shape of pdfcpu's form export JSON. Only the
// name/value pairs matter here.
type formExport struct {
	Forms []struct {
		TextFields []struct {
			Name  string `json:"name"`
			Value string `json:"value"`
		} `json:"textfield"`
		DateFields []struct {
			Name  string `json:"name"`
			Value string `json:"value"`
		} `json:"datefield"`
		ComboBoxes []struct {
			Name  string `json:"name"`
			Value string `json:"value"`
		} `json:"combobox"`
		RadioButtonGroups []struct {
			Name  string `json:"name"`
			Value string `json:"value"`
		} `json:"radiobuttongroup"`
	} `json:"forms"`
}

// readFormFields returns the document's AcroForm values, and whether the
// document has a form layer at all. A form layer whose fields are all
// blank still counts: such documents are structured, just empty. Failures
// here are soft; the caller falls through to text extraction.
func (e *Extractor) readFormFields(data []byte) (RawFieldSet, bool) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	var buf bytes.Buffer
	if err := api.ExportFormJSON(bytes.NewReader(data), &buf, "upload.pdf", conf); err != nil {
		e.logger.Debug("No form layer in document", zap.Error(err))
		return nil, false
	}

	var export formExport
	if err := json.Unmarshal(buf.Bytes(), &export); err != nil {
		e.logger.Warn("Failed to decode form export", zap.Error(err))
		return nil, false
	}

	declared := 0
	fields := make(RawFieldSet)
	for _, form := range export.Forms {
		declared += len(form.TextFields) + len(form.DateFields) +
			len(form.ComboBoxes) + len(form.RadioButtonGroups)
		for _, f := range form.TextFields {
			fields.Set(f.Name, f.Value)
		}
		for _, f := range form.DateFields {
			fields.Set(f.Name, f.Value)
		}
		for _, f := range form.ComboBoxes {
			fields.Set(f.Name, f.Value)
		}
		for _, f := range form.RadioButtonGroups {
			fields.Set(f.Name, f.Value)
		}
	}

	if declared == 0 {
		return nil, false
	}
	return fields, true
}

// readPageTexts extracts the plain text of every page. A page that fails
// to extract degrades to an empty string; only a document that cannot be
// opened at all returns an error.
func (e *Extractor) readPageTexts(data []byte) ([]string, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	pages := make([]string, 0, doc.NumPage())
	for n := 0; n < doc.NumPage(); n++ {
		text, err := doc.Text(n)
		if err != nil {
			e.logger.Warn("Failed to extract page text", zap.Int("page", n), zap.Error(err))
			text = ""
		}
		pages = append(pages, text)
	}
	return pages, nil
}
