package http

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Tareqhaboukh/project-one/internal/invoice"
	"github.com/Tareqhaboukh/project-one/internal/models"
	"github.com/Tareqhaboukh/project-one/internal/repository"
	"github.com/Tareqhaboukh/project-one/pkg/utils"
)

// InvoiceRequest represents the payload for invoice create and update.
// Every field is optional: a parsed document may have yielded nothing.
type InvoiceRequest struct {
	InvoiceNumber *string  `json:"invoice_number"`
	Date          *string  `json:"date"`
	Amount        *float64 `json:"amount"`
	Tax           *float64 `json:"tax"`
	Description   *string  `json:"description"`
	VendorID      *int64   `json:"vendor_id"`
	FilePath      *string  `json:"file_path"`
}

// handleListInvoices handles GET /api/v1/invoices
func (s *Server) handleListInvoices(c *gin.Context) {
	invoices, err := s.deps.Invoices.List()
	if err != nil {
		s.logger.Error("Failed to list invoices", zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to list invoices",
		})
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: invoices})
}

// handleCreateInvoice handles POST /api/v1/invoices
func (s *Server) handleCreateInvoice(c *gin.Context) {
	var req InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid invoice payload",
		})
		return
	}

	inv := &models.Invoice{
		InvoiceNumber: req.InvoiceNumber,
		Date:          req.Date,
		Amount:        req.Amount,
		Tax:           req.Tax,
		Description:   req.Description,
		VendorID:      req.VendorID,
		FilePath:      req.FilePath,
		CreatedBy:     currentUsername(c),
	}
	if err := s.deps.Invoices.Create(inv); err != nil {
		s.logger.Error("Failed to create invoice", zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to create invoice",
		})
		return
	}

	c.JSON(http.StatusCreated, Response{Success: true, Data: inv})
}

// handleGetInvoice handles GET /api/v1/invoices/:id
func (s *Server) handleGetInvoice(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	inv, err := s.deps.Invoices.GetByID(id)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, Response{Success: false, Error: "invoice not found"})
		return
	}
	if err != nil {
		s.logger.Error("Failed to get invoice", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to get invoice",
		})
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: inv})
}

// handleUpdateInvoice handles PUT /api/v1/invoices/:id
func (s *Server) handleUpdateInvoice(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid invoice payload",
		})
		return
	}

	inv := &models.Invoice{
		ID:            id,
		InvoiceNumber: req.InvoiceNumber,
		Date:          req.Date,
		Amount:        req.Amount,
		Tax:           req.Tax,
		Description:   req.Description,
		VendorID:      req.VendorID,
	}
	err := s.deps.Invoices.Update(inv)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, Response{Success: false, Error: "invoice not found"})
		return
	}
	if err != nil {
		s.logger.Error("Failed to update invoice", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to update invoice",
		})
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: inv})
}

// handleDeleteInvoice handles DELETE /api/v1/invoices/:id
func (s *Server) handleDeleteInvoice(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	err := s.deps.Invoices.Delete(id)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, Response{Success: false, Error: "invoice not found"})
		return
	}
	if err != nil {
		s.logger.Error("Failed to delete invoice", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to delete invoice",
		})
		return
	}

	c.JSON(http.StatusOK, Response{Success: true})
}

// handleParseInvoice handles POST /api/v1/invoices/parse. It accepts a
// multipart PDF upload, archives it, runs the extraction pipeline against
// the current vendor registry, and returns the parsed fields for review.
// The document is not persisted as an invoice here; the client confirms
// the fields and calls POST /api/v1/invoices.
func (s *Server) handleParseInvoice(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "a PDF file upload is required",
		})
		return
	}

	if s.config.MaxUploadSize > 0 && fileHeader.Size > s.config.MaxUploadSize {
		c.JSON(http.StatusRequestEntityTooLarge, Response{
			Success: false,
			Error:   "file exceeds the upload size limit",
		})
		return
	}

	if !strings.EqualFold(filepath.Ext(fileHeader.Filename), ".pdf") {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "only PDF uploads are accepted",
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		s.logger.Error("Failed to open upload", zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to read upload",
		})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.logger.Error("Failed to read upload", zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to read upload",
		})
		return
	}

	storedPath, err := s.deps.Storage.SaveUpload(fileHeader.Filename, data)
	if err != nil {
		s.logger.Error("Failed to archive upload", zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to store upload",
		})
		return
	}

	registry, err := s.deps.Vendors.ListRefs()
	if err != nil {
		s.logger.Error("Failed to load vendor registry", zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to load vendors",
		})
		return
	}

	parsed, err := s.deps.Parser.Parse(data, registry)
	if errors.Is(err, invoice.ErrDocumentUnreadable) {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "document could not be read as a PDF",
		})
		return
	}
	if err != nil {
		s.logger.Error("Failed to parse invoice", zap.String("file", fileHeader.Filename), zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to parse invoice",
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: gin.H{
			"parsed":    parsed,
			"file_path": storedPath,
			"filename":  utils.SanitizeString(fileHeader.Filename),
		},
	})
}
