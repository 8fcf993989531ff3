package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Tareqhaboukh/project-one/internal/models"
	"github.com/Tareqhaboukh/project-one/internal/repository"
	"github.com/Tareqhaboukh/project-one/pkg/utils"
)

// VendorRequest represents the payload for vendor create and update
type VendorRequest struct {
	VendorName   string `json:"vendor_name" binding:"required"`
	BusinessType string `json:"business_type"`
	TaxID        string `json:"tax_id"`
	Country      string `json:"country"`
	City         string `json:"city"`
	PostalCode   string `json:"postal_code"`
}

// handleListVendors handles GET /api/v1/vendors
func (s *Server) handleListVendors(c *gin.Context) {
	vendors, err := s.deps.Vendors.List()
	if err != nil {
		s.logger.Error("Failed to list vendors", zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to list vendors",
		})
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: vendors})
}

// handleCreateVendor handles POST /api/v1/vendors
func (s *Server) handleCreateVendor(c *gin.Context) {
	var req VendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "vendor_name is required",
		})
		return
	}

	vendor := &models.Vendor{
		VendorName:   utils.SanitizeString(req.VendorName),
		BusinessType: utils.SanitizeString(req.BusinessType),
		TaxID:        utils.SanitizeString(req.TaxID),
		Country:      utils.SanitizeString(req.Country),
		City:         utils.SanitizeString(req.City),
		PostalCode:   utils.SanitizeString(req.PostalCode),
		CreatedBy:    currentUsername(c),
	}
	if err := s.deps.Vendors.Create(vendor); err != nil {
		s.logger.Error("Failed to create vendor", zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to create vendor",
		})
		return
	}

	c.JSON(http.StatusCreated, Response{Success: true, Data: vendor})
}

// handleGetVendor handles GET /api/v1/vendors/:id
func (s *Server) handleGetVendor(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	vendor, err := s.deps.Vendors.GetByID(id)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, Response{Success: false, Error: "vendor not found"})
		return
	}
	if err != nil {
		s.logger.Error("Failed to get vendor", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to get vendor",
		})
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: vendor})
}

// handleUpdateVendor handles PUT /api/v1/vendors/:id
func (s *Server) handleUpdateVendor(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req VendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "vendor_name is required",
		})
		return
	}

	vendor := &models.Vendor{
		ID:           id,
		VendorName:   utils.SanitizeString(req.VendorName),
		BusinessType: utils.SanitizeString(req.BusinessType),
		TaxID:        utils.SanitizeString(req.TaxID),
		Country:      utils.SanitizeString(req.Country),
		City:         utils.SanitizeString(req.City),
		PostalCode:   utils.SanitizeString(req.PostalCode),
	}
	err := s.deps.Vendors.Update(vendor)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, Response{Success: false, Error: "vendor not found"})
		return
	}
	if err != nil {
		s.logger.Error("Failed to update vendor", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to update vendor",
		})
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: vendor})
}

// handleDeleteVendor handles DELETE /api/v1/vendors/:id. Invoices that
// reference the vendor keep their rows; the foreign key nulls out.
func (s *Server) handleDeleteVendor(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	err := s.deps.Vendors.Delete(id)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, Response{Success: false, Error: "vendor not found"})
		return
	}
	if err != nil {
		s.logger.Error("Failed to delete vendor", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to delete vendor",
		})
		return
	}

	c.JSON(http.StatusOK, Response{Success: true})
}
