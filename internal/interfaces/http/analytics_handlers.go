package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AskRequest represents the payload for POST /api/v1/assistant/ask
type AskRequest struct {
	Question string `json:"question" binding:"required"`
}

// handleAnalyticsSummary handles GET /api/v1/analytics/summary
func (s *Server) handleAnalyticsSummary(c *gin.Context) {
	summary, err := s.deps.Analytics.Summary()
	if err != nil {
		s.logger.Error("Failed to build analytics summary", zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to build summary",
		})
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: summary})
}

// handleVendorSpend handles GET /api/v1/analytics/vendors
func (s *Server) handleVendorSpend(c *gin.Context) {
	spend, err := s.deps.Analytics.VendorSpend()
	if err != nil {
		s.logger.Error("Failed to get vendor spend", zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to get vendor spend",
		})
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: spend})
}

// handleMonthlySpend handles GET /api/v1/analytics/monthly
func (s *Server) handleMonthlySpend(c *gin.Context) {
	spend, err := s.deps.Analytics.MonthlySpend()
	if err != nil {
		s.logger.Error("Failed to get monthly spend", zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to get monthly spend",
		})
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: spend})
}

// handleExportReport handles GET /api/v1/analytics/export. The response
// is an Excel workbook download.
func (s *Server) handleExportReport(c *gin.Context) {
	summary, err := s.deps.Analytics.Summary()
	if err != nil {
		s.logger.Error("Failed to build analytics summary", zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to build summary",
		})
		return
	}

	report, err := s.deps.Exporter.Export(summary)
	if err != nil {
		s.logger.Error("Failed to export report", zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to export report",
		})
		return
	}

	filename := fmt.Sprintf("spend-report-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", report)
}

// handleAsk handles POST /api/v1/assistant/ask
func (s *Server) handleAsk(c *gin.Context) {
	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "question is required",
		})
		return
	}

	if s.deps.Assistant == nil {
		c.JSON(http.StatusServiceUnavailable, Response{
			Success: false,
			Error:   "assistant is not configured",
		})
		return
	}

	ctx := c.Request.Context()
	if s.config.AskTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.AskTimeout)
		defer cancel()
	}

	answer, err := s.deps.Assistant.Ask(ctx, req.Question)
	if err != nil {
		s.logger.Error("Assistant request failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, Response{
			Success: false,
			Error:   "assistant request failed",
		})
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: gin.H{"answer": answer}})
}
