// Package analytics aggregates invoice spend for the dashboard and
// exports it as an Excel workbook.
package analytics

import (
	"fmt"

	"github.com/Tareqhaboukh/project-one/internal/repository"
	"go.uber.org/zap"
)

// Summary bundles the aggregates the dashboard renders in one response
type Summary struct {
	Overview *repository.Overview      `json:"overview"`
	Vendors  []repository.VendorSpend  `json:"vendors"`
	Monthly  []repository.MonthlySpend `json:"monthly"`
}

// Service computes spend aggregates over the invoice tables
type Service struct {
	analytics *repository.AnalyticsRepository
	logger    *zap.Logger
}

// NewService creates a new analytics service
func NewService(analytics *repository.AnalyticsRepository, logger *zap.Logger) *Service {
	return &Service{
		analytics: analytics,
		logger:    logger,
	}
}

// Summary returns the overview, per-vendor and per-month aggregates
func (s *Service) Summary() (*Summary, error) {
	overview, err := s.analytics.GetOverview()
	if err != nil {
		return nil, fmt.Errorf("failed to build summary: %w", err)
	}

	vendors, err := s.analytics.GetVendorSpend()
	if err != nil {
		return nil, fmt.Errorf("failed to build summary: %w", err)
	}

	monthly, err := s.analytics.GetMonthlySpend()
	if err != nil {
		return nil, fmt.Errorf("failed to build summary: %w", err)
	}

	return &Summary{
		Overview: overview,
		Vendors:  vendors,
		Monthly:  monthly,
	}, nil
}

// VendorSpend returns per-vendor invoice totals
func (s *Service) VendorSpend() ([]repository.VendorSpend, error) {
	return s.analytics.GetVendorSpend()
}

// MonthlySpend returns per-month invoice totals
func (s *Service) MonthlySpend() ([]repository.MonthlySpend, error) {
	return s.analytics.GetMonthlySpend()
}
