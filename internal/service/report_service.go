package service

import (
	"context"

	"sales-api/internal/domain"
	"sales-api/internal/repository"
)

// Ranking sizes for the best customers and best sellers reports
const (
	BestCustomersLimit = 10
	BestSellersLimit   = 3
)

// ReportService ranks customers and sellers by completed order totals.
// Results are computed on every call.
type ReportService interface {
	BestCustomers(ctx context.Context) ([]*domain.CustomerTotal, error)
	BestSellers(ctx context.Context) ([]*domain.SellerTotal, error)
}

type reportService struct {
	reportRepo repository.ReportRepository
}

// NewReportService creates a new instance of ReportService
func NewReportService(reportRepo repository.ReportRepository) ReportService {
	return &reportService{reportRepo: reportRepo}
}

func (s *reportService) BestCustomers(ctx context.Context) ([]*domain.CustomerTotal, error) {
	return s.reportRepo.BestCustomers(ctx, BestCustomersLimit)
}

func (s *reportService) BestSellers(ctx context.Context) ([]*domain.SellerTotal, error) {
	return s.reportRepo.BestSellers(ctx, BestSellersLimit)
}
