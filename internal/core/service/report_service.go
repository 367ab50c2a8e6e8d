package service

import (
	"context"

	"github.com/dealerhub/dealership-system/internal/core/access"
	"github.com/dealerhub/dealership-system/internal/core/ports"
)

type ReportService struct {
	guard   *access.Guard
	reports ports.ReportRepository
}

func NewReportService(guard *access.Guard, reports ports.ReportRepository) *ReportService {
	return &ReportService{guard: guard, reports: reports}
}

// Summary aggregates inventory, pipeline and spend of the caller's dealer.
func (s *ReportService) Summary(ctx context.Context) (*ports.ReportSummary, error) {
	scope, err := s.guard.Enter(ctx, access.OpReportsSummary)
	if err != nil {
		return nil, err
	}
	return s.reports.Summary(ctx, scope.DealerID())
}
