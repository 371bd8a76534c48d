// internal/service/dashboard/dashboard_service.go
package dashboard

import (
	"context"

	"fleetride-service/internal/domain/dashboard"

	"go.uber.org/zap"
)

type DashboardService struct {
	repo   dashboard.Repository
	logger *zap.Logger
}

func NewDashboardService(repo dashboard.Repository, logger *zap.Logger) *DashboardService {
	return &DashboardService{repo: repo, logger: logger}
}

// Overview returns the admin platform snapshot.
func (s *DashboardService) Overview(ctx context.Context) (*dashboard.Overview, error) {
	return s.repo.Overview(ctx)
}
