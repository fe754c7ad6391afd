package dashboard

import (
	"context"

	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/user"
)

// DashboardService defines the interface for dashboard operations
type DashboardService interface {
	// GetDashboard returns combined dashboard data for the day, computed in parallel
	GetDashboard(ctx context.Context, caps user.Capabilities, date string) (DashboardResponse, error)
}
