package ports

import (
	"context"

	"github.com/dealerhub/dealership-system/internal/core/domain"
)

// CreateUserInput is the admin payload for adding a staff account.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

type UserService interface {
	List(ctx context.Context) ([]*domain.User, error)
	Create(ctx context.Context, in CreateUserInput) (*domain.User, error)
	UpdateRole(ctx context.Context, userID string, role domain.Role) error
	SetActive(ctx context.Context, userID string, active bool) error
}

type DealerService interface {
	GetSettings(ctx context.Context) (*domain.Dealer, error)
	UpdateSettings(ctx context.Context, in DealerSettings) (*domain.Dealer, error)
}

// ReportSummary aggregates one dealer's inventory, pipeline and spend.
type ReportSummary struct {
	VehiclesByStatus map[string]int64
	LeadsByStatus    map[string]int64
	ExpenseTotal     float64
	ExpenseCount     int64
}

// ReportRepository computes aggregates for a single dealer.
type ReportRepository interface {
	Summary(ctx context.Context, dealerID string) (*ReportSummary, error)
}

type ReportService interface {
	Summary(ctx context.Context) (*ReportSummary, error)
}
