package ports

import (
	"context"
	"time"

	"github.com/dealerhub/dealership-system/internal/core/domain"
)

// ExpenseFilter carries list parameters. DealerID is always set by the service.
type ExpenseFilter struct {
	DealerID  string
	VehicleID string
	Category  string
	From      time.Time
	To        time.Time
	PageRequest
}

// ExpenseInput is the create/update payload. It deliberately has no dealer field.
type ExpenseInput struct {
	VehicleID   string
	Category    domain.ExpenseCategory
	Amount      float64
	Description string
	IncurredOn  time.Time
}

type ExpenseRepository interface {
	Create(ctx context.Context, e *domain.Expense) error
	FindByID(ctx context.Context, dealerID, id string) (*domain.Expense, error)
	List(ctx context.Context, filter ExpenseFilter) ([]*domain.Expense, int64, error)
	Update(ctx context.Context, dealerID, id string, in ExpenseInput) (*domain.Expense, error)
	Delete(ctx context.Context, dealerID, id string) error
}

type ExpenseService interface {
	List(ctx context.Context, filter ExpenseFilter) (*Page[*domain.Expense], error)
	Create(ctx context.Context, in ExpenseInput) (*domain.Expense, error)
	Update(ctx context.Context, id string, in ExpenseInput) (*domain.Expense, error)
	Delete(ctx context.Context, id string) error
}
