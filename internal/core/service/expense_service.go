package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/dealerhub/dealership-system/internal/core/access"
	"github.com/dealerhub/dealership-system/internal/core/domain"
	"github.com/dealerhub/dealership-system/internal/core/ports"
)

// ExpenseService records dealership spending.
type ExpenseService struct {
	guard    *access.Guard
	expenses ports.ExpenseRepository
	vehicles ports.VehicleRepository
	logger   zerolog.Logger
}

func NewExpenseService(guard *access.Guard, expenses ports.ExpenseRepository, vehicles ports.VehicleRepository, logger zerolog.Logger) *ExpenseService {
	return &ExpenseService{guard: guard, expenses: expenses, vehicles: vehicles, logger: logger}
}

func (s *ExpenseService) List(ctx context.Context, filter ports.ExpenseFilter) (*ports.Page[*domain.Expense], error) {
	scope, err := s.guard.Enter(ctx, access.OpExpensesList)
	if err != nil {
		return nil, err
	}
	fe := fieldErrors{}
	if filter.Category != "" && !domain.ExpenseCategory(filter.Category).Valid() {
		fe.add("category", "unknown expense category")
	}
	if !filter.From.IsZero() && !filter.To.IsZero() && filter.To.Before(filter.From) {
		fe.add("to", "must not be before from")
	}
	if err := fe.err(); err != nil {
		return nil, err
	}

	filter.DealerID = scope.DealerID()
	filter.PageRequest = filter.PageRequest.Normalize()
	items, total, err := s.expenses.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ports.NewPage(items, total, filter.PageRequest), nil
}

func (s *ExpenseService) Create(ctx context.Context, in ports.ExpenseInput) (*domain.Expense, error) {
	scope, err := s.guard.Enter(ctx, access.OpExpensesCreate)
	if err != nil {
		return nil, err
	}
	if err := s.validate(ctx, scope, in); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	e := &domain.Expense{
		ID:          newID(),
		DealerID:    scope.DealerID(),
		VehicleID:   in.VehicleID,
		Category:    in.Category,
		Amount:      in.Amount,
		Description: in.Description,
		IncurredOn:  in.IncurredOn.UTC(),
		CreatedBy:   scope.UserID(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.expenses.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *ExpenseService) Update(ctx context.Context, id string, in ports.ExpenseInput) (*domain.Expense, error) {
	scope, err := s.guard.Enter(ctx, access.OpExpensesUpdate)
	if err != nil {
		return nil, err
	}
	if err := s.validate(ctx, scope, in); err != nil {
		return nil, err
	}
	in.IncurredOn = in.IncurredOn.UTC()
	return s.expenses.Update(ctx, scope.DealerID(), id, in)
}

func (s *ExpenseService) Delete(ctx context.Context, id string) error {
	scope, err := s.guard.Enter(ctx, access.OpExpensesDelete)
	if err != nil {
		return err
	}
	return s.expenses.Delete(ctx, scope.DealerID(), id)
}

// validate checks the payload and that a referenced vehicle belongs to the
// caller's dealer.
func (s *ExpenseService) validate(ctx context.Context, scope access.Scope, in ports.ExpenseInput) error {
	fe := fieldErrors{}
	if in.Amount <= 0 {
		fe.add("amount", "must be greater than zero")
	}
	if !in.Category.Valid() {
		fe.add("category", "unknown expense category")
	}
	if in.IncurredOn.IsZero() {
		fe.add("incurred_on", "is required")
	}
	fe.maxLen("description", in.Description, 1000)
	if err := fe.err(); err != nil {
		return err
	}

	if in.VehicleID == "" {
		return nil
	}
	if _, err := s.vehicles.FindByID(ctx, scope.DealerID(), in.VehicleID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NewValidationError("vehicle_id", "unknown vehicle")
		}
		return err
	}
	return nil
}
