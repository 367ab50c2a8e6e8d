package ports

import (
	"context"

	"github.com/dealerhub/dealership-system/internal/core/domain"
)

// UserRepository persists dealership users. Every method except FindByEmail
// is constrained to a single dealer.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	// FindByEmail is the login lookup; emails are unique across dealers.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, dealerID, id string) (*domain.User, error)
	List(ctx context.Context, dealerID string) ([]*domain.User, error)
	UpdateRole(ctx context.Context, dealerID, id string, role domain.Role) error
	SetActive(ctx context.Context, dealerID, id string, active bool) error
}

// DealerSettings is the editable subset of a Dealer.
type DealerSettings struct {
	Name      string
	Phone     string
	Email     string
	Address   string
	LeadEmail string
}

// DealerRepository persists dealers (tenants).
type DealerRepository interface {
	Create(ctx context.Context, dealer *domain.Dealer) error
	FindByID(ctx context.Context, id string) (*domain.Dealer, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Dealer, error)
	UpdateSettings(ctx context.Context, id string, settings DealerSettings) (*domain.Dealer, error)
	// Delete removes a dealer row. It only undoes a signup whose first
	// administrator could not be stored.
	Delete(ctx context.Context, id string) error
}
