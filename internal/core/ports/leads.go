package ports

import (
	"context"

	"github.com/dealerhub/dealership-system/internal/core/domain"
)

// LeadFilter carries list parameters. DealerID is always set by the service.
type LeadFilter struct {
	DealerID string
	Status   string
	Source   string
	PageRequest
}

type LeadRepository interface {
	Create(ctx context.Context, lead *domain.Lead) error
	FindByID(ctx context.Context, dealerID, id string) (*domain.Lead, error)
	List(ctx context.Context, filter LeadFilter) ([]*domain.Lead, int64, error)
	UpdateStatus(ctx context.Context, dealerID, id string, status domain.LeadStatus) error
	Delete(ctx context.Context, dealerID, id string) error
}

type LeadService interface {
	List(ctx context.Context, filter LeadFilter) (*Page[*domain.Lead], error)
	Get(ctx context.Context, id string) (*domain.Lead, error)
	UpdateStatus(ctx context.Context, id string, status domain.LeadStatus) error
	Delete(ctx context.Context, id string) error
}

// SourcingFilter carries list parameters. DealerID is always set by the service.
type SourcingFilter struct {
	DealerID string
	Status   string
	PageRequest
}

type SourcingRepository interface {
	Create(ctx context.Context, req *domain.SourcingRequest) error
	FindByID(ctx context.Context, dealerID, id string) (*domain.SourcingRequest, error)
	List(ctx context.Context, filter SourcingFilter) ([]*domain.SourcingRequest, int64, error)
	UpdateStatus(ctx context.Context, dealerID, id string, status domain.SourcingStatus) error
}

type SourcingService interface {
	List(ctx context.Context, filter SourcingFilter) (*Page[*domain.SourcingRequest], error)
	UpdateStatus(ctx context.Context, id string, status domain.SourcingStatus) error
}
