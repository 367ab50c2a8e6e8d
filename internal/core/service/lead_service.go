package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dealerhub/dealership-system/internal/core/access"
	"github.com/dealerhub/dealership-system/internal/core/domain"
	"github.com/dealerhub/dealership-system/internal/core/ports"
)

// LeadService works the sales pipeline of the caller's dealer.
type LeadService struct {
	guard  *access.Guard
	leads  ports.LeadRepository
	logger zerolog.Logger
}

func NewLeadService(guard *access.Guard, leads ports.LeadRepository, logger zerolog.Logger) *LeadService {
	return &LeadService{guard: guard, leads: leads, logger: logger}
}

func (s *LeadService) List(ctx context.Context, filter ports.LeadFilter) (*ports.Page[*domain.Lead], error) {
	scope, err := s.guard.Enter(ctx, access.OpLeadsList)
	if err != nil {
		return nil, err
	}
	fe := fieldErrors{}
	if filter.Status != "" && !domain.LeadStatus(filter.Status).Valid() {
		fe.add("status", "unknown lead status")
	}
	if filter.Source != "" && filter.Source != string(domain.SourceInquiry) && filter.Source != string(domain.SourceSellMyCar) {
		fe.add("source", "must be inquiry or sell_my_car")
	}
	if err := fe.err(); err != nil {
		return nil, err
	}

	filter.DealerID = scope.DealerID()
	filter.PageRequest = filter.PageRequest.Normalize()
	items, total, err := s.leads.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ports.NewPage(items, total, filter.PageRequest), nil
}

func (s *LeadService) Get(ctx context.Context, id string) (*domain.Lead, error) {
	scope, err := s.guard.Enter(ctx, access.OpLeadsGet)
	if err != nil {
		return nil, err
	}
	return s.leads.FindByID(ctx, scope.DealerID(), id)
}

// UpdateStatus moves a lead along the pipeline. Setting the current status
// again is a no-op.
func (s *LeadService) UpdateStatus(ctx context.Context, id string, status domain.LeadStatus) error {
	scope, err := s.guard.Enter(ctx, access.OpLeadsUpdateStatus)
	if err != nil {
		return err
	}
	if !status.Valid() {
		return domain.NewValidationError("status", "unknown lead status")
	}

	lead, err := s.leads.FindByID(ctx, scope.DealerID(), id)
	if err != nil {
		return err
	}
	if lead.Status == status {
		return nil
	}
	if !lead.Status.CanTransitionTo(status) {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, lead.Status, status)
	}
	if err := s.leads.UpdateStatus(ctx, scope.DealerID(), id, status); err != nil {
		return err
	}
	s.logger.Info().Str("lead_id", id).Str("from", string(lead.Status)).Str("to", string(status)).Msg("lead status changed")
	return nil
}

func (s *LeadService) Delete(ctx context.Context, id string) error {
	scope, err := s.guard.Enter(ctx, access.OpLeadsDelete)
	if err != nil {
		return err
	}
	return s.leads.Delete(ctx, scope.DealerID(), id)
}

// SourcingService tracks "find me a car" requests.
type SourcingService struct {
	guard    *access.Guard
	requests ports.SourcingRepository
	logger   zerolog.Logger
}

func NewSourcingService(guard *access.Guard, requests ports.SourcingRepository, logger zerolog.Logger) *SourcingService {
	return &SourcingService{guard: guard, requests: requests, logger: logger}
}

func (s *SourcingService) List(ctx context.Context, filter ports.SourcingFilter) (*ports.Page[*domain.SourcingRequest], error) {
	scope, err := s.guard.Enter(ctx, access.OpSourcingList)
	if err != nil {
		return nil, err
	}
	if filter.Status != "" && !domain.SourcingStatus(filter.Status).Valid() {
		return nil, domain.NewValidationError("status", "unknown sourcing status")
	}

	filter.DealerID = scope.DealerID()
	filter.PageRequest = filter.PageRequest.Normalize()
	items, total, err := s.requests.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ports.NewPage(items, total, filter.PageRequest), nil
}

func (s *SourcingService) UpdateStatus(ctx context.Context, id string, status domain.SourcingStatus) error {
	scope, err := s.guard.Enter(ctx, access.OpSourcingUpdateStatus)
	if err != nil {
		return err
	}
	if !status.Valid() {
		return domain.NewValidationError("status", "unknown sourcing status")
	}

	req, err := s.requests.FindByID(ctx, scope.DealerID(), id)
	if err != nil {
		return err
	}
	if req.Status == status {
		return nil
	}
	if !req.Status.CanTransitionTo(status) {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, req.Status, status)
	}
	return s.requests.UpdateStatus(ctx, scope.DealerID(), id, status)
}
