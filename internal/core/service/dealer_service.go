package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/dealerhub/dealership-system/internal/core/access"
	"github.com/dealerhub/dealership-system/internal/core/domain"
	"github.com/dealerhub/dealership-system/internal/core/ports"
)

// DealerService reads and edits the caller's own dealer record.
type DealerService struct {
	guard   *access.Guard
	dealers ports.DealerRepository
	logger  zerolog.Logger
}

func NewDealerService(guard *access.Guard, dealers ports.DealerRepository, logger zerolog.Logger) *DealerService {
	return &DealerService{guard: guard, dealers: dealers, logger: logger}
}

func (s *DealerService) GetSettings(ctx context.Context) (*domain.Dealer, error) {
	scope, err := s.guard.Enter(ctx, access.OpDealerGetSettings)
	if err != nil {
		return nil, err
	}
	return s.dealers.FindByID(ctx, scope.DealerID())
}

func (s *DealerService) UpdateSettings(ctx context.Context, in ports.DealerSettings) (*domain.Dealer, error) {
	scope, err := s.guard.Enter(ctx, access.OpDealerUpdateSettings)
	if err != nil {
		return nil, err
	}

	in.Email = normalizeEmail(in.Email)
	in.LeadEmail = normalizeEmail(in.LeadEmail)
	fe := fieldErrors{}
	fe.required("name", in.Name)
	fe.email("email", in.Email, false)
	fe.email("lead_email", in.LeadEmail, false)
	fe.maxLen("address", in.Address, 500)
	if err := fe.err(); err != nil {
		return nil, err
	}

	dealer, err := s.dealers.UpdateSettings(ctx, scope.DealerID(), in)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("dealer_id", dealer.ID).Msg("dealer settings updated")
	return dealer, nil
}
