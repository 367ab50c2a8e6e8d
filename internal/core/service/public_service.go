package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/dealerhub/dealership-system/internal/core/domain"
	"github.com/dealerhub/dealership-system/internal/core/ports"
	"github.com/dealerhub/dealership-system/internal/pkg/metrics"
)

const (
	actionLead      = "leads.submit"
	actionSellMyCar = "sell_my_car.submit"
	actionSourcing  = "sourcing.submit"
)

// PublicService serves the dealer's public site. Reads are scoped by
// publication status; writes pass the abuse gate before anything else and take
// their dealer from the vehicle or slug they target, never from the payload.
type PublicService struct {
	gate     PublicGate
	dealers  ports.DealerRepository
	vehicles ports.VehicleRepository
	leads    ports.LeadRepository
	sourcing ports.SourcingRepository
	dedup    ports.SubmissionGuard
	notifier ports.Notifier
	logger   zerolog.Logger
}

// PublicDeps groups the collaborators of PublicService. Dedup and Notifier
// are optional.
type PublicDeps struct {
	Gate     PublicGate
	Dealers  ports.DealerRepository
	Vehicles ports.VehicleRepository
	Leads    ports.LeadRepository
	Sourcing ports.SourcingRepository
	Dedup    ports.SubmissionGuard
	Notifier ports.Notifier
}

func NewPublicService(deps PublicDeps, logger zerolog.Logger) *PublicService {
	return &PublicService{
		gate:     deps.Gate,
		dealers:  deps.Dealers,
		vehicles: deps.Vehicles,
		leads:    deps.Leads,
		sourcing: deps.Sourcing,
		dedup:    deps.Dedup,
		notifier: deps.Notifier,
		logger:   logger,
	}
}

func (s *PublicService) ListPublishedVehicles(ctx context.Context, dealerSlug string, page ports.PageRequest) (*ports.Page[*domain.Vehicle], error) {
	dealer, err := s.dealers.FindBySlug(ctx, dealerSlug)
	if err != nil {
		return nil, err
	}
	page = page.Normalize()
	items, total, err := s.vehicles.ListPublished(ctx, dealer.ID, page)
	if err != nil {
		return nil, err
	}
	return ports.NewPage(items, total, page), nil
}

func (s *PublicService) GetPublishedVehicle(ctx context.Context, publicID string) (*domain.Vehicle, error) {
	return s.vehicles.FindPublished(ctx, publicID)
}

// SubmitLead records an inquiry about a published vehicle. The lead belongs
// to the vehicle's dealer.
func (s *PublicService) SubmitLead(ctx context.Context, pc ports.PublicContext, vehiclePublicID string, in ports.LeadInput) (*ports.SubmissionResult, error) {
	if err := s.gate.Admit(ctx, actionLead, pc.Fingerprint, pc.ChallengeToken); err != nil {
		return nil, err
	}

	in.Email = normalizeEmail(in.Email)
	fe := contactErrors(in.Name, in.Email, in.Phone)
	fe.maxLen("message", in.Message, maxMessageLen)
	if err := fe.err(); err != nil {
		return nil, err
	}

	vehicle, err := s.vehicles.FindPublished(ctx, vehiclePublicID)
	if err != nil {
		return nil, err
	}

	key := dedupKey(actionLead, vehicle.ID, in.Email)
	if s.isDuplicate(ctx, key) {
		return &ports.SubmissionResult{Duplicate: true}, nil
	}

	now := time.Now().UTC()
	lead := &domain.Lead{
		ID:        newID(),
		DealerID:  vehicle.DealerID,
		VehicleID: vehicle.ID,
		Source:    domain.SourceInquiry,
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Message:   in.Message,
		Status:    domain.LeadNew,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.leads.Create(ctx, lead); err != nil {
		s.release(ctx, key)
		return nil, err
	}
	metrics.LeadsCreatedTotal.WithLabelValues(string(lead.Source)).Inc()

	s.notify(ctx, vehicle.DealerID,
		fmt.Sprintf("New inquiry: %d %s %s", vehicle.Year, vehicle.Make, vehicle.Model),
		fmt.Sprintf("%s <%s> %s asked about stock #%s.\n\n%s", lead.Name, lead.Email, lead.Phone, vehicle.StockNumber, lead.Message))

	return &ports.SubmissionResult{ID: lead.ID}, nil
}

// SubmitSellMyCar records a trade-in offer as a lead with source sell_my_car.
func (s *PublicService) SubmitSellMyCar(ctx context.Context, pc ports.PublicContext, dealerSlug string, in ports.SellMyCarInput) (*ports.SubmissionResult, error) {
	if err := s.gate.Admit(ctx, actionSellMyCar, pc.Fingerprint, pc.ChallengeToken); err != nil {
		return nil, err
	}

	in.Email = normalizeEmail(in.Email)
	in.TradeIn.VIN = strings.ToUpper(strings.TrimSpace(in.TradeIn.VIN))
	fe := contactErrors(in.Name, in.Email, in.Phone)
	fe.maxLen("message", in.Message, maxMessageLen)
	if in.TradeIn.Year < minModelYear || in.TradeIn.Year > maxModelYear() {
		fe.add("trade_in.year", fmt.Sprintf("must be between %d and %d", minModelYear, maxModelYear()))
	}
	fe.required("trade_in.make", in.TradeIn.Make)
	fe.required("trade_in.model", in.TradeIn.Model)
	if in.TradeIn.Mileage < 0 {
		fe.add("trade_in.mileage", "must not be negative")
	}
	if in.TradeIn.VIN != "" && len(in.TradeIn.VIN) != vinLen {
		fe.add("trade_in.vin", fmt.Sprintf("must be %d characters", vinLen))
	}
	if err := fe.err(); err != nil {
		return nil, err
	}

	dealer, err := s.dealers.FindBySlug(ctx, dealerSlug)
	if err != nil {
		return nil, err
	}

	key := dedupKey(actionSellMyCar, dealer.ID, in.Email)
	if s.isDuplicate(ctx, key) {
		return &ports.SubmissionResult{Duplicate: true}, nil
	}

	tradeIn := in.TradeIn
	now := time.Now().UTC()
	lead := &domain.Lead{
		ID:        newID(),
		DealerID:  dealer.ID,
		Source:    domain.SourceSellMyCar,
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Message:   in.Message,
		TradeIn:   &tradeIn,
		Status:    domain.LeadNew,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.leads.Create(ctx, lead); err != nil {
		s.release(ctx, key)
		return nil, err
	}
	metrics.LeadsCreatedTotal.WithLabelValues(string(lead.Source)).Inc()

	s.notify(ctx, dealer.ID,
		fmt.Sprintf("Sell my car: %d %s %s", tradeIn.Year, tradeIn.Make, tradeIn.Model),
		fmt.Sprintf("%s <%s> %s wants to sell a %d %s %s with %d miles.\n\n%s",
			lead.Name, lead.Email, lead.Phone, tradeIn.Year, tradeIn.Make, tradeIn.Model, tradeIn.Mileage, lead.Message))

	return &ports.SubmissionResult{ID: lead.ID}, nil
}

// SubmitSourcingRequest records a request for a vehicle the dealer does not stock.
func (s *PublicService) SubmitSourcingRequest(ctx context.Context, pc ports.PublicContext, dealerSlug string, in ports.SourcingInput) (*ports.SubmissionResult, error) {
	if err := s.gate.Admit(ctx, actionSourcing, pc.Fingerprint, pc.ChallengeToken); err != nil {
		return nil, err
	}

	in.Email = normalizeEmail(in.Email)
	fe := contactErrors(in.Name, in.Email, in.Phone)
	fe.required("make", in.Make)
	if in.YearFrom != 0 && (in.YearFrom < minModelYear || in.YearFrom > maxModelYear()) {
		fe.add("year_from", fmt.Sprintf("must be between %d and %d", minModelYear, maxModelYear()))
	}
	if in.YearTo != 0 && in.YearFrom != 0 && in.YearTo < in.YearFrom {
		fe.add("year_to", "must not be before year_from")
	}
	if in.MaxBudget < 0 {
		fe.add("max_budget", "must not be negative")
	}
	fe.maxLen("notes", in.Notes, maxMessageLen)
	if err := fe.err(); err != nil {
		return nil, err
	}

	dealer, err := s.dealers.FindBySlug(ctx, dealerSlug)
	if err != nil {
		return nil, err
	}

	key := dedupKey(actionSourcing, dealer.ID, in.Email)
	if s.isDuplicate(ctx, key) {
		return &ports.SubmissionResult{Duplicate: true}, nil
	}

	now := time.Now().UTC()
	req := &domain.SourcingRequest{
		ID:        newID(),
		DealerID:  dealer.ID,
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Make:      in.Make,
		Model:     in.Model,
		YearFrom:  in.YearFrom,
		YearTo:    in.YearTo,
		MaxBudget: in.MaxBudget,
		Notes:     in.Notes,
		Status:    domain.SourcingOpen,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.sourcing.Create(ctx, req); err != nil {
		s.release(ctx, key)
		return nil, err
	}

	s.notify(ctx, dealer.ID,
		fmt.Sprintf("Sourcing request: %s %s", req.Make, req.Model),
		fmt.Sprintf("%s <%s> %s is looking for a %s %s (%d-%d), budget %.0f.\n\n%s",
			req.Name, req.Email, req.Phone, req.Make, req.Model, req.YearFrom, req.YearTo, req.MaxBudget, req.Notes))

	return &ports.SubmissionResult{ID: req.ID}, nil
}

// isDuplicate claims key and reports whether it was already submitted
// recently. Guard failures are logged and the submission proceeds.
func (s *PublicService) isDuplicate(ctx context.Context, key string) bool {
	if s.dedup == nil {
		return false
	}
	fresh, err := s.dedup.Claim(ctx, key)
	if err != nil {
		metrics.DuplicateSubmissionsTotal.WithLabelValues("error").Inc()
		s.logger.Warn().Err(err).Str("key", key).Msg("duplicate check unavailable, accepting submission")
		return false
	}
	if !fresh {
		metrics.DuplicateSubmissionsTotal.WithLabelValues("hit").Inc()
		s.logger.Info().Str("key", key).Msg("duplicate submission suppressed")
		return true
	}
	metrics.DuplicateSubmissionsTotal.WithLabelValues("miss").Inc()
	return false
}

func (s *PublicService) release(ctx context.Context, key string) {
	if s.dedup == nil {
		return
	}
	if err := s.dedup.Release(ctx, key); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("failed to release duplicate-submission key")
	}
}

// notify queues an email to the dealer's lead address. Every failure is
// logged and swallowed.
func (s *PublicService) notify(ctx context.Context, dealerID, subject, body string) {
	if s.notifier == nil {
		return
	}
	dealer, err := s.dealers.FindByID(ctx, dealerID)
	if err != nil {
		s.logger.Warn().Err(err).Str("dealer_id", dealerID).Msg("notification skipped: dealer lookup failed")
		return
	}
	to := dealer.LeadEmail
	if to == "" {
		to = dealer.Email
	}
	if to == "" {
		s.logger.Debug().Str("dealer_id", dealerID).Msg("notification skipped: no lead email configured")
		return
	}
	s.notifier.Notify(ports.Notification{DealerID: dealerID, To: to, Subject: subject, Body: body})
}

func contactErrors(name, email, phone string) fieldErrors {
	fe := fieldErrors{}
	fe.required("name", name)
	fe.maxLen("name", name, 200)
	fe.email("email", email, true)
	fe.maxLen("phone", phone, 40)
	return fe
}

func dedupKey(action, target, email string) string {
	return action + ":" + target + ":" + email
}
