package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/dealerhub/dealership-system/internal/core/access"
	"github.com/dealerhub/dealership-system/internal/core/domain"
	"github.com/dealerhub/dealership-system/internal/core/ports"
)

// VehicleService manages the caller's inventory.
type VehicleService struct {
	guard    *access.Guard
	vehicles ports.VehicleRepository
	images   ports.ImageStore
	logger   zerolog.Logger
}

func NewVehicleService(guard *access.Guard, vehicles ports.VehicleRepository, images ports.ImageStore, logger zerolog.Logger) *VehicleService {
	return &VehicleService{guard: guard, vehicles: vehicles, images: images, logger: logger}
}

func (s *VehicleService) List(ctx context.Context, filter ports.VehicleFilter) (*ports.Page[*domain.Vehicle], error) {
	scope, err := s.guard.Enter(ctx, access.OpVehiclesList)
	if err != nil {
		return nil, err
	}
	if filter.Status != "" && !domain.VehicleStatus(filter.Status).Valid() {
		return nil, domain.NewValidationError("status", "must be one of draft, published, sold")
	}

	filter.DealerID = scope.DealerID()
	filter.PageRequest = filter.PageRequest.Normalize()
	filter.Search = strings.TrimSpace(filter.Search)

	items, total, err := s.vehicles.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ports.NewPage(items, total, filter.PageRequest), nil
}

func (s *VehicleService) Get(ctx context.Context, id string) (*domain.Vehicle, error) {
	scope, err := s.guard.Enter(ctx, access.OpVehiclesGet)
	if err != nil {
		return nil, err
	}
	return s.vehicles.FindByID(ctx, scope.DealerID(), id)
}

func (s *VehicleService) Create(ctx context.Context, in ports.VehicleInput) (*domain.Vehicle, error) {
	scope, err := s.guard.Enter(ctx, access.OpVehiclesCreate)
	if err != nil {
		return nil, err
	}
	if in.Status == "" {
		in.Status = domain.VehicleDraft
	}
	in.VIN = strings.ToUpper(strings.TrimSpace(in.VIN))
	if err := s.validate(scope.DealerID(), in); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	v := &domain.Vehicle{
		ID:          newID(),
		PublicID:    newID(),
		DealerID:    scope.DealerID(),
		StockNumber: strings.TrimSpace(in.StockNumber),
		VIN:         in.VIN,
		Year:        in.Year,
		Make:        in.Make,
		Model:       in.Model,
		Trim:        in.Trim,
		Price:       in.Price,
		Mileage:     in.Mileage,
		Description: in.Description,
		Images:      in.Images,
		Status:      in.Status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.vehicles.Create(ctx, v); err != nil {
		return nil, err
	}

	s.logger.Info().Str("dealer_id", v.DealerID).Str("vehicle_id", v.ID).Str("stock_number", v.StockNumber).Msg("vehicle created")
	return v, nil
}

// Update replaces the editable fields of a vehicle. An omitted status keeps
// the current one. Images dropped from the list are removed from object
// storage once the update is stored.
func (s *VehicleService) Update(ctx context.Context, id string, in ports.VehicleInput) (*domain.Vehicle, error) {
	scope, err := s.guard.Enter(ctx, access.OpVehiclesUpdate)
	if err != nil {
		return nil, err
	}

	current, err := s.vehicles.FindByID(ctx, scope.DealerID(), id)
	if err != nil {
		return nil, err
	}

	in.VIN = strings.ToUpper(strings.TrimSpace(in.VIN))
	in.StockNumber = strings.TrimSpace(in.StockNumber)
	if in.Status == "" {
		in.Status = current.Status
	}
	if err := s.validate(scope.DealerID(), in); err != nil {
		return nil, err
	}

	updated, err := s.vehicles.Update(ctx, scope.DealerID(), id, in)
	if err != nil {
		return nil, err
	}
	s.removeImages(ctx, updated, droppedImages(current.Images, updated.Images))
	return updated, nil
}

func (s *VehicleService) SetStatus(ctx context.Context, id string, status domain.VehicleStatus) error {
	scope, err := s.guard.Enter(ctx, access.OpVehiclesSetStatus)
	if err != nil {
		return err
	}
	if !status.Valid() {
		return domain.NewValidationError("status", "must be one of draft, published, sold")
	}
	return s.vehicles.SetStatus(ctx, scope.DealerID(), id, status)
}

// Delete removes a vehicle, then its images. Storage failures are logged and
// do not fail the call.
func (s *VehicleService) Delete(ctx context.Context, id string) error {
	scope, err := s.guard.Enter(ctx, access.OpVehiclesDelete)
	if err != nil {
		return err
	}
	removed, err := s.vehicles.Delete(ctx, scope.DealerID(), id)
	if err != nil {
		return err
	}
	s.logger.Info().Str("dealer_id", scope.DealerID()).Str("vehicle_id", id).Msg("vehicle deleted")
	s.removeImages(ctx, removed, removed.Images)
	return nil
}

// removeImages deletes the images of v that belong to v's dealer. References
// outside the dealer's prefix are never passed to the store.
func (s *VehicleService) removeImages(ctx context.Context, v *domain.Vehicle, images []string) {
	if s.images == nil {
		return
	}
	keys := make([]string, 0, len(images))
	for _, img := range images {
		if s.images.Owns(v.DealerID, img) {
			keys = append(keys, img)
		} else {
			s.logger.Warn().Str("dealer_id", v.DealerID).Str("vehicle_id", v.ID).Str("image", img).Msg("skipping image outside dealer prefix")
		}
	}
	if len(keys) == 0 {
		return
	}
	if err := s.images.Delete(ctx, v.DealerID, keys); err != nil {
		s.logger.Warn().
			Err(fmt.Errorf("%w: %v", domain.ErrDependencyUnavailable, err)).
			Str("vehicle_id", v.ID).
			Int("images", len(keys)).
			Msg("image cleanup failed")
	}
}

func droppedImages(before, after []string) []string {
	keep := make(map[string]struct{}, len(after))
	for _, k := range after {
		keep[k] = struct{}{}
	}
	var dropped []string
	for _, k := range before {
		if _, ok := keep[k]; !ok {
			dropped = append(dropped, k)
		}
	}
	return dropped
}

// validate checks in, including that every image is stored under dealerID.
func (s *VehicleService) validate(dealerID string, in ports.VehicleInput) error {
	fe := vehicleErrors(in)
	if s.images != nil {
		for _, img := range in.Images {
			if !s.images.Owns(dealerID, img) {
				fe.add("images", "must reference images uploaded for this dealer")
				break
			}
		}
	}
	return fe.err()
}

func vehicleErrors(in ports.VehicleInput) fieldErrors {
	fe := fieldErrors{}
	fe.required("stock_number", in.StockNumber)
	if in.VIN != "" && len(in.VIN) != vinLen {
		fe.add("vin", fmt.Sprintf("must be %d characters", vinLen))
	}
	if in.Year < minModelYear || in.Year > maxModelYear() {
		fe.add("year", fmt.Sprintf("must be between %d and %d", minModelYear, maxModelYear()))
	}
	fe.required("make", in.Make)
	fe.required("model", in.Model)
	if in.Price < 0 {
		fe.add("price", "must not be negative")
	}
	if in.Mileage < 0 {
		fe.add("mileage", "must not be negative")
	}
	if !in.Status.Valid() {
		fe.add("status", "must be one of draft, published, sold")
	}
	fe.maxLen("description", in.Description, 5000)
	return fe
}
