package ports

import (
	"context"

	"github.com/dealerhub/dealership-system/internal/core/domain"
)

// VehicleFilter carries list parameters. DealerID is always set by the service.
type VehicleFilter struct {
	DealerID string
	Status   string
	Search   string // partial match on make, model, VIN or stock number
	PageRequest
}

// VehicleInput is the create/update payload. It deliberately has no dealer field.
type VehicleInput struct {
	StockNumber string
	VIN         string
	Year        int
	Make        string
	Model       string
	Trim        string
	Price       float64
	Mileage     int
	Description string
	Images      []string
	Status      domain.VehicleStatus
}

// VehicleRepository persists inventory. Methods taking dealerID match only rows
// owned by that dealer; the Published* methods serve the public site.
type VehicleRepository interface {
	Create(ctx context.Context, v *domain.Vehicle) error
	FindByID(ctx context.Context, dealerID, id string) (*domain.Vehicle, error)
	List(ctx context.Context, filter VehicleFilter) ([]*domain.Vehicle, int64, error)
	Update(ctx context.Context, dealerID, id string, in VehicleInput) (*domain.Vehicle, error)
	SetStatus(ctx context.Context, dealerID, id string, status domain.VehicleStatus) error
	// Delete removes the vehicle and returns the removed row.
	Delete(ctx context.Context, dealerID, id string) (*domain.Vehicle, error)

	FindPublished(ctx context.Context, publicID string) (*domain.Vehicle, error)
	ListPublished(ctx context.Context, dealerID string, page PageRequest) ([]*domain.Vehicle, int64, error)
}

type VehicleService interface {
	List(ctx context.Context, filter VehicleFilter) (*Page[*domain.Vehicle], error)
	Get(ctx context.Context, id string) (*domain.Vehicle, error)
	Create(ctx context.Context, in VehicleInput) (*domain.Vehicle, error)
	Update(ctx context.Context, id string, in VehicleInput) (*domain.Vehicle, error)
	SetStatus(ctx context.Context, id string, status domain.VehicleStatus) error
	Delete(ctx context.Context, id string) error
}

// ImageStore removes vehicle images from object storage. Every dealer's
// objects live under the "<dealer_id>/" key prefix of a shared bucket.
type ImageStore interface {
	// Owns reports whether image resolves to an object under dealerID's prefix.
	Owns(dealerID, image string) bool
	// Delete removes the images owned by dealerID and skips the rest.
	Delete(ctx context.Context, dealerID string, images []string) error
}
