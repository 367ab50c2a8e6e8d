package mongo

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dealerhub/dealership-system/internal/core/domain"
	"github.com/dealerhub/dealership-system/internal/core/ports"
)

const collectionVehicles = "vehicles"

type VehicleRepository struct {
	col *mongo.Collection
}

func NewVehicleRepository(db *mongo.Database) *VehicleRepository {
	return &VehicleRepository{col: db.Collection(collectionVehicles)}
}

// Create inserts a vehicle. Stock numbers are unique per dealer.
func (r *VehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	if v.DealerID == "" {
		return domain.ErrUnauthorized
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, v); err != nil {
		return translate(err, domain.ErrNotFound)
	}
	return nil
}

func (r *VehicleRepository) FindByID(ctx context.Context, dealerID, id string) (*domain.Vehicle, error) {
	filter, err := byID(dealerID, id)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, filter)
}

func (r *VehicleRepository) findOne(ctx context.Context, filter bson.M) (*domain.Vehicle, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var v domain.Vehicle
	if err := r.col.FindOne(ctx, filter).Decode(&v); err != nil {
		return nil, translate(err, domain.ErrNotFound)
	}
	return &v, nil
}

// vehicleListFilter builds the scoped list query.
func vehicleListFilter(f ports.VehicleFilter) (bson.M, error) {
	q := bson.M{}
	if f.Status != "" {
		q["status"] = f.Status
	}
	if f.Search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		q["$or"] = bson.A{
			bson.M{"make": re},
			bson.M{"model": re},
			bson.M{"vin": re},
			bson.M{"stock_number": re},
		}
	}
	return scoped(f.DealerID, q)
}

func (r *VehicleRepository) List(ctx context.Context, f ports.VehicleFilter) ([]*domain.Vehicle, int64, error) {
	filter, err := vehicleListFilter(f)
	if err != nil {
		return nil, 0, err
	}
	return r.list(ctx, filter, f.PageRequest)
}

func (r *VehicleRepository) list(ctx context.Context, filter bson.M, page ports.PageRequest) ([]*domain.Vehicle, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count vehicles: %w", err)
	}
	cur, err := r.col.Find(ctx, filter, pageOptions(page))
	if err != nil {
		return nil, 0, fmt.Errorf("list vehicles: %w", err)
	}
	items := []*domain.Vehicle{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, 0, fmt.Errorf("decode vehicles: %w", err)
	}
	return items, total, nil
}

func (r *VehicleRepository) Update(ctx context.Context, dealerID, id string, in ports.VehicleInput) (*domain.Vehicle, error) {
	filter, err := byID(dealerID, id)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"stock_number": in.StockNumber,
		"vin":          in.VIN,
		"year":         in.Year,
		"make":         in.Make,
		"model":        in.Model,
		"trim":         in.Trim,
		"price":        in.Price,
		"mileage":      in.Mileage,
		"description":  in.Description,
		"images":       in.Images,
		"status":       in.Status,
		"updated_at":   time.Now().UTC(),
	}}
	var v domain.Vehicle
	if err := r.col.FindOneAndUpdate(ctx, filter, update, returnAfter).Decode(&v); err != nil {
		return nil, translate(err, domain.ErrNotFound)
	}
	return &v, nil
}

func (r *VehicleRepository) SetStatus(ctx context.Context, dealerID, id string, status domain.VehicleStatus) error {
	filter, err := byID(dealerID, id)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"status": status, "updated_at": time.Now().UTC()}})
	if err != nil {
		return fmt.Errorf("update vehicle status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *VehicleRepository) Delete(ctx context.Context, dealerID, id string) (*domain.Vehicle, error) {
	filter, err := byID(dealerID, id)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var v domain.Vehicle
	if err := r.col.FindOneAndDelete(ctx, filter).Decode(&v); err != nil {
		return nil, translate(err, domain.ErrNotFound)
	}
	return &v, nil
}

// publishedFilter is the public-site exception to dealer scoping: rows are
// selected by publication status instead.
func publishedFilter(extra bson.M) bson.M {
	out := bson.M{"status": domain.VehiclePublished}
	for k, v := range extra {
		if k == "status" {
			continue
		}
		out[k] = v
	}
	return out
}

func (r *VehicleRepository) FindPublished(ctx context.Context, publicID string) (*domain.Vehicle, error) {
	return r.findOne(ctx, publishedFilter(bson.M{"public_id": publicID}))
}

func (r *VehicleRepository) ListPublished(ctx context.Context, dealerID string, page ports.PageRequest) ([]*domain.Vehicle, int64, error) {
	if dealerID == "" {
		return nil, 0, domain.ErrNotFound
	}
	return r.list(ctx, publishedFilter(bson.M{fieldDealerID: dealerID}), page)
}

func (r *VehicleRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "dealer_id", Value: 1}, {Key: "stock_number", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "public_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "dealer_id", Value: 1}, {Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
	})
	return err
}
