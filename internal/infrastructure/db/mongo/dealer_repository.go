package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dealerhub/dealership-system/internal/core/domain"
	"github.com/dealerhub/dealership-system/internal/core/ports"
)

const collectionDealers = "dealers"

// DealerRepository stores tenants. A dealer row is its own scope, so lookups
// are by primary key or public slug.
type DealerRepository struct {
	col *mongo.Collection
}

func NewDealerRepository(db *mongo.Database) *DealerRepository {
	return &DealerRepository{col: db.Collection(collectionDealers)}
}

func (r *DealerRepository) Create(ctx context.Context, d *domain.Dealer) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, d); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("dealer slug %q: %w", d.Slug, domain.ErrConflict)
		}
		return fmt.Errorf("insert dealer: %w", err)
	}
	return nil
}

func (r *DealerRepository) FindByID(ctx context.Context, id string) (*domain.Dealer, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *DealerRepository) FindBySlug(ctx context.Context, slug string) (*domain.Dealer, error) {
	return r.findOne(ctx, bson.M{"slug": slug})
}

func (r *DealerRepository) findOne(ctx context.Context, filter bson.M) (*domain.Dealer, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d domain.Dealer
	if err := r.col.FindOne(ctx, filter).Decode(&d); err != nil {
		return nil, translate(err, domain.ErrNotFound)
	}
	return &d, nil
}

func (r *DealerRepository) UpdateSettings(ctx context.Context, id string, s ports.DealerSettings) (*domain.Dealer, error) {
	if id == "" {
		return nil, domain.ErrUnauthorized
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"name":       s.Name,
		"phone":      s.Phone,
		"email":      s.Email,
		"address":    s.Address,
		"lead_email": s.LeadEmail,
		"updated_at": time.Now().UTC(),
	}}
	var d domain.Dealer
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, returnAfter).Decode(&d); err != nil {
		return nil, translate(err, domain.ErrNotFound)
	}
	return &d, nil
}

func (r *DealerRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrUnauthorized
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete dealer: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *DealerRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
