package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dealerhub/dealership-system/internal/core/domain"
	"github.com/dealerhub/dealership-system/internal/core/ports"
)

const (
	collectionLeads    = "leads"
	collectionSourcing = "sourcing_requests"
)

type LeadRepository struct {
	col *mongo.Collection
}

func NewLeadRepository(db *mongo.Database) *LeadRepository {
	return &LeadRepository{col: db.Collection(collectionLeads)}
}

func (r *LeadRepository) Create(ctx context.Context, l *domain.Lead) error {
	if l.DealerID == "" {
		return domain.ErrUnauthorized
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, l); err != nil {
		return fmt.Errorf("insert lead: %w", err)
	}
	return nil
}

func (r *LeadRepository) FindByID(ctx context.Context, dealerID, id string) (*domain.Lead, error) {
	filter, err := byID(dealerID, id)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var l domain.Lead
	if err := r.col.FindOne(ctx, filter).Decode(&l); err != nil {
		return nil, translate(err, domain.ErrNotFound)
	}
	return &l, nil
}

func leadListFilter(f ports.LeadFilter) (bson.M, error) {
	q := bson.M{}
	if f.Status != "" {
		q["status"] = f.Status
	}
	if f.Source != "" {
		q["source"] = f.Source
	}
	return scoped(f.DealerID, q)
}

func (r *LeadRepository) List(ctx context.Context, f ports.LeadFilter) ([]*domain.Lead, int64, error) {
	filter, err := leadListFilter(f)
	if err != nil {
		return nil, 0, err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count leads: %w", err)
	}
	cur, err := r.col.Find(ctx, filter, pageOptions(f.PageRequest))
	if err != nil {
		return nil, 0, fmt.Errorf("list leads: %w", err)
	}
	items := []*domain.Lead{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, 0, fmt.Errorf("decode leads: %w", err)
	}
	return items, total, nil
}

func (r *LeadRepository) UpdateStatus(ctx context.Context, dealerID, id string, status domain.LeadStatus) error {
	filter, err := byID(dealerID, id)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"status": status, "updated_at": time.Now().UTC()}})
	if err != nil {
		return fmt.Errorf("update lead status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *LeadRepository) Delete(ctx context.Context, dealerID, id string) error {
	filter, err := byID(dealerID, id)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("delete lead: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *LeadRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "dealer_id", Value: 1}, {Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "dealer_id", Value: 1}, {Key: "source", Value: 1}}},
	})
	return err
}

// SourcingRepository stores "find me a car" requests.
type SourcingRepository struct {
	col *mongo.Collection
}

func NewSourcingRepository(db *mongo.Database) *SourcingRepository {
	return &SourcingRepository{col: db.Collection(collectionSourcing)}
}

func (r *SourcingRepository) Create(ctx context.Context, req *domain.SourcingRequest) error {
	if req.DealerID == "" {
		return domain.ErrUnauthorized
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, req); err != nil {
		return fmt.Errorf("insert sourcing request: %w", err)
	}
	return nil
}

func (r *SourcingRepository) FindByID(ctx context.Context, dealerID, id string) (*domain.SourcingRequest, error) {
	filter, err := byID(dealerID, id)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var req domain.SourcingRequest
	if err := r.col.FindOne(ctx, filter).Decode(&req); err != nil {
		return nil, translate(err, domain.ErrNotFound)
	}
	return &req, nil
}

func (r *SourcingRepository) List(ctx context.Context, f ports.SourcingFilter) ([]*domain.SourcingRequest, int64, error) {
	q := bson.M{}
	if f.Status != "" {
		q["status"] = f.Status
	}
	filter, err := scoped(f.DealerID, q)
	if err != nil {
		return nil, 0, err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count sourcing requests: %w", err)
	}
	cur, err := r.col.Find(ctx, filter, pageOptions(f.PageRequest))
	if err != nil {
		return nil, 0, fmt.Errorf("list sourcing requests: %w", err)
	}
	items := []*domain.SourcingRequest{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, 0, fmt.Errorf("decode sourcing requests: %w", err)
	}
	return items, total, nil
}

func (r *SourcingRepository) UpdateStatus(ctx context.Context, dealerID, id string, status domain.SourcingStatus) error {
	filter, err := byID(dealerID, id)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"status": status, "updated_at": time.Now().UTC()}})
	if err != nil {
		return fmt.Errorf("update sourcing status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SourcingRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "dealer_id", Value: 1}, {Key: "status", Value: 1}, {Key: "created_at", Value: -1}},
	})
	return err
}
