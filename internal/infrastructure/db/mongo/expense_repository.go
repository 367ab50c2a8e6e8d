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

const collectionExpenses = "expenses"

type ExpenseRepository struct {
	col *mongo.Collection
}

func NewExpenseRepository(db *mongo.Database) *ExpenseRepository {
	return &ExpenseRepository{col: db.Collection(collectionExpenses)}
}

func (r *ExpenseRepository) Create(ctx context.Context, e *domain.Expense) error {
	if e.DealerID == "" {
		return domain.ErrUnauthorized
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, e); err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

func (r *ExpenseRepository) FindByID(ctx context.Context, dealerID, id string) (*domain.Expense, error) {
	filter, err := byID(dealerID, id)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var e domain.Expense
	if err := r.col.FindOne(ctx, filter).Decode(&e); err != nil {
		return nil, translate(err, domain.ErrNotFound)
	}
	return &e, nil
}

func expenseListFilter(f ports.ExpenseFilter) (bson.M, error) {
	q := bson.M{}
	if f.VehicleID != "" {
		q["vehicle_id"] = f.VehicleID
	}
	if f.Category != "" {
		q["category"] = f.Category
	}
	if !f.From.IsZero() || !f.To.IsZero() {
		rng := bson.M{}
		if !f.From.IsZero() {
			rng["$gte"] = f.From.UTC()
		}
		if !f.To.IsZero() {
			rng["$lte"] = f.To.UTC()
		}
		q["incurred_on"] = rng
	}
	return scoped(f.DealerID, q)
}

func (r *ExpenseRepository) List(ctx context.Context, f ports.ExpenseFilter) ([]*domain.Expense, int64, error) {
	filter, err := expenseListFilter(f)
	if err != nil {
		return nil, 0, err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count expenses: %w", err)
	}
	opts := pageOptions(f.PageRequest).SetSort(bson.D{{Key: "incurred_on", Value: -1}, {Key: "_id", Value: 1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list expenses: %w", err)
	}
	items := []*domain.Expense{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, 0, fmt.Errorf("decode expenses: %w", err)
	}
	return items, total, nil
}

func (r *ExpenseRepository) Update(ctx context.Context, dealerID, id string, in ports.ExpenseInput) (*domain.Expense, error) {
	filter, err := byID(dealerID, id)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"vehicle_id":  in.VehicleID,
		"category":    in.Category,
		"amount":      in.Amount,
		"description": in.Description,
		"incurred_on": in.IncurredOn,
		"updated_at":  time.Now().UTC(),
	}}
	var e domain.Expense
	if err := r.col.FindOneAndUpdate(ctx, filter, update, returnAfter).Decode(&e); err != nil {
		return nil, translate(err, domain.ErrNotFound)
	}
	return &e, nil
}

func (r *ExpenseRepository) Delete(ctx context.Context, dealerID, id string) error {
	filter, err := byID(dealerID, id)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ExpenseRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "dealer_id", Value: 1}, {Key: "incurred_on", Value: -1}}},
		{Keys: bson.D{{Key: "dealer_id", Value: 1}, {Key: "vehicle_id", Value: 1}}},
	})
	return err
}
