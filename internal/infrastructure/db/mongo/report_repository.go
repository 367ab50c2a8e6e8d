package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dealerhub/dealership-system/internal/core/ports"
)

// ReportRepository aggregates across the tenant collections. Every pipeline
// starts with a scoped $match.
type ReportRepository struct {
	vehicles *mongo.Collection
	leads    *mongo.Collection
	expenses *mongo.Collection
}

func NewReportRepository(db *mongo.Database) *ReportRepository {
	return &ReportRepository{
		vehicles: db.Collection(collectionVehicles),
		leads:    db.Collection(collectionLeads),
		expenses: db.Collection(collectionExpenses),
	}
}

type statusCount struct {
	Status string `bson:"_id"`
	Count  int64  `bson:"count"`
}

type expenseTotals struct {
	Total float64 `bson:"total"`
	Count int64   `bson:"count"`
}

func countByStatusPipeline(match bson.M) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	}
}

func expenseTotalsPipeline(match bson.M) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$amount"}, "count": bson.M{"$sum": 1}}}},
	}
}

func (r *ReportRepository) Summary(ctx context.Context, dealerID string) (*ports.ReportSummary, error) {
	match, err := scoped(dealerID, bson.M{})
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	vehicles, err := r.countByStatus(ctx, r.vehicles, match)
	if err != nil {
		return nil, fmt.Errorf("vehicle summary: %w", err)
	}
	leads, err := r.countByStatus(ctx, r.leads, match)
	if err != nil {
		return nil, fmt.Errorf("lead summary: %w", err)
	}

	cur, err := r.expenses.Aggregate(ctx, expenseTotalsPipeline(match))
	if err != nil {
		return nil, fmt.Errorf("expense summary: %w", err)
	}
	var totals []expenseTotals
	if err := cur.All(ctx, &totals); err != nil {
		return nil, fmt.Errorf("decode expense summary: %w", err)
	}

	sum := &ports.ReportSummary{VehiclesByStatus: vehicles, LeadsByStatus: leads}
	if len(totals) > 0 {
		sum.ExpenseTotal = totals[0].Total
		sum.ExpenseCount = totals[0].Count
	}
	return sum, nil
}

func (r *ReportRepository) countByStatus(ctx context.Context, col *mongo.Collection, match bson.M) (map[string]int64, error) {
	cur, err := col.Aggregate(ctx, countByStatusPipeline(match))
	if err != nil {
		return nil, err
	}
	var rows []statusCount
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Count
	}
	return out, nil
}
