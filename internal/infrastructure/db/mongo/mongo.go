package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultTimeout = 10 * time.Second

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect establishes a MongoDB client, verifies connectivity with a ping, and
// returns both the client and the selected database. A default timeout is
// applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(cfg.Database)
	return client, db, nil
}

// Repositories bundles every collection-backed repository of the service.
type Repositories struct {
	Users    *UserRepository
	Dealers  *DealerRepository
	Vehicles *VehicleRepository
	Leads    *LeadRepository
	Sourcing *SourcingRepository
	Expenses *ExpenseRepository
	Reports  *ReportRepository
}

func NewRepositories(db *mongo.Database) *Repositories {
	return &Repositories{
		Users:    NewUserRepository(db),
		Dealers:  NewDealerRepository(db),
		Vehicles: NewVehicleRepository(db),
		Leads:    NewLeadRepository(db),
		Sourcing: NewSourcingRepository(db),
		Expenses: NewExpenseRepository(db),
		Reports:  NewReportRepository(db),
	}
}

type indexer interface {
	EnsureIndexes(ctx context.Context) error
}

// EnsureIndexes creates the indexes of every collection. Creating an index
// that already exists is a no-op.
func (r *Repositories) EnsureIndexes(ctx context.Context) error {
	for name, ix := range map[string]indexer{
		collectionUsers:    r.Users,
		collectionDealers:  r.Dealers,
		collectionVehicles: r.Vehicles,
		collectionLeads:    r.Leads,
		collectionSourcing: r.Sourcing,
		collectionExpenses: r.Expenses,
	} {
		if err := ix.EnsureIndexes(ctx); err != nil {
			return fmt.Errorf("indexes %s: %w", name, err)
		}
	}
	return nil
}
