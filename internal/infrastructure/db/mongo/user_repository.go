package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dealerhub/dealership-system/internal/core/domain"
)

const collectionUsers = "users"

// UserRepository stores staff accounts. It also serves as the ProfileStore of
// the identity resolver.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var u domain.User
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&u); err != nil {
		return nil, translate(err, domain.ErrUserNotFound)
	}
	return &u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, dealerID, id string) (*domain.User, error) {
	filter, err := byID(dealerID, id)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var u domain.User
	if err := r.col.FindOne(ctx, filter).Decode(&u); err != nil {
		return nil, translate(err, domain.ErrUserNotFound)
	}
	return &u, nil
}

func (r *UserRepository) List(ctx context.Context, dealerID string) ([]*domain.User, error) {
	filter, err := scoped(dealerID, bson.M{})
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	users := []*domain.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) UpdateRole(ctx context.Context, dealerID, id string, role domain.Role) error {
	return r.set(ctx, dealerID, id, bson.M{"role": role})
}

func (r *UserRepository) SetActive(ctx context.Context, dealerID, id string, active bool) error {
	return r.set(ctx, dealerID, id, bson.M{"is_active": active})
}

func (r *UserRepository) set(ctx context.Context, dealerID, id string, fields bson.M) error {
	filter, err := byID(dealerID, id)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	fields["updated_at"] = time.Now().UTC()
	res, err := r.col.UpdateOne(ctx, filter, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// LookupProfile returns the authorization profile of userID across dealers.
func (r *UserRepository) LookupProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var u domain.User
	opts := options.FindOne().SetProjection(bson.M{"dealer_id": 1, "role": 1, "is_active": 1})
	if err := r.col.FindOne(ctx, bson.M{"_id": userID}, opts).Decode(&u); err != nil {
		return nil, translate(err, domain.ErrUserNotFound)
	}
	return &domain.Profile{ID: u.ID, DealerID: u.DealerID, Role: u.Role, IsActive: u.IsActive}, nil
}

func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "dealer_id", Value: 1}, {Key: "name", Value: 1}}},
	})
	return err
}
