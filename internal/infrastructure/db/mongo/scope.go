package mongo

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dealerhub/dealership-system/internal/core/domain"
	"github.com/dealerhub/dealership-system/internal/core/ports"
)

const fieldDealerID = "dealer_id"

// scoped returns a copy of filter constrained to dealerID. A dealer_id already
// present in filter is overwritten. An empty dealerID is refused so that a
// missing scope can never turn into an unscoped query.
func scoped(dealerID string, filter bson.M) (bson.M, error) {
	if dealerID == "" {
		return nil, fmt.Errorf("unscoped query: %w", domain.ErrUnauthorized)
	}
	out := make(bson.M, len(filter)+1)
	for k, v := range filter {
		out[k] = v
	}
	out[fieldDealerID] = dealerID
	return out, nil
}

// byID is the scoped filter for a single row.
func byID(dealerID, id string) (bson.M, error) {
	return scoped(dealerID, bson.M{"_id": id})
}

// translate maps driver errors to domain errors. notFound is returned for
// ErrNoDocuments, which is also what a row of another dealer looks like.
func translate(err, notFound error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return notFound
	case mongo.IsDuplicateKeyError(err):
		return domain.ErrConflict
	}
	return err
}

// pageOptions applies paging and a newest-first sort.
func pageOptions(p ports.PageRequest) *options.FindOptions {
	p = p.Normalize()
	return options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetSkip(p.Skip()).
		SetLimit(int64(p.Limit))
}

var returnAfter = options.FindOneAndUpdate().SetReturnDocument(options.After)
