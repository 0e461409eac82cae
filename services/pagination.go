package services

import (
	"context"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storeadmin-backend/models"
)

const (
	DefaultPage  int64 = 1
	DefaultLimit int64 = 10
)

// Pagination is a page/limit pair. No upper bound is applied to Limit; callers
// that expose it publicly are responsible for bounding it.
type Pagination struct {
	Page  int64
	Limit int64
}

// NewPagination fills zero values with defaults. A non-positive page is read as
// the first page so the computed skip is never negative.
func NewPagination(page, limit int64) Pagination {
	if page <= 0 {
		page = DefaultPage
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return Pagination{Page: page, Limit: limit}
}

// Skip is the number of documents before the current page.
func (p Pagination) Skip() int64 {
	return (p.Page - 1) * p.Limit
}

// paginate runs a sorted find for one page plus a count under the same filter.
func paginate[T any](ctx context.Context, coll *mongo.Collection, filter bson.M, sort bson.D, p Pagination) (*models.Page[T], error) {
	opts := options.Find().
		SetSort(sort).
		SetSkip(p.Skip()).
		SetLimit(p.Limit)

	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]T, 0)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}

	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &models.Page[T]{Items: items, Total: total, Page: p.Page, Limit: p.Limit}, nil
}

// findAll decodes every document matching filter.
func findAll[T any](ctx context.Context, coll *mongo.Collection, filter interface{}, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]T, 0)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// findByID decodes the document with the given hex id.
func findByID[T any](ctx context.Context, coll *mongo.Collection, id, what string) (*T, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var out T
	if err := coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&out); err != nil {
		return nil, notFound(err, what)
	}
	return &out, nil
}

// deleteByID removes one document by hex id.
func deleteByID(ctx context.Context, coll *mongo.Collection, id, what string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	res, err := coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return notFound(mongo.ErrNoDocuments, what)
	}
	return nil
}

// toggleField flips a boolean field atomically and returns the updated document.
func toggleField[T any](ctx context.Context, coll *mongo.Collection, id, field, what string) (*T, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return toggleWhere[T](ctx, coll, bson.M{"_id": oid}, field, what)
}

// toggleWhere is toggleField for an arbitrary single-document filter.
func toggleWhere[T any](ctx context.Context, coll *mongo.Collection, filter bson.M, field, what string) (*T, error) {
	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: field, Value: bson.D{{Key: "$not", Value: bson.A{"$" + field}}}},
			{Key: "updatedAt", Value: "$$NOW"},
		}}},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var out T
	if err := coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&out); err != nil {
		return nil, notFound(err, what)
	}
	return &out, nil
}

// updateByID applies a $set and returns the updated document.
func updateByID[T any](ctx context.Context, coll *mongo.Collection, id string, set bson.M, what string) (*T, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return updateWhere[T](ctx, coll, bson.M{"_id": oid}, set, what)
}

func updateWhere[T any](ctx context.Context, coll *mongo.Collection, filter, set bson.M, what string) (*T, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var out T
	err := coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&out)
	if err != nil {
		return nil, duplicate(notFound(err, what), what)
	}
	return &out, nil
}

// regexFilter builds a case-insensitive literal substring match on q.
func regexFilter(q string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(strings.TrimSpace(q)), "$options": "i"}
}

// findOneAndUpsert returns options that upsert and return the new document.
func findOneAndUpsert() *options.FindOneAndUpdateOptions {
	return options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
}
