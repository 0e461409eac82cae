// Package services holds the per-entity business logic on top of MongoDB.
package services

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrNotFound signals a missing document; controllers answer {success:false}.
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
	ErrInvalid  = errors.New("invalid request")
)

// ErrUnauthorized covers bad credentials and disabled accounts.
var ErrUnauthorized = errors.New("unauthorized")

// parseID converts a hex id, reporting malformed ids as ErrNotFound since no
// document can carry them.
func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: id %q", ErrNotFound, id)
	}
	return oid, nil
}

// notFound maps mongo.ErrNoDocuments to ErrNotFound and leaves other errors untouched.
func notFound(err error, what string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%w: %s", ErrNotFound, what)
	}
	return err
}

// duplicate maps duplicate key violations to ErrConflict.
func duplicate(err error, what string) error {
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %s already exists", ErrConflict, what)
	}
	return err
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
