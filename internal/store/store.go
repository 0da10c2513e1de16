package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrInvalidID   = errors.New("invalid identifier") // 400
	ErrNotFound    = errors.New("not found")          // 404
	ErrUnavailable = errors.New("store unavailable")  // 500
)

// Store is a document store over named collections.
//
// Documents are written as structs carrying `json` and `bson` tags with the
// identifier under `json:"id" bson:"_id,omitempty"`; reads decode into the
// same shape with the identifier rendered as a hex string.
type Store interface {
	Create(ctx context.Context, collection string, doc any) (string, error)
	Find(ctx context.Context, collection, id string, out any) error
	// Query decodes matching documents, in insertion order, into out (a pointer to a slice).
	Query(ctx context.Context, collection string, filter Filter, out any) error
	Count(ctx context.Context, collection string) (int64, error)
	InsertMany(ctx context.Context, collection string, docs []any) ([]string, error)
	Collections(ctx context.Context) ([]string, error)
	Name() string
}

// Filter combines exact field matches with an optional case-insensitive
// literal substring search over TextFields.
type Filter struct {
	Equals     map[string]string
	Text       string
	TextFields []string
}

func NewID() string {
	return primitive.NewObjectID().Hex()
}

func ParseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return oid, nil
}
