package mongostore

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/Skotchmaster/buildmart/internal/store"
)

type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

func Open(ctx context.Context, uri, database string) (*Store, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return &Store{client: client, db: client.Database(database)}, nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) Name() string {
	return s.db.Name()
}

func (s *Store) Create(ctx context.Context, collection string, doc any) (string, error) {
	oid := primitive.NewObjectID()
	d, err := withID(doc, oid)
	if err != nil {
		return "", err
	}
	if _, err := s.db.Collection(collection).InsertOne(ctx, d); err != nil {
		return "", classify("insert", err)
	}
	return oid.Hex(), nil
}

func (s *Store) Find(ctx context.Context, collection, id string, out any) error {
	oid, err := store.ParseID(id)
	if err != nil {
		return err
	}
	err = s.db.Collection(collection).FindOne(ctx, bson.M{"_id": oid}).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return store.ErrNotFound
	}
	if err != nil {
		return classify("find", err)
	}
	return nil
}

func (s *Store) Query(ctx context.Context, collection string, filter store.Filter, out any) error {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := s.db.Collection(collection).Find(ctx, BuildFilter(filter), opts)
	if err != nil {
		return classify("query", err)
	}
	if err := cur.All(ctx, out); err != nil {
		return classify("decode", err)
	}
	return nil
}

func (s *Store) Count(ctx context.Context, collection string) (int64, error) {
	n, err := s.db.Collection(collection).CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, classify("count", err)
	}
	return n, nil
}

func (s *Store) InsertMany(ctx context.Context, collection string, docs []any) ([]string, error) {
	if len(docs) == 0 {
		return []string{}, nil
	}
	batch := make([]any, 0, len(docs))
	ids := make([]string, 0, len(docs))
	for _, doc := range docs {
		oid := primitive.NewObjectID()
		d, err := withID(doc, oid)
		if err != nil {
			return nil, err
		}
		batch = append(batch, d)
		ids = append(ids, oid.Hex())
	}
	if _, err := s.db.Collection(collection).InsertMany(ctx, batch); err != nil {
		return nil, classify("insert many", err)
	}
	return ids, nil
}

func (s *Store) Collections(ctx context.Context) ([]string, error) {
	names, err := s.db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, classify("list collections", err)
	}
	return names, nil
}

// BuildFilter quotes the search text so it is matched literally, never as a pattern.
func BuildFilter(f store.Filter) bson.M {
	m := bson.M{}
	for k, v := range f.Equals {
		m[k] = v
	}
	if f.Text != "" && len(f.TextFields) > 0 {
		pattern := regexp.QuoteMeta(f.Text)
		or := make(bson.A, 0, len(f.TextFields))
		for _, field := range f.TextFields {
			or = append(or, bson.M{field: primitive.Regex{Pattern: pattern, Options: "i"}})
		}
		m["$or"] = or
	}
	return m
}

// withID re-encodes doc as an ordered document whose first element is the given _id.
func withID(doc any, oid primitive.ObjectID) (bson.D, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	var fields bson.D
	if err := bson.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	out := make(bson.D, 0, len(fields)+1)
	out = append(out, bson.E{Key: "_id", Value: oid})
	for _, e := range fields {
		if e.Key != "_id" {
			out = append(out, e)
		}
	}
	return out, nil
}

func classify(op string, err error) error {
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) ||
		errors.Is(err, mongo.ErrClientDisconnected) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w: %v", op, store.ErrUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
