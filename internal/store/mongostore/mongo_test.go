package mongostore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Skotchmaster/buildmart/internal/models"
	"github.com/Skotchmaster/buildmart/internal/store"
)

func TestBuildFilter_EqualsOnly(t *testing.T) {
	t.Parallel()

	got := BuildFilter(store.Filter{Equals: map[string]string{"category": "Steel"}})
	assert.Equal(t, bson.M{"category": "Steel"}, got)
}

func TestBuildFilter_TextIsQuotedAndCaseInsensitive(t *testing.T) {
	t.Parallel()

	got := BuildFilter(store.Filter{
		Text:       "m25 (ready.mix)*",
		TextFields: []string{"title", "description", "category"},
	})

	or, ok := got["$or"].(bson.A)
	require.True(t, ok)
	require.Len(t, or, 3)
	want := primitive.Regex{Pattern: `m25 \(ready\.mix\)\*`, Options: "i"}
	assert.Equal(t, bson.M{"title": want}, or[0])
	assert.Equal(t, bson.M{"description": want}, or[1])
	assert.Equal(t, bson.M{"category": want}, or[2])
}

func TestBuildFilter_EmptyTextIgnored(t *testing.T) {
	t.Parallel()

	got := BuildFilter(store.Filter{TextFields: []string{"title"}})
	assert.Empty(t, got)
}

func TestWithID_PutsIDFirstAndDropsClientID(t *testing.T) {
	t.Parallel()

	oid := primitive.NewObjectID()
	desc := "M25"
	d, err := withID(models.Product{ID: "ignored", Title: "Concrete", Description: &desc, Price: 109, Category: "Concrete", InStock: true}, oid)
	require.NoError(t, err)

	require.NotEmpty(t, d)
	assert.Equal(t, "_id", d[0].Key)
	assert.Equal(t, oid, d[0].Value)

	m := d.Map()
	assert.Equal(t, "Concrete", m["title"])
	assert.Equal(t, "M25", m["description"])
	assert.Equal(t, true, m["in_stock"])
	ids := 0
	for _, e := range d {
		if e.Key == "_id" {
			ids++
		}
	}
	assert.Equal(t, 1, ids)
}

func TestClassify(t *testing.T) {
	t.Parallel()

	err := classify("insert", context.DeadlineExceeded)
	assert.ErrorIs(t, err, store.ErrUnavailable)

	err = classify("insert", mongo.ErrClientDisconnected)
	assert.ErrorIs(t, err, store.ErrUnavailable)

	plain := errors.New("duplicate key")
	err = classify("insert", plain)
	assert.ErrorIs(t, err, plain)
	assert.NotErrorIs(t, err, store.ErrUnavailable)
}
