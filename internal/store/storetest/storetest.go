// Package storetest holds behaviour checks shared by every store.Store driver.
package storetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/buildmart/internal/models"
	"github.com/Skotchmaster/buildmart/internal/store"
)

func strPtr(s string) *string { return &s }

// Run exercises s, which must start with empty collections.
func Run(t *testing.T, newStore func(t *testing.T) store.Store) {
	t.Run("CreateThenFind", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		in := models.Product{
			Title:       "Ready-Mix Concrete (M25)",
			Description: strPtr("Premium grade"),
			Price:       109,
			Category:    "Concrete",
			InStock:     true,
		}
		id, err := s.Create(ctx, models.ProductCollection, in)
		require.NoError(t, err)
		require.Len(t, id, 24)

		var got models.Product
		require.NoError(t, s.Find(ctx, models.ProductCollection, id, &got))
		assert.Equal(t, id, got.ID)
		assert.Equal(t, in.Title, got.Title)
		require.NotNil(t, got.Description)
		assert.Equal(t, *in.Description, *got.Description)
		assert.Nil(t, got.Image)
		assert.Equal(t, in.Price, got.Price)
		assert.Equal(t, in.Category, got.Category)
		assert.True(t, got.InStock)
	})

	t.Run("CreateIgnoresClientID", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		id, err := s.Create(ctx, models.ProductCollection, models.Product{ID: "client-chosen", Title: "a", Category: "b"})
		require.NoError(t, err)
		assert.NotEqual(t, "client-chosen", id)

		var got models.Product
		require.NoError(t, s.Find(ctx, models.ProductCollection, id, &got))
		assert.Equal(t, id, got.ID)
	})

	t.Run("NestedDocuments", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		in := models.Order{
			CustomerName:    "Ada",
			CustomerEmail:   "ada@example.com",
			ShippingAddress: "1 Main St",
			Items: []models.OrderItem{
				{ProductID: store.NewID(), Title: "Rebar", Price: 2.2, Quantity: 10},
			},
			Subtotal: 22,
		}
		id, err := s.Create(ctx, models.OrderCollection, in)
		require.NoError(t, err)

		var got models.Order
		require.NoError(t, s.Find(ctx, models.OrderCollection, id, &got))
		assert.Equal(t, id, got.ID)
		assert.Equal(t, in.Items, got.Items)
		assert.Equal(t, 22.0, got.Subtotal)
		assert.Nil(t, got.CustomerPhone)
	})

	t.Run("FindInvalidAndMissing", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		var got models.Product
		assert.ErrorIs(t, s.Find(ctx, models.ProductCollection, "not-an-id", &got), store.ErrInvalidID)
		assert.ErrorIs(t, s.Find(ctx, models.ProductCollection, store.NewID(), &got), store.ErrNotFound)
	})

	t.Run("FindIsScopedToCollection", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		id, err := s.Create(ctx, models.ProductCollection, models.Product{Title: "a", Category: "b"})
		require.NoError(t, err)

		var got models.Order
		assert.ErrorIs(t, s.Find(ctx, models.OrderCollection, id, &got), store.ErrNotFound)
	})

	t.Run("QueryFilters", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		docs := []any{
			models.Product{Title: "TMT Steel Rebars 12mm", Description: strPtr("corrosion resistant"), Price: 2.2, Category: "Steel", InStock: true},
			models.Product{Title: "Portland Cement", Description: strPtr("Low heat (PPC)"), Price: 7.5, Category: "Cement", InStock: true},
			models.Product{Title: "Crushed Stone", Price: 35, Category: "Aggregates", InStock: true},
		}
		ids, err := s.InsertMany(ctx, models.ProductCollection, docs)
		require.NoError(t, err)
		require.Len(t, ids, 3)

		text := []string{"title", "description", "category"}

		var all []models.Product
		require.NoError(t, s.Query(ctx, models.ProductCollection, store.Filter{}, &all))
		require.Len(t, all, 3)
		assert.Equal(t, ids, []string{all[0].ID, all[1].ID, all[2].ID})

		var steel []models.Product
		require.NoError(t, s.Query(ctx, models.ProductCollection, store.Filter{Equals: map[string]string{"category": "Steel"}}, &steel))
		require.Len(t, steel, 1)
		assert.Equal(t, ids[0], steel[0].ID)

		var byDesc []models.Product
		require.NoError(t, s.Query(ctx, models.ProductCollection, store.Filter{Text: "CORROSION", TextFields: text}, &byDesc))
		require.Len(t, byDesc, 1)
		assert.Equal(t, ids[0], byDesc[0].ID)

		var byCategory []models.Product
		require.NoError(t, s.Query(ctx, models.ProductCollection, store.Filter{Text: "aggreg", TextFields: text}, &byCategory))
		require.Len(t, byCategory, 1)
		assert.Equal(t, ids[2], byCategory[0].ID)

		var literal []models.Product
		require.NoError(t, s.Query(ctx, models.ProductCollection, store.Filter{Text: "(ppc)", TextFields: text}, &literal))
		require.Len(t, literal, 1)
		assert.Equal(t, ids[1], literal[0].ID)

		var pattern []models.Product
		require.NoError(t, s.Query(ctx, models.ProductCollection, store.Filter{Text: ".*", TextFields: text}, &pattern))
		assert.Empty(t, pattern)

		var combined []models.Product
		require.NoError(t, s.Query(ctx, models.ProductCollection, store.Filter{
			Equals: map[string]string{"category": "Cement"}, Text: "steel", TextFields: text,
		}, &combined))
		assert.Empty(t, combined)
	})

	t.Run("CountAndInsertMany", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		n, err := s.Count(ctx, models.ProductCollection)
		require.NoError(t, err)
		assert.Zero(t, n)

		ids, err := s.InsertMany(ctx, models.ProductCollection, []any{
			models.Product{Title: "a", Category: "x"},
			models.Product{Title: "b", Category: "y"},
		})
		require.NoError(t, err)
		require.Len(t, ids, 2)
		assert.NotEqual(t, ids[0], ids[1])

		n, err = s.Count(ctx, models.ProductCollection)
		require.NoError(t, err)
		assert.EqualValues(t, 2, n)

		n, err = s.Count(ctx, models.OrderCollection)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("Collections", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		_, err := s.Create(ctx, models.OrderCollection, models.Order{CustomerName: "Ada", Items: []models.OrderItem{}})
		require.NoError(t, err)

		names, err := s.Collections(ctx)
		require.NoError(t, err)
		assert.Contains(t, names, models.OrderCollection)
	})
}
