package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Skotchmaster/buildmart/internal/models"
	"github.com/Skotchmaster/buildmart/internal/store"
	"github.com/Skotchmaster/buildmart/internal/validation"
)

var productTextFields = []string{"title", "description", "category"}

type CatalogService struct {
	Store     store.Store
	Validator *validation.Validator
}

// ListProducts never fails on an unreachable store; it returns an empty list instead.
func (s *CatalogService) ListProducts(ctx context.Context, category, q string) ([]models.Product, error) {
	filter := store.Filter{Text: q, TextFields: productTextFields}
	if category != "" {
		filter.Equals = map[string]string{"category": category}
	}

	var items []models.Product
	if err := s.Store.Query(ctx, models.ProductCollection, filter, &items); err != nil {
		if errors.Is(err, store.ErrUnavailable) {
			return []models.Product{}, nil
		}
		return nil, fmt.Errorf("list products: %w", err)
	}
	if items == nil {
		items = []models.Product{}
	}
	return items, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var p models.Product
	if err := s.Store.Find(ctx, models.ProductCollection, id, &p); err != nil {
		return nil, fmt.Errorf("get product %q: %w", id, err)
	}
	return &p, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, body []byte) (*models.Product, error) {
	p, err := s.Validator.Product(body)
	if err != nil {
		return nil, err
	}

	id, err := s.Store.Create(ctx, models.ProductCollection, p)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return s.GetProduct(ctx, id)
}

// SeedProducts fills an empty catalogue with SampleProducts and reports how many were inserted.
func (s *CatalogService) SeedProducts(ctx context.Context) (int, error) {
	n, err := s.Store.Count(ctx, models.ProductCollection)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	if n > 0 {
		return 0, nil
	}

	samples := SampleProducts()
	docs := make([]any, 0, len(samples))
	for _, p := range samples {
		docs = append(docs, p)
	}
	ids, err := s.Store.InsertMany(ctx, models.ProductCollection, docs)
	if err != nil {
		return 0, fmt.Errorf("seed products: %w", err)
	}
	return len(ids), nil
}
