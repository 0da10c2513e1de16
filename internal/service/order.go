package service

import (
	"context"
	"fmt"

	"github.com/Skotchmaster/buildmart/internal/models"
	"github.com/Skotchmaster/buildmart/internal/pricing"
	"github.com/Skotchmaster/buildmart/internal/store"
	"github.com/Skotchmaster/buildmart/internal/validation"
)

type OrderService struct {
	Store     store.Store
	Validator *validation.Validator
}

// CreateOrder stores the order with a server-computed subtotal; any client subtotal is discarded.
func (s *OrderService) CreateOrder(ctx context.Context, body []byte) (*models.Order, error) {
	order, err := s.Validator.Order(body)
	if err != nil {
		return nil, err
	}
	order.Subtotal = pricing.Subtotal(order.Items)

	id, err := s.Store.Create(ctx, models.OrderCollection, order)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	var created models.Order
	if err := s.Store.Find(ctx, models.OrderCollection, id, &created); err != nil {
		return nil, fmt.Errorf("get order %q: %w", id, err)
	}
	if created.Items == nil {
		created.Items = []models.OrderItem{}
	}
	return &created, nil
}
