package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/az9589317-spec/artghar/internal/domain"
	"github.com/az9589317-spec/artghar/internal/repository"
)

type OrderService struct {
	repo   repository.OrderRepository
	logger zerolog.Logger
}

func NewOrderService(repo repository.OrderRepository, logger zerolog.Logger) *OrderService {
	return &OrderService{
		repo:   repo,
		logger: logger.With().Str("component", "order_service").Logger(),
	}
}

func (s *OrderService) ListByBuyer(ctx context.Context, buyerID string) ([]domain.Order, error) {
	return s.repo.ListByBuyer(ctx, buyerID)
}

// GetForBuyer returns the order only when it belongs to the requesting buyer.
// Others get ErrOrderNotFound rather than a hint that the id exists.
func (s *OrderService) GetForBuyer(ctx context.Context, buyerID, orderID string) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.BuyerID != buyerID {
		return nil, repository.ErrOrderNotFound
	}
	return order, nil
}

func (s *OrderService) ListAll(ctx context.Context) ([]domain.Order, error) {
	return s.repo.List(ctx)
}

// UpdateStatus advances an order along its fulfilment lifecycle. The target
// status must be reachable from the order's current one.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID string, to domain.OrderStatus) (*domain.Order, error) {
	if !to.IsValid() {
		return nil, domain.ErrIllegalTransition
	}

	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !order.Status.CanTransitionTo(to) {
		return nil, domain.ErrIllegalTransition
	}

	err = s.repo.UpdateStatus(ctx, orderID, order.Status, to)
	if errors.Is(err, repository.ErrStateConflict) {
		// someone else moved the order first
		return nil, domain.ErrIllegalTransition
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("order_id", orderID).
		Str("from", string(order.Status)).
		Str("to", string(to)).
		Msg("order status updated")

	order.Status = to
	return order, nil
}
