package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/az9589317-spec/artghar/internal/domain"
	"github.com/az9589317-spec/artghar/internal/gateway"
	"github.com/az9589317-spec/artghar/internal/repository"
)

// InitiateCheckout freezes the buyer's cart into a checkout session and
// creates a matching payment order at the gateway. A repeated call with the
// same idempotency key returns the original session instead of charging twice.
func (s *CheckoutService) InitiateCheckout(ctx context.Context, buyerID, idempotencyKey string) (*PaymentIntent, error) {
	if idempotencyKey != "" {
		existing, err := s.sessions.GetByIdempotencyKey(ctx, buyerID, idempotencyKey)
		if err != nil && !errors.Is(err, repository.ErrSessionNotFound) {
			return nil, fmt.Errorf("failed to check idempotency: %w", err)
		}
		if existing != nil {
			s.logger.Info().
				Str("checkout_id", existing.ID).
				Str("status", existing.Status.String()).
				Msg("duplicate checkout request, returning existing session")
			return intentFromSession(existing, s.gateway.KeyID()), nil
		}
	}

	cart, err := s.carts.GetCart(ctx, buyerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	session := &domain.CheckoutSession{
		ID:             uuid.NewString(),
		BuyerID:        buyerID,
		IdempotencyKey: idempotencyKey,
		Status:         domain.CheckoutStatusInitiated,
		Snapshot:       *domain.SnapshotCart(cart),
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	paymentOrder, err := s.gateway.CreateOrder(ctx, session.Snapshot.Total, session.Snapshot.Currency, gateway.NewReceipt())
	if err != nil {
		s.logger.Error().Err(err).Str("checkout_id", session.ID).Msg("gateway order creation failed")
		if failErr := s.sessions.MarkFailed(ctx, session.ID, "gateway order creation failed"); failErr != nil {
			s.logger.Error().Err(failErr).Str("checkout_id", session.ID).Msg("failed to mark session failed")
		}
		return nil, ErrCheckoutUnavailable
	}

	if err := s.sessions.SetAwaitingPayment(ctx, session.ID, paymentOrder.ID); err != nil {
		return nil, fmt.Errorf("failed to attach gateway order: %w", err)
	}
	session.Status = domain.CheckoutStatusAwaitingPayment
	session.GatewayOrderID = paymentOrder.ID

	s.logger.Info().
		Str("checkout_id", session.ID).
		Str("gateway_order_id", paymentOrder.ID).
		Str("amount", session.Snapshot.Total.String()).
		Msg("checkout initiated")

	return intentFromSession(session, s.gateway.KeyID()), nil
}

func intentFromSession(session *domain.CheckoutSession, keyID string) *PaymentIntent {
	return &PaymentIntent{
		CheckoutID:     session.ID,
		GatewayOrderID: session.GatewayOrderID,
		Amount:         session.Snapshot.Total,
		Currency:       session.Snapshot.Currency,
		KeyID:          keyID,
		Status:         session.Status,
	}
}
