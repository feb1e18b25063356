package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/az9589317-spec/artghar/internal/domain"
	"github.com/az9589317-spec/artghar/internal/repository"
)

// ConfirmPayment verifies the gateway's payment signature and, if it checks
// out, records the order. Repeated confirmations of an already completed
// session return the existing order.
func (s *CheckoutService) ConfirmPayment(ctx context.Context, buyerID, checkoutID string, req *ConfirmPaymentRequest) (*domain.Order, error) {
	session, err := s.GetSession(ctx, buyerID, checkoutID)
	if err != nil {
		return nil, err
	}

	switch session.Status {
	case domain.CheckoutStatusAwaitingPayment:
		// the normal path, verified below
	case domain.CheckoutStatusCompleted:
		return s.orders.GetByID(ctx, session.OrderID)
	case domain.CheckoutStatusPaymentVerified:
		// a previous confirmation verified the payment but crashed before
		// the order write, resume from there
		return s.placeOrder(ctx, session)
	default:
		return nil, ErrIllegalTransition
	}

	if !s.gateway.VerifyPayment(session.GatewayOrderID, req.PaymentID, req.Signature) {
		s.logger.Warn().
			Str("checkout_id", session.ID).
			Str("gateway_order_id", session.GatewayOrderID).
			Msg("payment signature mismatch")
		if failErr := s.sessions.MarkFailed(ctx, session.ID, "signature verification failed"); failErr != nil {
			s.logger.Error().Err(failErr).Str("checkout_id", session.ID).Msg("failed to mark session failed")
		}
		return nil, ErrSignatureMismatch
	}

	err = s.sessions.SetPaymentVerified(ctx, session.ID, req.PaymentID, &req.Shipping)
	if errors.Is(err, repository.ErrStateConflict) {
		// lost a race with a concurrent confirmation, re-read and settle
		return s.ConfirmPayment(ctx, buyerID, checkoutID, req)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}
	session.Status = domain.CheckoutStatusPaymentVerified
	session.PaymentID = req.PaymentID
	session.Shipping = &req.Shipping

	order, err := s.placeOrder(ctx, session)
	if err != nil {
		// Payment is captured but the order write failed. The session stays
		// PAYMENT_VERIFIED and the recovery sweep retries it.
		s.logger.Error().Err(err).Str("checkout_id", session.ID).Msg("order placement failed after payment")
		return nil, err
	}

	s.logger.Info().
		Str("checkout_id", session.ID).
		Str("order_id", order.ID).
		Msg("payment confirmed and order placed")
	return order, nil
}
