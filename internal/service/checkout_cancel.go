package service

import (
	"context"
	"errors"

	"github.com/az9589317-spec/artghar/internal/repository"
)

// CancelCheckout abandons a session the buyer backed out of. Only sessions
// still waiting for payment can be cancelled.
func (s *CheckoutService) CancelCheckout(ctx context.Context, buyerID, checkoutID string) error {
	session, err := s.GetSession(ctx, buyerID, checkoutID)
	if err != nil {
		return err
	}

	err = s.sessions.MarkCancelled(ctx, session.ID)
	if errors.Is(err, repository.ErrStateConflict) {
		return ErrIllegalTransition
	}
	if err != nil {
		return err
	}

	s.logger.Info().Str("checkout_id", session.ID).Msg("checkout cancelled")
	return nil
}
