package service

import (
	"context"
	"time"
)

// RecoverStuckSessions retries the order write for sessions whose payment was
// verified but whose confirmation never finished. Returns how many sessions
// were settled.
func (s *CheckoutService) RecoverStuckSessions(ctx context.Context, olderThan time.Duration, limit int) (int, error) {
	stuck, err := s.sessions.FindStuck(ctx, olderThan, limit)
	if err != nil {
		return 0, err
	}

	recovered := 0
	for _, session := range stuck {
		order, err := s.placeOrder(ctx, session)
		if err != nil {
			s.logger.Error().Err(err).Str("checkout_id", session.ID).Msg("stuck session recovery failed")
			continue
		}
		s.logger.Info().
			Str("checkout_id", session.ID).
			Str("order_id", order.ID).
			Msg("recovered stuck checkout session")
		recovered++
	}
	return recovered, nil
}
