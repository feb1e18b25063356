package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/az9589317-spec/artghar/internal/domain"
	"github.com/az9589317-spec/artghar/internal/gateway"
	"github.com/az9589317-spec/artghar/internal/repository"
)

// CartAccessor is the slice of the cart service the checkout flow needs.
type CartAccessor interface {
	GetCart(ctx context.Context, buyerID string) (*domain.Cart, error)
	ClearCart(ctx context.Context, buyerID string) error
}

var _ CartAccessor = (*CartService)(nil)

// PaymentIntent is what the storefront needs to open the payment widget.
type PaymentIntent struct {
	CheckoutID     string                `json:"checkout_id"`
	GatewayOrderID string                `json:"gateway_order_id"`
	Amount         domain.Paise          `json:"amount"`
	Currency       string                `json:"currency"`
	KeyID          string                `json:"key_id"`
	Status         domain.CheckoutStatus `json:"status"`
}

// ConfirmPaymentRequest carries the gateway callback fields the buyer's
// browser relays after a successful payment.
type ConfirmPaymentRequest struct {
	PaymentID string                 `json:"payment_id"`
	Signature string                 `json:"signature"`
	Shipping  domain.ShippingAddress `json:"shipping"`
}

type CheckoutService struct {
	sessions repository.CheckoutRepository
	orders   repository.OrderRepository
	outbox   repository.OutboxRepository
	carts    CartAccessor
	gateway  gateway.PaymentGateway
	logger   zerolog.Logger
}

func NewCheckoutService(
	sessions repository.CheckoutRepository,
	orders repository.OrderRepository,
	outbox repository.OutboxRepository,
	carts CartAccessor,
	pg gateway.PaymentGateway,
	logger zerolog.Logger,
) *CheckoutService {
	return &CheckoutService{
		sessions: sessions,
		orders:   orders,
		outbox:   outbox,
		carts:    carts,
		gateway:  pg,
		logger:   logger.With().Str("component", "checkout_service").Logger(),
	}
}

func (s *CheckoutService) GetSession(ctx context.Context, buyerID, checkoutID string) (*domain.CheckoutSession, error) {
	session, err := s.sessions.Get(ctx, checkoutID)
	if err != nil {
		return nil, err
	}
	if session.BuyerID != buyerID {
		return nil, ErrSessionNotOwned
	}
	return session, nil
}

// placeOrder turns a payment-verified session into an order document,
// publishes the notification event and completes the session. It is safe to
// call more than once for the same session: the unique index on the gateway
// order id collapses duplicate inserts into the already written order.
func (s *CheckoutService) placeOrder(ctx context.Context, session *domain.CheckoutSession) (*domain.Order, error) {
	var shipping domain.ShippingAddress
	if session.Shipping != nil {
		shipping = *session.Shipping
	}
	order, err := domain.NewOrder(session.BuyerID, &session.Snapshot, shipping, domain.PaymentDetails{
		Gateway:        "razorpay",
		GatewayOrderID: session.GatewayOrderID,
		PaymentID:      session.PaymentID,
	})
	if err != nil {
		return nil, fmt.Errorf("build order from session %s: %w", session.ID, err)
	}

	err = s.orders.Insert(ctx, order)
	if errors.Is(err, repository.ErrDuplicateOrder) {
		// A previous attempt already recorded this payment.
		existing, getErr := s.orders.GetByGatewayOrderID(ctx, session.GatewayOrderID)
		if getErr != nil {
			return nil, fmt.Errorf("fetch existing order for gateway order %s: %w", session.GatewayOrderID, getErr)
		}
		order = existing
	} else if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	} else {
		s.appendOrderPlacedEvent(ctx, order)
	}

	err = s.sessions.Complete(ctx, session.ID, order.ID)
	if err != nil && !errors.Is(err, repository.ErrStateConflict) {
		return nil, fmt.Errorf("complete session %s: %w", session.ID, err)
	}

	if err := s.carts.ClearCart(ctx, session.BuyerID); err != nil {
		s.logger.Warn().Err(err).Str("buyer_id", session.BuyerID).Msg("failed to clear cart after order")
	}

	return order, nil
}

func (s *CheckoutService) appendOrderPlacedEvent(ctx context.Context, order *domain.Order) {
	event := domain.NewOrderPlacedEvent(order)
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID).Msg("failed to marshal order event")
		return
	}

	err = s.outbox.Append(ctx, &repository.OutboxEvent{
		AggregateID: order.ID,
		EventType:   domain.EventTypeOrderPlaced,
		Payload:     payload,
		CreatedAt:   time.Now(),
	})
	if err != nil {
		// Notification delivery is best effort, the order itself stands.
		s.logger.Error().Err(err).Str("order_id", order.ID).Msg("failed to append outbox event")
	}
}
