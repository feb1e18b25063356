package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckoutStatus_Transitions(t *testing.T) {
	cases := []struct {
		from    CheckoutStatus
		to      CheckoutStatus
		allowed bool
	}{
		{CheckoutStatusInitiated, CheckoutStatusAwaitingPayment, true},
		{CheckoutStatusInitiated, CheckoutStatusFailed, true},
		{CheckoutStatusInitiated, CheckoutStatusCompleted, false},
		{CheckoutStatusAwaitingPayment, CheckoutStatusPaymentVerified, true},
		{CheckoutStatusAwaitingPayment, CheckoutStatusCancelled, true},
		{CheckoutStatusAwaitingPayment, CheckoutStatusFailed, true},
		{CheckoutStatusAwaitingPayment, CheckoutStatusCompleted, false},
		{CheckoutStatusPaymentVerified, CheckoutStatusCompleted, true},
		// money has moved, the session must stay recoverable
		{CheckoutStatusPaymentVerified, CheckoutStatusFailed, false},
		{CheckoutStatusPaymentVerified, CheckoutStatusCancelled, false},
		{CheckoutStatusCompleted, CheckoutStatusFailed, false},
		{CheckoutStatusCancelled, CheckoutStatusAwaitingPayment, false},
		{CheckoutStatusFailed, CheckoutStatusAwaitingPayment, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, CanTransitionTo(tc.from, tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestCheckoutStatus_IsTerminal(t *testing.T) {
	assert.True(t, CheckoutStatusCompleted.IsTerminal())
	assert.True(t, CheckoutStatusFailed.IsTerminal())
	assert.True(t, CheckoutStatusCancelled.IsTerminal())
	assert.False(t, CheckoutStatusInitiated.IsTerminal())
	assert.False(t, CheckoutStatusAwaitingPayment.IsTerminal())
	assert.False(t, CheckoutStatusPaymentVerified.IsTerminal())
}

func TestOrderStatus_Transitions(t *testing.T) {
	assert.True(t, OrderStatusPending.CanTransitionTo(OrderStatusProcessing))
	assert.True(t, OrderStatusPending.CanTransitionTo(OrderStatusCancelled))
	assert.True(t, OrderStatusProcessing.CanTransitionTo(OrderStatusShipped))
	assert.True(t, OrderStatusProcessing.CanTransitionTo(OrderStatusCancelled))
	assert.True(t, OrderStatusShipped.CanTransitionTo(OrderStatusDelivered))

	assert.False(t, OrderStatusPending.CanTransitionTo(OrderStatusShipped))
	assert.False(t, OrderStatusPending.CanTransitionTo(OrderStatusDelivered))
	assert.False(t, OrderStatusShipped.CanTransitionTo(OrderStatusCancelled))
	assert.False(t, OrderStatusDelivered.CanTransitionTo(OrderStatusPending))
	assert.False(t, OrderStatusCancelled.CanTransitionTo(OrderStatusProcessing))
}

func TestNewOrder_FromSnapshot(t *testing.T) {
	cart := NewCart("buyer-7")
	cart.AddItem(CartItem{ProductID: "p-1", Name: "Mug", UnitPrice: 4500})
	cart.AddItem(CartItem{ProductID: "p-1", Name: "Mug", UnitPrice: 4500})
	cart.AddItem(CartItem{ProductID: "p-2", Name: "Necklace", UnitPrice: 7500})
	snapshot := SnapshotCart(cart)

	order, err := NewOrder("buyer-7", snapshot,
		ShippingAddress{FirstName: "Asha", LastName: "Rao", Email: "asha@example.com"},
		PaymentDetails{Gateway: "razorpay", GatewayOrderID: "order_x1", PaymentID: "pay_y1"})

	require.NoError(t, err)
	assert.Equal(t, OrderStatusPending, order.Status)
	assert.Len(t, order.Products, 2)
	assert.Equal(t, Paise(16500), order.Subtotal)
	assert.Equal(t, Paise(20500), order.Total)
	assert.Equal(t, order.Subtotal+order.ShippingCost, order.Total)
	assert.Equal(t, "razorpay", order.PaymentDetails.Gateway)
	assert.False(t, order.CreatedAt.IsZero())
}

func TestNewOrder_RejectsEmptySnapshot(t *testing.T) {
	snapshot := SnapshotCart(NewCart("buyer-7"))

	_, err := NewOrder("buyer-7", snapshot, ShippingAddress{}, PaymentDetails{})

	assert.ErrorIs(t, err, ErrEmptyOrder)
}

func TestNewOrder_RejectsDriftedTotal(t *testing.T) {
	cart := NewCart("buyer-7")
	cart.AddItem(CartItem{ProductID: "p-1", UnitPrice: 4500})
	snapshot := SnapshotCart(cart)
	snapshot.Total += 1

	_, err := NewOrder("buyer-7", snapshot, ShippingAddress{}, PaymentDetails{})

	assert.ErrorIs(t, err, ErrTotalMismatch)
}

func TestOrder_ShortID(t *testing.T) {
	order := &Order{ID: "66f3a9c1d2e4b5a6f7081920"}
	assert.Equal(t, "66F3A9C", order.ShortID())

	short := &Order{ID: "abc"}
	assert.Equal(t, "ABC", short.ShortID())
}
