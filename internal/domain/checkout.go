package domain

import (
	"time"
)

type CheckoutStatus string

const (
	CheckoutStatusInitiated       CheckoutStatus = "INITIATED"
	CheckoutStatusAwaitingPayment CheckoutStatus = "AWAITING_PAYMENT"
	CheckoutStatusPaymentVerified CheckoutStatus = "PAYMENT_VERIFIED"
	CheckoutStatusCompleted       CheckoutStatus = "COMPLETED"
	CheckoutStatusFailed          CheckoutStatus = "FAILED"
	CheckoutStatusCancelled       CheckoutStatus = "CANCELLED"
)

func (s CheckoutStatus) IsTerminal() bool {
	return s == CheckoutStatusCompleted || s == CheckoutStatusFailed || s == CheckoutStatusCancelled
}

// String representation (for logging)
func (s CheckoutStatus) String() string {
	return string(s)
}

// checkoutTransitions is the attempt state machine. PAYMENT_VERIFIED has no
// arc to FAILED: once money has moved the session must stay recoverable until
// an order document exists.
var checkoutTransitions = map[CheckoutStatus][]CheckoutStatus{
	CheckoutStatusInitiated:       {CheckoutStatusAwaitingPayment, CheckoutStatusFailed},
	CheckoutStatusAwaitingPayment: {CheckoutStatusPaymentVerified, CheckoutStatusFailed, CheckoutStatusCancelled},
	CheckoutStatusPaymentVerified: {CheckoutStatusCompleted},
}

func CanTransitionTo(from, to CheckoutStatus) bool {
	for _, allowed := range checkoutTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ShippingCost is the flat shipping charge added to every order.
const ShippingCost Paise = 4000 // Rs 40.00

const Currency = "INR"

type CartSnapshotItem struct {
	ProductID string `bson:"product_id" json:"product_id"`
	Name      string `bson:"name" json:"name"`
	Image     string `bson:"image" json:"image"`
	Quantity  int    `bson:"quantity" json:"quantity"`
	UnitPrice Paise  `bson:"unit_price" json:"unit_price"`
	Subtotal  Paise  `bson:"subtotal" json:"subtotal"`
}

// CartSnapshot is the cart state frozen at checkout time. Prices are the ones
// captured when the items were added, not re-read from the catalog.
type CartSnapshot struct {
	Items        []CartSnapshotItem `bson:"items" json:"items"`
	Subtotal     Paise              `bson:"subtotal" json:"subtotal"`
	ShippingCost Paise              `bson:"shipping_cost" json:"shipping_cost"`
	Total        Paise              `bson:"total" json:"total"`
	Currency     string             `bson:"currency" json:"currency"`
	CapturedAt   time.Time          `bson:"captured_at" json:"captured_at"`
}

func SnapshotCart(c *Cart) *CartSnapshot {
	snapshot := &CartSnapshot{
		Items:        make([]CartSnapshotItem, 0, len(c.Items)),
		ShippingCost: ShippingCost,
		Currency:     Currency,
		CapturedAt:   time.Now(),
	}
	for _, item := range c.Items {
		lineSubtotal := item.UnitPrice * Paise(item.Quantity)
		snapshot.Items = append(snapshot.Items, CartSnapshotItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Image:     item.Image,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  lineSubtotal,
		})
		snapshot.Subtotal += lineSubtotal
	}
	snapshot.Total = snapshot.Subtotal + snapshot.ShippingCost
	return snapshot
}

// CheckoutSession is the server-side record of one checkout attempt.
type CheckoutSession struct {
	ID             string           `bson:"_id" json:"id"`
	BuyerID        string           `bson:"buyer_id" json:"buyer_id"`
	IdempotencyKey string           `bson:"idempotency_key,omitempty" json:"-"`
	Status         CheckoutStatus   `bson:"status" json:"status"`
	Snapshot       CartSnapshot     `bson:"snapshot" json:"snapshot"`
	GatewayOrderID string           `bson:"gateway_order_id,omitempty" json:"gateway_order_id,omitempty"`
	PaymentID      string           `bson:"payment_id,omitempty" json:"-"`
	Shipping       *ShippingAddress `bson:"shipping,omitempty" json:"-"`
	OrderID        string           `bson:"order_id,omitempty" json:"order_id,omitempty"`
	FailureReason  string           `bson:"failure_reason,omitempty" json:"-"`
	CreatedAt      time.Time        `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time        `bson:"updated_at" json:"updated_at"`
}
