package domain

import (
	"errors"
	"time"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusCancelled  OrderStatus = "Cancelled"
)

// orderTransitions enforces the monotonic admin lifecycle server-side.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered},
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

var (
	ErrEmptyOrder        = errors.New("order has no products")
	ErrTotalMismatch     = errors.New("order total does not equal subtotal plus shipping")
	ErrIllegalTransition = errors.New("illegal order status transition")
)

type ShippingAddress struct {
	FirstName string `bson:"first_name" json:"first_name"`
	LastName  string `bson:"last_name" json:"last_name"`
	Email     string `bson:"email" json:"email"`
	Phone     string `bson:"phone" json:"phone"`
	Address   string `bson:"address" json:"address"`
	City      string `bson:"city" json:"city"`
	Zip       string `bson:"zip" json:"zip"`
}

type OrderItem struct {
	ProductID string `bson:"product_id" json:"product_id"`
	Name      string `bson:"name" json:"name"`
	Image     string `bson:"image" json:"image"`
	Quantity  int    `bson:"quantity" json:"quantity"`
	UnitPrice Paise  `bson:"unit_price" json:"unit_price"`
}

type PaymentDetails struct {
	Gateway        string `bson:"gateway" json:"gateway"`
	GatewayOrderID string `bson:"gateway_order_id" json:"gateway_order_id"`
	PaymentID      string `bson:"payment_id" json:"payment_id"`
}

// Order is immutable once written except for Status.
type Order struct {
	ID              string          `bson:"_id,omitempty" json:"id"`
	BuyerID         string          `bson:"buyer_id" json:"buyer_id"`
	Status          OrderStatus     `bson:"status" json:"status"`
	Products        []OrderItem     `bson:"products" json:"products"`
	ShippingAddress ShippingAddress `bson:"shipping_address" json:"shipping_address"`
	Subtotal        Paise           `bson:"subtotal" json:"subtotal"`
	ShippingCost    Paise           `bson:"shipping_cost" json:"shipping_cost"`
	Total           Paise           `bson:"total" json:"total"`
	PaymentDetails  PaymentDetails  `bson:"payment_details" json:"payment_details"`
	CreatedAt       time.Time       `bson:"created_at" json:"created_at"`
}

// NewOrder builds a Pending order from a checkout snapshot. The total is
// recomputed and checked so a drifted snapshot can never be persisted.
func NewOrder(buyerID string, snapshot *CartSnapshot, shipping ShippingAddress, payment PaymentDetails) (*Order, error) {
	if len(snapshot.Items) == 0 {
		return nil, ErrEmptyOrder
	}
	if snapshot.Total != snapshot.Subtotal+snapshot.ShippingCost {
		return nil, ErrTotalMismatch
	}

	products := make([]OrderItem, 0, len(snapshot.Items))
	for _, item := range snapshot.Items {
		products = append(products, OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Image:     item.Image,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	return &Order{
		BuyerID:         buyerID,
		Status:          OrderStatusPending,
		Products:        products,
		ShippingAddress: shipping,
		Subtotal:        snapshot.Subtotal,
		ShippingCost:    snapshot.ShippingCost,
		Total:           snapshot.Total,
		PaymentDetails:  payment,
		CreatedAt:       time.Now(),
	}, nil
}

// ShortID is the human-facing order reference used in notifications,
// the first seven characters of the id, uppercased.
func (o *Order) ShortID() string {
	id := o.ID
	if len(id) > 7 {
		id = id[:7]
	}
	out := []byte(id)
	for i, c := range out {
		if 'a' <= c && c <= 'z' {
			out[i] = c - 'a' + 'A'
		}
	}
	return string(out)
}
