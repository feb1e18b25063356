package domain

import "time"

const EventTypeOrderPlaced = "order.placed"

// OrderPlacedEvent is the outbox payload published after a successful order
// write and consumed by the notification pipeline.
type OrderPlacedEvent struct {
	OrderID   string          `json:"order_id"`
	ShortID   string          `json:"short_id"`
	BuyerID   string          `json:"buyer_id"`
	Customer  string          `json:"customer"`
	Email     string          `json:"email"`
	Items     []OrderItem     `json:"items"`
	Shipping  ShippingAddress `json:"shipping"`
	Subtotal  Paise           `json:"subtotal"`
	Total     Paise           `json:"total"`
	PlacedAt  time.Time       `json:"placed_at"`
}

func NewOrderPlacedEvent(order *Order) OrderPlacedEvent {
	return OrderPlacedEvent{
		OrderID:  order.ID,
		ShortID:  order.ShortID(),
		BuyerID:  order.BuyerID,
		Customer: order.ShippingAddress.FirstName + " " + order.ShippingAddress.LastName,
		Email:    order.ShippingAddress.Email,
		Items:    order.Products,
		Shipping: order.ShippingAddress,
		Subtotal: order.Subtotal,
		Total:    order.Total,
		PlacedAt: order.CreatedAt,
	}
}
