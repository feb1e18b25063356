package domain

import (
	"errors"
	"time"
)

// MaxItemQuantity caps a single cart line. The bound lives here so every
// caller gets the same invariant, not just the quantity-selector UI.
const MaxItemQuantity = 99

var ErrItemNotInCart = errors.New("item not found in cart")

type CartItem struct {
	ProductID string    `bson:"product_id" json:"product_id"`
	Name      string    `bson:"name" json:"name"`
	Image     string    `bson:"image" json:"image"`
	UnitPrice Paise     `bson:"unit_price" json:"unit_price"`
	Quantity  int       `bson:"quantity" json:"quantity"`
	AddedAt   time.Time `bson:"added_at" json:"added_at"`
}

type Cart struct {
	ID        string     `bson:"_id,omitempty" json:"-"`
	BuyerID   string     `bson:"buyer_id" json:"buyer_id"`
	Items     []CartItem `bson:"items" json:"items"`
	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updated_at"`
}

func NewCart(buyerID string) *Cart {
	now := time.Now()
	return &Cart{
		BuyerID:   buyerID,
		Items:     nil,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AddItem appends a new line with quantity 1, or bumps the quantity of an
// existing line with the same product id. The price captured here is trusted
// for the rest of the session.
func (c *Cart) AddItem(item CartItem) {
	for i := range c.Items {
		if c.Items[i].ProductID == item.ProductID {
			if c.Items[i].Quantity < MaxItemQuantity {
				c.Items[i].Quantity++
			}
			c.UpdatedAt = time.Now()
			return
		}
	}
	item.Quantity = 1
	item.AddedAt = time.Now()
	c.Items = append(c.Items, item)
	c.UpdatedAt = item.AddedAt
}

// UpdateQuantity sets a line's quantity. A quantity of zero or less removes
// the line; anything above MaxItemQuantity is clamped to it.
func (c *Cart) UpdateQuantity(productID string, quantity int) error {
	for i := range c.Items {
		if c.Items[i].ProductID != productID {
			continue
		}
		if quantity <= 0 {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
		} else {
			if quantity > MaxItemQuantity {
				quantity = MaxItemQuantity
			}
			c.Items[i].Quantity = quantity
		}
		c.UpdatedAt = time.Now()
		return nil
	}
	return ErrItemNotInCart
}

func (c *Cart) RemoveItem(productID string) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.UpdatedAt = time.Now()
			return
		}
	}
}

// Clear empties the cart. Calling it on an already-empty cart is a no-op.
func (c *Cart) Clear() {
	c.Items = nil
	c.UpdatedAt = time.Now()
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func (c *Cart) TotalItems() int {
	var n int
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

func (c *Cart) Subtotal() Paise {
	var sum Paise
	for _, item := range c.Items {
		sum += item.UnitPrice * Paise(item.Quantity)
	}
	return sum
}
