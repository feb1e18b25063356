package repository

import (
	"context"
	"errors"
	"time"

	"github.com/az9589317-spec/artghar/internal/domain"
)

var (
	ErrCartNotFound    = errors.New("cart not found")
	ErrSessionNotFound = errors.New("checkout session not found")
	ErrOrderNotFound   = errors.New("order not found")
	ErrNotFound        = errors.New("not found")

	// ErrStateConflict means a guarded update matched no document because the
	// session or order was no longer in the expected state.
	ErrStateConflict = errors.New("state conflict")

	// ErrDuplicateOrder means an order for the same gateway order id already
	// exists. Callers treat it as success and fetch the existing document.
	ErrDuplicateOrder = errors.New("order already recorded for gateway order id")
)

// CartRepository is a whole-cart get/put store. Mutations happen on the
// aggregate in memory; persistence is a single upsert keyed by buyer id.
type CartRepository interface {
	Get(ctx context.Context, buyerID string) (*domain.Cart, error)
	Put(ctx context.Context, cart *domain.Cart) error
	Delete(ctx context.Context, buyerID string) error
}

type CheckoutRepository interface {
	Create(ctx context.Context, session *domain.CheckoutSession) error
	Get(ctx context.Context, id string) (*domain.CheckoutSession, error)
	GetByIdempotencyKey(ctx context.Context, buyerID, key string) (*domain.CheckoutSession, error)

	// State changes below are guarded by the session's expected current
	// status; a mismatch returns ErrStateConflict.
	SetAwaitingPayment(ctx context.Context, id, gatewayOrderID string) error
	SetPaymentVerified(ctx context.Context, id, paymentID string, shipping *domain.ShippingAddress) error
	Complete(ctx context.Context, id, orderID string) error
	MarkFailed(ctx context.Context, id, reason string) error
	MarkCancelled(ctx context.Context, id string) error

	// FindStuck returns sessions sitting in PAYMENT_VERIFIED longer than
	// olderThan: payment captured, order document still missing.
	FindStuck(ctx context.Context, olderThan time.Duration, limit int) ([]*domain.CheckoutSession, error)
}

type OrderRepository interface {
	// Insert writes the order as a single document and assigns its id.
	// A second insert for the same gateway order id returns ErrDuplicateOrder.
	Insert(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*domain.Order, error)
	ListByBuyer(ctx context.Context, buyerID string) ([]domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id string, from, to domain.OrderStatus) error
}

// OutboxEvent is a pending domain event awaiting publication.
type OutboxEvent struct {
	ID          string     `bson:"_id"`
	AggregateID string     `bson:"aggregate_id"`
	EventType   string     `bson:"event_type"`
	Payload     []byte     `bson:"payload"`
	CreatedAt   time.Time  `bson:"created_at"`
	Processed   bool       `bson:"processed"`
	ProcessedAt *time.Time `bson:"processed_at,omitempty"`
}

type OutboxRepository interface {
	Append(ctx context.Context, event *OutboxEvent) error
	GetUnprocessed(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkProcessed(ctx context.Context, id string) error
}

type CatalogRepository interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	ListProductsByArtist(ctx context.Context, artistID string) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error)
	CreateProduct(ctx context.Context, p *domain.Product) error
	UpdateProduct(ctx context.Context, p *domain.Product) error
	DeleteProduct(ctx context.Context, id string) error

	ListArtists(ctx context.Context) ([]domain.Artist, error)
	GetArtist(ctx context.Context, id string) (*domain.Artist, error)
	CreateArtist(ctx context.Context, a *domain.Artist) error
	UpdateArtist(ctx context.Context, a *domain.Artist) error
	DeleteArtist(ctx context.Context, id string) error

	ListSlides(ctx context.Context) ([]domain.Slide, error)
	CreateSlide(ctx context.Context, s *domain.Slide) error
	UpdateSlide(ctx context.Context, s *domain.Slide) error
	DeleteSlide(ctx context.Context, id string) error

	ListSocialLinks(ctx context.Context) ([]domain.SocialLink, error)
	CreateSocialLink(ctx context.Context, l *domain.SocialLink) error
	UpdateSocialLink(ctx context.Context, l *domain.SocialLink) error
	DeleteSocialLink(ctx context.Context, id string) error
}
