package service

import (
	"context"
	"fmt"
	"time"

	"github.com/az9589317-spec/artghar/internal/cache"
	"github.com/az9589317-spec/artghar/internal/domain"
	"github.com/az9589317-spec/artghar/internal/gateway"
	"github.com/az9589317-spec/artghar/internal/repository"
)

// MockCartRepository implements repository.CartRepository for testing
type MockCartRepository struct {
	Carts   map[string]*domain.Cart
	GetErr  error
	PutErr  error
	PutCart *domain.Cart // captures the last cart passed to Put
}

func NewMockCartRepository() *MockCartRepository {
	return &MockCartRepository{Carts: make(map[string]*domain.Cart)}
}

func (m *MockCartRepository) Get(_ context.Context, buyerID string) (*domain.Cart, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	cart, ok := m.Carts[buyerID]
	if !ok {
		return nil, repository.ErrCartNotFound
	}
	return cart, nil
}

func (m *MockCartRepository) Put(_ context.Context, cart *domain.Cart) error {
	if m.PutErr != nil {
		return m.PutErr
	}
	m.PutCart = cart
	m.Carts[cart.BuyerID] = cart
	return nil
}

func (m *MockCartRepository) Delete(_ context.Context, buyerID string) error {
	if _, ok := m.Carts[buyerID]; !ok {
		return repository.ErrCartNotFound
	}
	delete(m.Carts, buyerID)
	return nil
}

// MockCartCache implements cache.CartCache for testing
type MockCartCache struct {
	Entries    map[string]*domain.Cart
	GetErr     error
	SetCalls   int
	DeleteKeys []string
}

func NewMockCartCache() *MockCartCache {
	return &MockCartCache{Entries: make(map[string]*domain.Cart)}
}

func (m *MockCartCache) Get(_ context.Context, buyerID string) (*domain.Cart, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	cart, ok := m.Entries[buyerID]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return cart, nil
}

func (m *MockCartCache) Set(_ context.Context, buyerID string, cart *domain.Cart) error {
	m.SetCalls++
	m.Entries[buyerID] = cart
	return nil
}

func (m *MockCartCache) Delete(_ context.Context, buyerID string) error {
	m.DeleteKeys = append(m.DeleteKeys, buyerID)
	delete(m.Entries, buyerID)
	return nil
}

// MockCheckoutRepository implements repository.CheckoutRepository for testing
type MockCheckoutRepository struct {
	Sessions  map[string]*domain.CheckoutSession
	CreateErr error
	UpdateErr error
}

func NewMockCheckoutRepository() *MockCheckoutRepository {
	return &MockCheckoutRepository{Sessions: make(map[string]*domain.CheckoutSession)}
}

func (m *MockCheckoutRepository) Create(_ context.Context, session *domain.CheckoutSession) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	copied := *session
	m.Sessions[session.ID] = &copied
	return nil
}

func (m *MockCheckoutRepository) Get(_ context.Context, id string) (*domain.CheckoutSession, error) {
	session, ok := m.Sessions[id]
	if !ok {
		return nil, repository.ErrSessionNotFound
	}
	copied := *session
	return &copied, nil
}

func (m *MockCheckoutRepository) GetByIdempotencyKey(_ context.Context, buyerID, key string) (*domain.CheckoutSession, error) {
	for _, session := range m.Sessions {
		if session.BuyerID == buyerID && session.IdempotencyKey == key {
			copied := *session
			return &copied, nil
		}
	}
	return nil, repository.ErrSessionNotFound
}

func (m *MockCheckoutRepository) transition(id string, from []domain.CheckoutStatus, apply func(*domain.CheckoutSession)) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	session, ok := m.Sessions[id]
	if !ok {
		return repository.ErrSessionNotFound
	}
	for _, status := range from {
		if session.Status == status {
			apply(session)
			session.UpdatedAt = time.Now()
			return nil
		}
	}
	return repository.ErrStateConflict
}

func (m *MockCheckoutRepository) SetAwaitingPayment(_ context.Context, id, gatewayOrderID string) error {
	return m.transition(id, []domain.CheckoutStatus{domain.CheckoutStatusInitiated}, func(s *domain.CheckoutSession) {
		s.Status = domain.CheckoutStatusAwaitingPayment
		s.GatewayOrderID = gatewayOrderID
	})
}

func (m *MockCheckoutRepository) SetPaymentVerified(_ context.Context, id, paymentID string, shipping *domain.ShippingAddress) error {
	return m.transition(id, []domain.CheckoutStatus{domain.CheckoutStatusAwaitingPayment}, func(s *domain.CheckoutSession) {
		s.Status = domain.CheckoutStatusPaymentVerified
		s.PaymentID = paymentID
		s.Shipping = shipping
	})
}

func (m *MockCheckoutRepository) Complete(_ context.Context, id, orderID string) error {
	return m.transition(id, []domain.CheckoutStatus{domain.CheckoutStatusPaymentVerified}, func(s *domain.CheckoutSession) {
		s.Status = domain.CheckoutStatusCompleted
		s.OrderID = orderID
	})
}

func (m *MockCheckoutRepository) MarkFailed(_ context.Context, id, reason string) error {
	from := []domain.CheckoutStatus{domain.CheckoutStatusInitiated, domain.CheckoutStatusAwaitingPayment}
	return m.transition(id, from, func(s *domain.CheckoutSession) {
		s.Status = domain.CheckoutStatusFailed
		s.FailureReason = reason
	})
}

func (m *MockCheckoutRepository) MarkCancelled(_ context.Context, id string) error {
	return m.transition(id, []domain.CheckoutStatus{domain.CheckoutStatusAwaitingPayment}, func(s *domain.CheckoutSession) {
		s.Status = domain.CheckoutStatusCancelled
	})
}

func (m *MockCheckoutRepository) FindStuck(_ context.Context, olderThan time.Duration, limit int) ([]*domain.CheckoutSession, error) {
	cutoff := time.Now().Add(-olderThan)
	var stuck []*domain.CheckoutSession
	for _, session := range m.Sessions {
		if session.Status == domain.CheckoutStatusPaymentVerified && session.UpdatedAt.Before(cutoff) {
			copied := *session
			stuck = append(stuck, &copied)
			if len(stuck) == limit {
				break
			}
		}
	}
	return stuck, nil
}

// MockOrderRepository implements repository.OrderRepository for testing
type MockOrderRepository struct {
	Orders    map[string]*domain.Order // keyed by order id
	InsertErr error
	nextID    int
}

func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{Orders: make(map[string]*domain.Order)}
}

func (m *MockOrderRepository) Insert(_ context.Context, order *domain.Order) error {
	if m.InsertErr != nil {
		return m.InsertErr
	}
	for _, existing := range m.Orders {
		if existing.PaymentDetails.GatewayOrderID == order.PaymentDetails.GatewayOrderID {
			return repository.ErrDuplicateOrder
		}
	}
	m.nextID++
	order.ID = fmt.Sprintf("order-%d", m.nextID)
	order.CreatedAt = time.Now()
	copied := *order
	m.Orders[order.ID] = &copied
	return nil
}

func (m *MockOrderRepository) GetByID(_ context.Context, id string) (*domain.Order, error) {
	order, ok := m.Orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	copied := *order
	return &copied, nil
}

func (m *MockOrderRepository) GetByGatewayOrderID(_ context.Context, gatewayOrderID string) (*domain.Order, error) {
	for _, order := range m.Orders {
		if order.PaymentDetails.GatewayOrderID == gatewayOrderID {
			copied := *order
			return &copied, nil
		}
	}
	return nil, repository.ErrOrderNotFound
}

func (m *MockOrderRepository) ListByBuyer(_ context.Context, buyerID string) ([]domain.Order, error) {
	var out []domain.Order
	for _, order := range m.Orders {
		if order.BuyerID == buyerID {
			out = append(out, *order)
		}
	}
	return out, nil
}

func (m *MockOrderRepository) List(_ context.Context) ([]domain.Order, error) {
	var out []domain.Order
	for _, order := range m.Orders {
		out = append(out, *order)
	}
	return out, nil
}

func (m *MockOrderRepository) UpdateStatus(_ context.Context, id string, from, to domain.OrderStatus) error {
	order, ok := m.Orders[id]
	if !ok {
		return repository.ErrOrderNotFound
	}
	if order.Status != from {
		return repository.ErrStateConflict
	}
	order.Status = to
	return nil
}

// MockOutboxRepository implements repository.OutboxRepository for testing
type MockOutboxRepository struct {
	Events    []*repository.OutboxEvent
	AppendErr error
}

func (m *MockOutboxRepository) Append(_ context.Context, event *repository.OutboxEvent) error {
	if m.AppendErr != nil {
		return m.AppendErr
	}
	m.Events = append(m.Events, event)
	return nil
}

func (m *MockOutboxRepository) GetUnprocessed(_ context.Context, limit int) ([]*repository.OutboxEvent, error) {
	var out []*repository.OutboxEvent
	for _, event := range m.Events {
		if !event.Processed {
			out = append(out, event)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (m *MockOutboxRepository) MarkProcessed(_ context.Context, id string) error {
	for _, event := range m.Events {
		if event.ID == id {
			event.Processed = true
			return nil
		}
	}
	return nil
}

// MockPaymentGateway implements gateway.PaymentGateway for testing
type MockPaymentGateway struct {
	Order       *gateway.PaymentOrder
	CreateErr   error
	ValidSig    string
	CreateCalls int
}

func (m *MockPaymentGateway) CreateOrder(_ context.Context, amount domain.Paise, currency, receipt string) (*gateway.PaymentOrder, error) {
	m.CreateCalls++
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	if m.Order != nil {
		return m.Order, nil
	}
	return &gateway.PaymentOrder{ID: "order_gw_1", Amount: int64(amount), Currency: currency}, nil
}

func (m *MockPaymentGateway) VerifyPayment(_, _, signature string) bool {
	return signature == m.ValidSig
}

func (m *MockPaymentGateway) KeyID() string {
	return "rzp_test_key"
}

// MockCatalogRepository implements repository.CatalogRepository for testing.
// Only the product lookups matter to the cart tests, the rest is inert.
type MockCatalogRepository struct {
	Products map[string]*domain.Product
}

func NewMockCatalogRepository() *MockCatalogRepository {
	return &MockCatalogRepository{Products: make(map[string]*domain.Product)}
}

func (m *MockCatalogRepository) ListProducts(_ context.Context) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range m.Products {
		out = append(out, *p)
	}
	return out, nil
}

func (m *MockCatalogRepository) ListProductsByArtist(_ context.Context, artistID string) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range m.Products {
		if p.ArtistID == artistID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *MockCatalogRepository) GetProduct(_ context.Context, id string) (*domain.Product, error) {
	p, ok := m.Products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

func (m *MockCatalogRepository) GetProductBySlug(_ context.Context, slug string) (*domain.Product, error) {
	for _, p := range m.Products {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockCatalogRepository) CreateProduct(_ context.Context, p *domain.Product) error {
	m.Products[p.ID] = p
	return nil
}

func (m *MockCatalogRepository) UpdateProduct(_ context.Context, p *domain.Product) error {
	m.Products[p.ID] = p
	return nil
}

func (m *MockCatalogRepository) DeleteProduct(_ context.Context, id string) error {
	delete(m.Products, id)
	return nil
}

func (m *MockCatalogRepository) ListArtists(_ context.Context) ([]domain.Artist, error) {
	return nil, nil
}

func (m *MockCatalogRepository) GetArtist(_ context.Context, _ string) (*domain.Artist, error) {
	return nil, repository.ErrNotFound
}

func (m *MockCatalogRepository) CreateArtist(_ context.Context, _ *domain.Artist) error { return nil }
func (m *MockCatalogRepository) UpdateArtist(_ context.Context, _ *domain.Artist) error { return nil }
func (m *MockCatalogRepository) DeleteArtist(_ context.Context, _ string) error         { return nil }

func (m *MockCatalogRepository) ListSlides(_ context.Context) ([]domain.Slide, error) {
	return nil, nil
}

func (m *MockCatalogRepository) CreateSlide(_ context.Context, _ *domain.Slide) error { return nil }
func (m *MockCatalogRepository) UpdateSlide(_ context.Context, _ *domain.Slide) error { return nil }
func (m *MockCatalogRepository) DeleteSlide(_ context.Context, _ string) error        { return nil }

func (m *MockCatalogRepository) ListSocialLinks(_ context.Context) ([]domain.SocialLink, error) {
	return nil, nil
}

func (m *MockCatalogRepository) CreateSocialLink(_ context.Context, _ *domain.SocialLink) error {
	return nil
}

func (m *MockCatalogRepository) UpdateSocialLink(_ context.Context, _ *domain.SocialLink) error {
	return nil
}

func (m *MockCatalogRepository) DeleteSocialLink(_ context.Context, _ string) error { return nil }
