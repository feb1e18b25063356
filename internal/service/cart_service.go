package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/az9589317-spec/artghar/internal/cache"
	"github.com/az9589317-spec/artghar/internal/domain"
	"github.com/az9589317-spec/artghar/internal/repository"
)

type CartService struct {
	repo    repository.CartRepository
	catalog repository.CatalogRepository
	cache   cache.CartCache
	sfg     singleflight.Group // Prevents cache stampede
	logger  zerolog.Logger
}

func NewCartService(repo repository.CartRepository, catalog repository.CatalogRepository, cache cache.CartCache, logger zerolog.Logger) *CartService {
	return &CartService{
		repo:    repo,
		catalog: catalog,
		cache:   cache,
		logger:  logger.With().Str("component", "cart_service").Logger(),
	}
}

func (s *CartService) GetCart(ctx context.Context, buyerID string) (*domain.Cart, error) {
	// Use singleflight to prevent multiple concurrent cache misses for same key
	v, err, _ := s.sfg.Do(buyerID, func() (interface{}, error) {

		cart, err := s.cache.Get(ctx, buyerID)
		if err == nil {
			return cart, nil // cart is in cache
		}

		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn().Err(err).Msg("cache get error") // log cache error but continue
		}

		cart, errGet := s.repo.Get(ctx, buyerID)
		if errors.Is(errGet, repository.ErrCartNotFound) {
			return domain.NewCart(buyerID), nil // not found, return empty cart
		}
		if errGet != nil {
			return nil, errGet
		}

		// set cache
		go func() {
			if errSet := s.cache.Set(context.Background(), buyerID, cart); errSet != nil {
				s.logger.Warn().Err(errSet).Msg("cache set error")
			}
		}()

		return cart, nil
	})

	if err != nil {
		return nil, err
	}

	return v.(*domain.Cart), nil
}

// AddItem puts one unit of the product into the buyer's cart. The price is
// read from the catalog here, never taken from the client.
func (s *CartService) AddItem(ctx context.Context, buyerID, productID string) (*domain.Cart, error) {
	product, err := s.catalog.GetProduct(ctx, productID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	cart, err := s.loadForMutation(ctx, buyerID)
	if err != nil {
		return nil, err
	}

	cart.AddItem(domain.CartItem{
		ProductID: product.ID,
		Name:      product.Name,
		Image:     product.ImageURL,
		UnitPrice: product.Price,
	})

	return s.persist(ctx, cart)
}

func (s *CartService) UpdateQuantity(ctx context.Context, buyerID, productID string, quantity int) (*domain.Cart, error) {
	cart, err := s.loadForMutation(ctx, buyerID)
	if err != nil {
		return nil, err
	}

	if err := cart.UpdateQuantity(productID, quantity); err != nil {
		return nil, err
	}

	return s.persist(ctx, cart)
}

func (s *CartService) RemoveItem(ctx context.Context, buyerID, productID string) (*domain.Cart, error) {
	cart, err := s.loadForMutation(ctx, buyerID)
	if err != nil {
		return nil, err
	}

	cart.RemoveItem(productID)

	return s.persist(ctx, cart)
}

func (s *CartService) ClearCart(ctx context.Context, buyerID string) error {
	err := s.repo.Delete(ctx, buyerID)
	if err != nil && !errors.Is(err, repository.ErrCartNotFound) {
		return err
	}

	s.invalidateCache(buyerID)
	return nil
}

// loadForMutation reads the cart from the repository directly. Mutations must
// not start from a possibly stale cached copy.
func (s *CartService) loadForMutation(ctx context.Context, buyerID string) (*domain.Cart, error) {
	cart, err := s.repo.Get(ctx, buyerID)
	if errors.Is(err, repository.ErrCartNotFound) {
		return domain.NewCart(buyerID), nil
	}
	if err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartService) persist(ctx context.Context, cart *domain.Cart) (*domain.Cart, error) {
	if err := s.repo.Put(ctx, cart); err != nil {
		return nil, err
	}

	s.invalidateCache(cart.BuyerID)
	return cart, nil
}

func (s *CartService) invalidateCache(buyerID string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, buyerID); err != nil {
		s.logger.Warn().Err(err).Str("buyer_id", buyerID).Msg("cache invalidate error")
	}
}
