package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/az9589317-spec/artghar/internal/domain"
	"github.com/az9589317-spec/artghar/internal/repository"
)

// CatalogService fronts the storefront content collections. Reads are public,
// writes come from the admin surface only.
type CatalogService struct {
	repo   repository.CatalogRepository
	logger zerolog.Logger
}

func NewCatalogService(repo repository.CatalogRepository, logger zerolog.Logger) *CatalogService {
	return &CatalogService{
		repo:   repo,
		logger: logger.With().Str("component", "catalog_service").Logger(),
	}
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListProducts(ctx)
}

func (s *CatalogService) ListProductsByArtist(ctx context.Context, artistID string) ([]domain.Product, error) {
	return s.repo.ListProductsByArtist(ctx, artistID)
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetProduct(ctx, id)
}

func (s *CatalogService) GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	return s.repo.GetProductBySlug(ctx, slug)
}

func (s *CatalogService) CreateProduct(ctx context.Context, p *domain.Product) error {
	if p.Slug == "" {
		p.Slug = Slugify(p.Name)
	}
	return s.repo.CreateProduct(ctx, p)
}

func (s *CatalogService) UpdateProduct(ctx context.Context, p *domain.Product) error {
	return s.repo.UpdateProduct(ctx, p)
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	return s.repo.DeleteProduct(ctx, id)
}

func (s *CatalogService) ListArtists(ctx context.Context) ([]domain.Artist, error) {
	return s.repo.ListArtists(ctx)
}

func (s *CatalogService) GetArtist(ctx context.Context, id string) (*domain.Artist, error) {
	return s.repo.GetArtist(ctx, id)
}

func (s *CatalogService) CreateArtist(ctx context.Context, a *domain.Artist) error {
	return s.repo.CreateArtist(ctx, a)
}

func (s *CatalogService) UpdateArtist(ctx context.Context, a *domain.Artist) error {
	return s.repo.UpdateArtist(ctx, a)
}

func (s *CatalogService) DeleteArtist(ctx context.Context, id string) error {
	return s.repo.DeleteArtist(ctx, id)
}

func (s *CatalogService) ListSlides(ctx context.Context) ([]domain.Slide, error) {
	return s.repo.ListSlides(ctx)
}

func (s *CatalogService) CreateSlide(ctx context.Context, slide *domain.Slide) error {
	return s.repo.CreateSlide(ctx, slide)
}

func (s *CatalogService) UpdateSlide(ctx context.Context, slide *domain.Slide) error {
	return s.repo.UpdateSlide(ctx, slide)
}

func (s *CatalogService) DeleteSlide(ctx context.Context, id string) error {
	return s.repo.DeleteSlide(ctx, id)
}

func (s *CatalogService) ListSocialLinks(ctx context.Context) ([]domain.SocialLink, error) {
	return s.repo.ListSocialLinks(ctx)
}

func (s *CatalogService) CreateSocialLink(ctx context.Context, l *domain.SocialLink) error {
	return s.repo.CreateSocialLink(ctx, l)
}

func (s *CatalogService) UpdateSocialLink(ctx context.Context, l *domain.SocialLink) error {
	return s.repo.UpdateSocialLink(ctx, l)
}

func (s *CatalogService) DeleteSocialLink(ctx context.Context, id string) error {
	return s.repo.DeleteSocialLink(ctx, id)
}

// Slugify turns a product name into a URL path segment.
func Slugify(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteByte('-')
			lastDash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
