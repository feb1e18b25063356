package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/az9589317-spec/artghar/internal/domain"
)

// CatalogAPI is the public read surface of *service.CatalogService.
type CatalogAPI interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	ListProductsByArtist(ctx context.Context, artistID string) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error)
	ListArtists(ctx context.Context) ([]domain.Artist, error)
	GetArtist(ctx context.Context, id string) (*domain.Artist, error)
	ListSlides(ctx context.Context) ([]domain.Slide, error)
	ListSocialLinks(ctx context.Context) ([]domain.SocialLink, error)
}

type CatalogHandler struct {
	catalog CatalogAPI
	timeout time.Duration
}

func NewCatalogHandler(catalog CatalogAPI, timeout time.Duration) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
		timeout: timeout,
	}
}

func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var (
		products []domain.Product
		err      error
	)
	if artistID := r.URL.Query().Get("artist_id"); artistID != "" {
		products, err = h.catalog.ListProductsByArtist(ctx, artistID)
	} else {
		products, err = h.catalog.ListProducts(ctx)
	}
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if products == nil {
		products = make([]domain.Product, 0)
	}

	respondJSON(w, http.StatusOK, products)
}

func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id := chi.URLParam(r, "product_id")
	product, err := h.catalog.GetProduct(ctx, id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, product)
}

func (h *CatalogHandler) GetProductBySlug(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	slug := chi.URLParam(r, "slug")
	product, err := h.catalog.GetProductBySlug(ctx, slug)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, product)
}

func (h *CatalogHandler) ListArtists(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	artists, err := h.catalog.ListArtists(ctx)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if artists == nil {
		artists = make([]domain.Artist, 0)
	}

	respondJSON(w, http.StatusOK, artists)
}

func (h *CatalogHandler) GetArtist(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id := chi.URLParam(r, "artist_id")
	artist, err := h.catalog.GetArtist(ctx, id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, artist)
}

func (h *CatalogHandler) ListSlides(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	slides, err := h.catalog.ListSlides(ctx)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if slides == nil {
		slides = make([]domain.Slide, 0)
	}

	respondJSON(w, http.StatusOK, slides)
}

func (h *CatalogHandler) ListSocialLinks(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	links, err := h.catalog.ListSocialLinks(ctx)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if links == nil {
		links = make([]domain.SocialLink, 0)
	}

	respondJSON(w, http.StatusOK, links)
}
