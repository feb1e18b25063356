package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/az9589317-spec/artghar/internal/domain"
)

// AdminOrderAPI is the admin-side slice of *service.OrderService.
type AdminOrderAPI interface {
	ListAll(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, orderID string, to domain.OrderStatus) (*domain.Order, error)
}

// AdminCatalogAPI is the write surface of *service.CatalogService.
type AdminCatalogAPI interface {
	CreateProduct(ctx context.Context, p *domain.Product) error
	UpdateProduct(ctx context.Context, p *domain.Product) error
	DeleteProduct(ctx context.Context, id string) error
	CreateArtist(ctx context.Context, a *domain.Artist) error
	UpdateArtist(ctx context.Context, a *domain.Artist) error
	DeleteArtist(ctx context.Context, id string) error
	CreateSlide(ctx context.Context, s *domain.Slide) error
	UpdateSlide(ctx context.Context, s *domain.Slide) error
	DeleteSlide(ctx context.Context, id string) error
	CreateSocialLink(ctx context.Context, l *domain.SocialLink) error
	UpdateSocialLink(ctx context.Context, l *domain.SocialLink) error
	DeleteSocialLink(ctx context.Context, id string) error
}

type AdminHandler struct {
	orders  AdminOrderAPI
	catalog AdminCatalogAPI
	timeout time.Duration
}

func NewAdminHandler(orders AdminOrderAPI, catalog AdminCatalogAPI, timeout time.Duration) *AdminHandler {
	return &AdminHandler{
		orders:  orders,
		catalog: catalog,
		timeout: timeout,
	}
}

type UpdateOrderStatusDTO struct {
	Status string `json:"status"`
}

func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	orders, err := h.orders.ListAll(ctx)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if orders == nil {
		orders = make([]domain.Order, 0)
	}

	respondJSON(w, http.StatusOK, orders)
}

func (h *AdminHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	orderID := chi.URLParam(r, "order_id")
	if orderID == "" {
		respondError(w, http.StatusBadRequest, "missing_order_id", "order_id is required")
		return
	}

	var req UpdateOrderStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	order, err := h.orders.UpdateStatus(ctx, orderID, domain.OrderStatus(req.Status))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, order)
}

func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var product domain.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if product.Name == "" || product.Price <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product", "name and a positive price are required")
		return
	}

	if err := h.catalog.CreateProduct(ctx, &product); err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, product)
}

func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var product domain.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	product.ID = chi.URLParam(r, "product_id")

	if err := h.catalog.UpdateProduct(ctx, &product); err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, product)
}

func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.catalog.DeleteProduct(ctx, chi.URLParam(r, "product_id")); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) CreateArtist(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var artist domain.Artist
	if err := json.NewDecoder(r.Body).Decode(&artist); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if artist.Name == "" {
		respondError(w, http.StatusBadRequest, "invalid_artist", "name is required")
		return
	}

	if err := h.catalog.CreateArtist(ctx, &artist); err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, artist)
}

func (h *AdminHandler) UpdateArtist(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var artist domain.Artist
	if err := json.NewDecoder(r.Body).Decode(&artist); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	artist.ID = chi.URLParam(r, "artist_id")

	if err := h.catalog.UpdateArtist(ctx, &artist); err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, artist)
}

func (h *AdminHandler) DeleteArtist(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.catalog.DeleteArtist(ctx, chi.URLParam(r, "artist_id")); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) CreateSlide(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var slide domain.Slide
	if err := json.NewDecoder(r.Body).Decode(&slide); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := h.catalog.CreateSlide(ctx, &slide); err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, slide)
}

func (h *AdminHandler) UpdateSlide(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var slide domain.Slide
	if err := json.NewDecoder(r.Body).Decode(&slide); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	slide.ID = chi.URLParam(r, "slide_id")

	if err := h.catalog.UpdateSlide(ctx, &slide); err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, slide)
}

func (h *AdminHandler) DeleteSlide(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.catalog.DeleteSlide(ctx, chi.URLParam(r, "slide_id")); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) CreateSocialLink(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var link domain.SocialLink
	if err := json.NewDecoder(r.Body).Decode(&link); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := h.catalog.CreateSocialLink(ctx, &link); err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, link)
}

func (h *AdminHandler) UpdateSocialLink(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var link domain.SocialLink
	if err := json.NewDecoder(r.Body).Decode(&link); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	link.ID = chi.URLParam(r, "link_id")

	if err := h.catalog.UpdateSocialLink(ctx, &link); err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, link)
}

func (h *AdminHandler) DeleteSocialLink(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.catalog.DeleteSocialLink(ctx, chi.URLParam(r, "link_id")); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
