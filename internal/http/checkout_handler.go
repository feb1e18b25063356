package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/az9589317-spec/artghar/internal/domain"
	"github.com/az9589317-spec/artghar/internal/service"
)

// CheckoutAPI is satisfied by *service.CheckoutService.
type CheckoutAPI interface {
	InitiateCheckout(ctx context.Context, buyerID, idempotencyKey string) (*service.PaymentIntent, error)
	ConfirmPayment(ctx context.Context, buyerID, checkoutID string, req *service.ConfirmPaymentRequest) (*domain.Order, error)
	CancelCheckout(ctx context.Context, buyerID, checkoutID string) error
	GetSession(ctx context.Context, buyerID, checkoutID string) (*domain.CheckoutSession, error)
}

type CheckoutHandler struct {
	checkout CheckoutAPI
	timeout  time.Duration
}

func NewCheckoutHandler(checkout CheckoutAPI, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkout,
		timeout:  timeout,
	}
}

type ConfirmPaymentRequestDTO struct {
	PaymentID string                 `json:"payment_id"`
	Signature string                 `json:"signature"`
	Shipping  domain.ShippingAddress `json:"shipping"`
}

func (h *CheckoutHandler) InitiateCheckout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	buyerID := getBuyerIDFromContext(r.Context())
	if buyerID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing buyer authentication")
		return
	}

	idempotencyKey := r.Header.Get("Idempotency-Key")

	intent, err := h.checkout.InitiateCheckout(ctx, buyerID, idempotencyKey)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, intent)
}

func (h *CheckoutHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	buyerID := getBuyerIDFromContext(r.Context())
	if buyerID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing buyer authentication")
		return
	}

	checkoutID := chi.URLParam(r, "checkout_id")
	if checkoutID == "" {
		respondError(w, http.StatusBadRequest, "missing_checkout_id", "checkout_id is required")
		return
	}

	var req ConfirmPaymentRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.PaymentID == "" || req.Signature == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "payment_id and signature are required")
		return
	}

	order, err := h.checkout.ConfirmPayment(ctx, buyerID, checkoutID, &service.ConfirmPaymentRequest{
		PaymentID: req.PaymentID,
		Signature: req.Signature,
		Shipping:  req.Shipping,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, order)
}

func (h *CheckoutHandler) CancelCheckout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	buyerID := getBuyerIDFromContext(r.Context())
	if buyerID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing buyer authentication")
		return
	}

	checkoutID := chi.URLParam(r, "checkout_id")
	if checkoutID == "" {
		respondError(w, http.StatusBadRequest, "missing_checkout_id", "checkout_id is required")
		return
	}

	if err := h.checkout.CancelCheckout(ctx, buyerID, checkoutID); err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": string(domain.CheckoutStatusCancelled)})
}

func (h *CheckoutHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	buyerID := getBuyerIDFromContext(r.Context())
	if buyerID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing buyer authentication")
		return
	}

	checkoutID := chi.URLParam(r, "checkout_id")
	if checkoutID == "" {
		respondError(w, http.StatusBadRequest, "missing_checkout_id", "checkout_id is required")
		return
	}

	session, err := h.checkout.GetSession(ctx, buyerID, checkoutID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, session)
}
