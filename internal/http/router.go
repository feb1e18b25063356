package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type RouterConfig struct {
	RequestTimeout time.Duration
	AdminToken     string
}

type Handlers struct {
	Cart     *CartHandler
	Checkout *CheckoutHandler
	Orders   *OrdersHandler
	Catalog  *CatalogHandler
	Admin    *AdminHandler
}

// NewRouter assembles the full route tree.
func NewRouter(cfg RouterConfig, h Handlers) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestIDMiddleware)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(BuyerAuthMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		// public storefront content
		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.Catalog.ListProducts)
			r.Get("/{product_id}", h.Catalog.GetProduct)
			r.Get("/slug/{slug}", h.Catalog.GetProductBySlug)
		})
		r.Route("/artists", func(r chi.Router) {
			r.Get("/", h.Catalog.ListArtists)
			r.Get("/{artist_id}", h.Catalog.GetArtist)
		})
		r.Get("/slides", h.Catalog.ListSlides)
		r.Get("/social-links", h.Catalog.ListSocialLinks)

		// buyer cart
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.Cart.GetCart)
			r.Delete("/", h.Cart.ClearCart)
			r.Post("/items", h.Cart.AddItem)
			r.Put("/items/{product_id}", h.Cart.UpdateQuantity)
			r.Delete("/items/{product_id}", h.Cart.RemoveItem)
		})

		// checkout flow
		r.Route("/checkout", func(r chi.Router) {
			r.Post("/", h.Checkout.InitiateCheckout)
			r.Get("/{checkout_id}", h.Checkout.GetSession)
			r.Post("/{checkout_id}/confirm", h.Checkout.ConfirmPayment)
			r.Post("/{checkout_id}/cancel", h.Checkout.CancelCheckout)
		})

		// buyer order history
		r.Route("/orders", func(r chi.Router) {
			r.Get("/", h.Orders.ListOrders)
			r.Get("/{order_id}", h.Orders.GetOrder)
		})

		// admin surface
		r.Route("/admin", func(r chi.Router) {
			r.Use(AdminAuthMiddleware(cfg.AdminToken))

			r.Get("/orders", h.Admin.ListOrders)
			r.Put("/orders/{order_id}/status", h.Admin.UpdateOrderStatus)

			r.Post("/products", h.Admin.CreateProduct)
			r.Put("/products/{product_id}", h.Admin.UpdateProduct)
			r.Delete("/products/{product_id}", h.Admin.DeleteProduct)

			r.Post("/artists", h.Admin.CreateArtist)
			r.Put("/artists/{artist_id}", h.Admin.UpdateArtist)
			r.Delete("/artists/{artist_id}", h.Admin.DeleteArtist)

			r.Post("/slides", h.Admin.CreateSlide)
			r.Put("/slides/{slide_id}", h.Admin.UpdateSlide)
			r.Delete("/slides/{slide_id}", h.Admin.DeleteSlide)

			r.Post("/social-links", h.Admin.CreateSocialLink)
			r.Put("/social-links/{link_id}", h.Admin.UpdateSocialLink)
			r.Delete("/social-links/{link_id}", h.Admin.DeleteSocialLink)
		})
	})

	return r
}
