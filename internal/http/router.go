package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/fahd-ahsayni/nelly-store-sub000/internal/cart"
	"github.com/fahd-ahsayni/nelly-store-sub000/internal/catalog"
	"github.com/fahd-ahsayni/nelly-store-sub000/internal/checkout"
	"github.com/fahd-ahsayni/nelly-store-sub000/internal/i18n"
	"github.com/fahd-ahsayni/nelly-store-sub000/internal/wishlist"
)

// Deps carries everything the router wires together.
type Deps struct {
	Catalog      *catalog.Store
	Carts        *cart.Manager
	Wishlists    *wishlist.Manager
	Checkout     *checkout.Service
	Reservations checkout.Repository
	Bundle       *i18n.Bundle
	Negotiator   *i18n.Negotiator

	RequestTimeout time.Duration
}

// NewRouter assembles the HTTP surface. Every storefront route lives under
// a /{locale} prefix; un-prefixed paths are redirected to the negotiated
// locale. Revalidation and health sit outside the locale tree because they
// are called by machines, not browsers.
func NewRouter(deps Deps) http.Handler {
	catalogHandler := NewCatalogHandler(deps.Catalog, deps.RequestTimeout)
	cartHandler := NewCartHandler(deps.Carts, deps.Catalog, deps.RequestTimeout)
	wishlistHandler := NewWishlistHandler(deps.Wishlists, deps.Catalog, deps.RequestTimeout)
	checkoutHandler := NewCheckoutHandler(deps.Checkout, deps.Reservations, deps.Carts, deps.RequestTimeout)
	revalidateHandler := NewRevalidateHandler(deps.Catalog)
	i18nHandler := NewI18nHandler(deps.Bundle)

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(deps.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(SessionMiddleware)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// On-demand cache invalidation, outside the locale tree.
	r.Post("/api/revalidate", revalidateHandler.Revalidate)

	r.Route("/{locale}", func(r chi.Router) {
		r.Use(LocaleMiddleware(deps.Bundle, deps.Negotiator))

		r.Route("/api", func(r chi.Router) {
			r.Get("/translations", i18nHandler.GetTranslations)

			r.Get("/products", catalogHandler.ListProducts)
			r.Get("/products/{id}", catalogHandler.GetProduct)
			r.Get("/collections", catalogHandler.ListCollections)
			r.Get("/colors", catalogHandler.ListColors)

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", cartHandler.GetCart)
				r.Post("/items", cartHandler.AddItem)
				r.Put("/items/{item_id}", cartHandler.UpdateQuantity)
				r.Delete("/items/{item_id}", cartHandler.RemoveItem)
				r.Delete("/", cartHandler.ClearCart)
			})

			r.Route("/wishlist", func(r chi.Router) {
				r.Get("/", wishlistHandler.GetWishlist)
				r.Post("/toggle", wishlistHandler.ToggleItem)
				r.Delete("/{product_id}", wishlistHandler.RemoveItem)
			})

			r.Post("/checkout", checkoutHandler.Submit)
			r.Get("/orders/{id}", checkoutHandler.GetReservation)
		})
	})

	// Anything without a locale prefix is sent to its negotiated locale.
	// Paths already carrying a supported locale are genuinely unknown.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		if deps.Bundle.Supported(firstSegment(r.URL.Path)) {
			respondError(w, http.StatusNotFound, "not_found", "resource not found")
			return
		}
		redirectToLocale(w, r, deps.Negotiator.Negotiate(r), r.URL.Path)
	})

	return r
}

func firstSegment(path string) string {
	path = strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(path, '/'); i >= 0 {
		return path[:i]
	}
	return path
}
