package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	accountdomain "github.com/dimasqi/storefront/internal/account/domain"
	cartdomain "github.com/dimasqi/storefront/internal/cart/domain"
	catalogapp "github.com/dimasqi/storefront/internal/catalog/app"
	catalogdomain "github.com/dimasqi/storefront/internal/catalog/domain"
	checkoutapp "github.com/dimasqi/storefront/internal/checkout/app"
	checkoutdomain "github.com/dimasqi/storefront/internal/checkout/domain"
	orderdomain "github.com/dimasqi/storefront/internal/order/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type AccountService interface {
	Signup(ctx context.Context, email, username, password string) (accountdomain.User, error)
	Login(ctx context.Context, email, password string) (string, accountdomain.User, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (accountdomain.User, error)
}

type CatalogService interface {
	CreateProduct(ctx context.Context, sellerID string, in catalogapp.ProductInput) (catalogdomain.Product, error)
	GetProduct(ctx context.Context, id string) (catalogdomain.Product, error)
	ListProducts(ctx context.Context, query string, limit int, cursor string) ([]catalogdomain.Product, string, error)
	ListSellerProducts(ctx context.Context, sellerID string) ([]catalogdomain.Product, error)
	UpdateProduct(ctx context.Context, sellerID, productID string, in catalogapp.ProductInput) (catalogdomain.Product, error)
	DeleteProduct(ctx context.Context, sellerID, productID string) error
}

type CartService interface {
	AddItem(ctx context.Context, userID, productID string, quantity int32) error
	SetQuantity(ctx context.Context, userID, productID string, quantity int32) error
	RemoveItem(ctx context.Context, userID, productID string) error
	GetCart(ctx context.Context, userID string) (cartdomain.Cart, error)
}

type CheckoutService interface {
	SubmitDetails(ctx context.Context, sessionID string, form checkoutapp.DetailsForm) error
	StagedDetails(ctx context.Context, sessionID string) (checkoutdomain.StagedDetails, bool, error)
	Summary(ctx context.Context, userID, sessionID string) (checkoutdomain.StagedDetails, checkoutdomain.Quote, error)
	Commit(ctx context.Context, userID, sessionID string) (checkoutdomain.CommitResult, error)
	Abandon(ctx context.Context, sessionID string) error
}

type OrderService interface {
	History(ctx context.Context, userID string) ([]orderdomain.Order, error)
	GetOrder(ctx context.Context, userID, orderID string) (orderdomain.Order, error)
}

type Server struct {
	accounts AccountService
	catalog  CatalogService
	cart     CartService
	checkout CheckoutService
	orders   OrderService

	log        *slog.Logger
	sessionTTL time.Duration
}

func NewServer(accounts AccountService, catalog CatalogService, cart CartService, checkout CheckoutService, orders OrderService, log *slog.Logger, sessionTTL time.Duration) *Server {
	return &Server{
		accounts:   accounts,
		catalog:    catalog,
		cart:       cart,
		checkout:   checkout,
		orders:     orders,
		log:        log,
		sessionTTL: sessionTTL,
	}
}

func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(s.log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/signup", s.handleSignup)
		r.Post("/auth/login", s.handleLogin)
		r.Post("/auth/logout", s.handleLogout)

		// browsing is public
		r.Get("/products", s.handleListProducts)
		r.Get("/products/{productID}", s.handleGetProduct)

		r.Group(func(r chi.Router) {
			r.Use(s.Auth)

			r.Post("/products", s.handleCreateProduct)
			r.Put("/products/{productID}", s.handleUpdateProduct)
			r.Delete("/products/{productID}", s.handleDeleteProduct)
			r.Get("/my/products", s.handleMyProducts)

			r.Get("/cart", s.handleGetCart)
			r.Post("/cart/items", s.handleAddCartItem)
			r.Put("/cart/items/{productID}", s.handleSetCartQuantity)
			r.Delete("/cart/items/{productID}", s.handleRemoveCartItem)

			r.Get("/checkout/details", s.handleGetCheckoutDetails)
			r.Post("/checkout/details", s.handleSubmitCheckoutDetails)
			r.Get("/checkout/summary", s.handleCheckoutSummary)
			r.Post("/checkout/summary", s.handleCheckoutCommit)

			r.Get("/orders", s.handleOrderHistory)
			r.Get("/orders/{orderID}", s.handleGetOrder)
		})
	})

	return r
}
