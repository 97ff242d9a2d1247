// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"fmt"
	"net/http"
	"slices"

	"storefront/config"
	"storefront/internal/delivery/api/middleware"
	"storefront/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

// Access is the tier a route is mounted at. The zero value is Public, so an
// undeclared route never requires credentials.
type Access int

const (
	Public Access = iota
	Authenticated
	Elevated
)

func (a Access) String() string {
	switch a {
	case Public:
		return "public"
	case Authenticated:
		return "authenticated"
	case Elevated:
		return "elevated"
	default:
		return fmt.Sprintf("access(%d)", int(a))
	}
}

// Route declares one endpoint and the tier it requires.
type Route struct {
	Method     string
	Path       string
	Access     Access
	Handler    echo.HandlerFunc
	Middleware []echo.MiddlewareFunc
}

type RouterParams struct {
	fx.In

	UserHandler     *handler.UserHandler
	CatalogHandler  *handler.CatalogHandler
	DonationHandler *handler.DonationHandler
	AdminHandler    *handler.AdminHandler
	AuthMiddleware  *middleware.AuthMiddleware
	Config          *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler     *handler.UserHandler
	catalogHandler  *handler.CatalogHandler
	donationHandler *handler.DonationHandler
	adminHandler    *handler.AdminHandler
	authMiddleware  *middleware.AuthMiddleware
	config          *config.Config
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:     params.UserHandler,
		catalogHandler:  params.CatalogHandler,
		donationHandler: params.DonationHandler,
		adminHandler:    params.AdminHandler,
		authMiddleware:  params.AuthMiddleware,
		config:          params.Config,
	}
}

// Routes returns the route table.
func (r *router) Routes() []Route {
	credentialLimiter := middleware.NewCredentialRateLimiter(r.config.RateLimit)

	return []Route{
		{Method: http.MethodGet, Path: "/health", Handler: handler.HealthCheck},
		{Method: http.MethodGet, Path: "/metrics", Handler: echo.WrapHandler(promhttp.Handler())},

		// Users
		{Method: http.MethodPost, Path: "/api/users/register", Handler: r.userHandler.RegisterUser, Middleware: []echo.MiddlewareFunc{credentialLimiter}},
		{Method: http.MethodPost, Path: "/api/users/login", Handler: r.userHandler.Login, Middleware: []echo.MiddlewareFunc{credentialLimiter}},
		{Method: http.MethodGet, Path: "/api/users/profile", Access: Authenticated, Handler: r.userHandler.GetProfile},
		{Method: http.MethodPut, Path: "/api/users/profile", Access: Authenticated, Handler: r.userHandler.UpdateProfile},

		// Catalog
		{Method: http.MethodGet, Path: "/api/products", Handler: r.catalogHandler.ListProducts},
		{Method: http.MethodGet, Path: "/api/products/:id", Handler: r.catalogHandler.GetProduct},
		{Method: http.MethodGet, Path: "/api/categories", Handler: r.catalogHandler.ListCategories},

		// Donations
		{Method: http.MethodPost, Path: "/api/donations", Access: Authenticated, Handler: r.donationHandler.CreateDonation},
		{Method: http.MethodGet, Path: "/api/donations/mydonations", Access: Authenticated, Handler: r.donationHandler.MyDonations},

		// Admin console
		{Method: http.MethodGet, Path: "/api/admin/users", Access: Elevated, Handler: r.adminHandler.ListUsers},
		{Method: http.MethodDelete, Path: "/api/admin/users/:id", Access: Elevated, Handler: r.adminHandler.DeleteUser},
		{Method: http.MethodGet, Path: "/api/admin/products", Access: Elevated, Handler: r.adminHandler.ListProducts},
		{Method: http.MethodPost, Path: "/api/admin/products", Access: Elevated, Handler: r.adminHandler.CreateProduct},
		{Method: http.MethodGet, Path: "/api/admin/products/:id", Access: Elevated, Handler: r.adminHandler.GetProduct},
		{Method: http.MethodPut, Path: "/api/admin/products/:id", Access: Elevated, Handler: r.adminHandler.UpdateProduct},
		{Method: http.MethodDelete, Path: "/api/admin/products/:id", Access: Elevated, Handler: r.adminHandler.DeleteProduct},
		{Method: http.MethodGet, Path: "/api/admin/stats", Access: Elevated, Handler: r.adminHandler.Stats},
		{Method: http.MethodGet, Path: "/api/admin/donations", Access: Elevated, Handler: r.adminHandler.ListDonations},
		{Method: http.MethodPut, Path: "/api/admin/donations/:id", Access: Elevated, Handler: r.adminHandler.UpdateDonationStatus},
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	for _, route := range r.Routes() {
		e.Add(route.Method, route.Path, route.Handler, r.chain(route.Access, route.Middleware...)...)
	}
}

// chain builds the middleware for a tier. Authorization is only ever
// appended after authentication.
func (r *router) chain(access Access, extra ...echo.MiddlewareFunc) []echo.MiddlewareFunc {
	chain := slices.Clone(extra)

	switch access {
	case Public:
	case Authenticated:
		chain = append(chain, r.authMiddleware.Authenticate)
	case Elevated:
		chain = append(chain, r.authMiddleware.Authenticate, r.authMiddleware.RequireElevated)
	default:
		panic("unknown route access tier: " + access.String())
	}

	return chain
}
