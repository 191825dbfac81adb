package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dwikikusuma/sportsstore/internal/cart/session"
	catalogapp "github.com/dwikikusuma/sportsstore/internal/catalog/app"
	orderapp "github.com/dwikikusuma/sportsstore/internal/order/app"
	"github.com/dwikikusuma/sportsstore/internal/storefront/auth"
	"github.com/gin-gonic/gin"
)

// Server holds the handler dependencies: the catalog service, the
// session cart store, the checkout service and the admin auth provider.
type Server struct {
	catalog *catalogapp.Service
	carts   *session.Store
	orders  *orderapp.Service
	auth    *auth.Provider
	log     *slog.Logger
}

func NewServer(catalog *catalogapp.Service, carts *session.Store, orders *orderapp.Service, authp *auth.Provider, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		catalog: catalog,
		carts:   carts,
		orders:  orders,
		auth:    authp,
		log:     log,
	}
}

func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })

	r.GET("/products", s.listProducts)
	r.GET("/products/:id/image", s.productImage)
	r.GET("/categories", s.listCategories)

	r.GET("/cart", s.getCart)
	r.POST("/cart/items", s.addCartItem)
	r.DELETE("/cart/items/:id", s.removeCartItem)
	r.DELETE("/cart", s.clearCart)
	r.POST("/cart/checkout", s.checkout)

	r.POST("/admin/login", s.login)
	r.POST("/admin/logout", s.logout)

	admin := r.Group("/admin", s.requireAdmin)
	admin.GET("/products", s.adminListProducts)
	admin.GET("/products/:id", s.adminGetProduct)
	admin.POST("/products", s.adminSaveProduct)
	admin.DELETE("/products/:id", s.adminDeleteProduct)
	admin.PUT("/products/:id/image", s.adminSaveImage)

	return r
}

func writeError(c *gin.Context, status int, code, message, details string) {
	c.JSON(status, ErrorResponse{Error: code, Message: message, Details: details})
}

// catalogError maps the catalog service sentinels onto HTTP statuses.
func catalogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, catalogapp.ErrNotFound):
		writeError(c, http.StatusNotFound, "NOT_FOUND", "product not found", "")
	case errors.Is(err, catalogapp.ErrInvalidInput):
		writeError(c, http.StatusBadRequest, "INVALID_INPUT", "invalid input", err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "INTERNAL", "internal error", "")
	}
}
