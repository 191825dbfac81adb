package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	cart "github.com/dwikikusuma/sportsstore/internal/cart/domain"
	"github.com/dwikikusuma/sportsstore/internal/cart/session"
	orderapp "github.com/dwikikusuma/sportsstore/internal/order/app"
	orderdomain "github.com/dwikikusuma/sportsstore/internal/order/domain"
	"github.com/gin-gonic/gin"
)

const sessionCookie = "store_session"

// sessionCart resolves the caller's cart from the session cookie,
// minting a new session on first contact.
func (s *Server) sessionCart(c *gin.Context) (*cart.Cart, string) {
	id, err := c.Cookie(sessionCookie)
	if err != nil || id == "" {
		id = session.NewID()
		c.SetCookie(sessionCookie, id, 7*24*3600, "/", "", false, true)
	}
	return s.carts.Fetch(id), id
}

func (s *Server) getCart(c *gin.Context) {
	crt, _ := s.sessionCart(c)
	c.JSON(http.StatusOK, toCartJSON(crt))
}

// addCartItem handles POST /cart/items. The product is resolved through
// the catalog so the cart line carries its current name and price.
func (s *Server) addCartItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_INPUT", "invalid request body", err.Error())
		return
	}

	product, err := s.catalog.GetProduct(c.Request.Context(), req.ProductID)
	if err != nil {
		catalogError(c, err)
		return
	}

	crt, _ := s.sessionCart(c)
	if err := crt.AddItem(product, req.Quantity); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_INPUT", "invalid quantity", err.Error())
		return
	}

	c.JSON(http.StatusOK, toCartJSON(crt))
}

func (s *Server) removeCartItem(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(c, http.StatusBadRequest, "INVALID_INPUT", "product id must be a positive integer", "")
		return
	}

	crt, _ := s.sessionCart(c)
	crt.RemoveLine(id)
	c.JSON(http.StatusOK, toCartJSON(crt))
}

func (s *Server) clearCart(c *gin.Context) {
	crt, _ := s.sessionCart(c)
	crt.Clear()
	c.JSON(http.StatusOK, toCartJSON(crt))
}

// checkout handles POST /cart/checkout. Shipping details are validated
// by binding; an empty cart is refused before the order service is
// asked to dispatch. The cart is cleared only after a successful
// dispatch.
func (s *Server) checkout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_INPUT", "invalid shipping details", err.Error())
		return
	}

	crt, id := s.sessionCart(c)
	if crt.IsEmpty() {
		writeError(c, http.StatusBadRequest, "EMPTY_CART", "cannot check out an empty cart", "")
		return
	}

	details := orderdomain.ShippingDetails{
		Name:     req.Name,
		Line1:    req.Line1,
		Line2:    req.Line2,
		Line3:    req.Line3,
		City:     req.City,
		State:    req.State,
		Country:  req.Country,
		Zip:      req.Zip,
		GiftWrap: req.GiftWrap,
	}

	if err := s.orders.Checkout(c.Request.Context(), crt, details); err != nil {
		if errors.Is(err, orderapp.ErrEmptyCart) {
			writeError(c, http.StatusBadRequest, "EMPTY_CART", "cannot check out an empty cart", "")
			return
		}
		s.log.Error("checkout failed", slog.String("session", id), slog.Any("err", err))
		writeError(c, http.StatusBadGateway, "DELIVERY_FAILED", "order could not be dispatched", "")
		return
	}

	crt.Clear()
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
