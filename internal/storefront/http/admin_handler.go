package http

import (
	"io"
	"net/http"
	"strconv"

	"github.com/dwikikusuma/sportsstore/internal/catalog/domain"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const adminCookie = "admin_token"

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_INPUT", "invalid request body", err.Error())
		return
	}

	token, ok := s.auth.Login(req.Username, req.Password)
	if !ok {
		writeError(c, http.StatusUnauthorized, "UNAUTHORIZED", "invalid credentials", "")
		return
	}

	c.SetCookie(adminCookie, token, 8*3600, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) logout(c *gin.Context) {
	if token, err := c.Cookie(adminCookie); err == nil {
		s.auth.Logout(token)
	}
	c.SetCookie(adminCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) requireAdmin(c *gin.Context) {
	token, err := c.Cookie(adminCookie)
	if err != nil || !s.auth.Valid(token) {
		writeError(c, http.StatusUnauthorized, "UNAUTHORIZED", "admin login required", "")
		c.Abort()
		return
	}
	c.Next()
}

func (s *Server) adminListProducts(c *gin.Context) {
	// Admin sees the whole catalog, unpaged.
	all, err := s.catalog.ListAll(c.Request.Context())
	if err != nil {
		catalogError(c, err)
		return
	}

	out := make([]productJSON, 0, len(all))
	for _, p := range all {
		out = append(out, toProductJSON(p))
	}
	c.JSON(http.StatusOK, gin.H{"products": out})
}

func (s *Server) adminGetProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(c, http.StatusBadRequest, "INVALID_INPUT", "product id must be a positive integer", "")
		return
	}

	p, err := s.catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		catalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductJSON(p))
}

// adminSaveProduct handles POST /admin/products for both create (id 0)
// and update (nonzero id).
func (s *Server) adminSaveProduct(c *gin.Context) {
	var req saveProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_INPUT", "invalid request body", err.Error())
		return
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_INPUT", "price must be a decimal number", err.Error())
		return
	}

	p, err := s.catalog.SaveProduct(c.Request.Context(), domain.Product{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		Price:       price,
		Category:    req.Category,
	})
	if err != nil {
		catalogError(c, err)
		return
	}

	status := http.StatusOK
	if req.ID == 0 {
		status = http.StatusCreated
	}
	c.JSON(status, toProductJSON(p))
}

func (s *Server) adminDeleteProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(c, http.StatusBadRequest, "INVALID_INPUT", "product id must be a positive integer", "")
		return
	}

	deleted, err := s.catalog.DeleteProduct(c.Request.Context(), id)
	if err != nil {
		catalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductJSON(deleted))
}

// adminSaveImage handles PUT /admin/products/:id/image with the raw
// image bytes as the request body and the mime type in Content-Type.
func (s *Server) adminSaveImage(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(c, http.StatusBadRequest, "INVALID_INPUT", "product id must be a positive integer", "")
		return
	}

	data, err := io.ReadAll(io.LimitReader(c.Request.Body, 10<<20))
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_INPUT", "could not read image body", err.Error())
		return
	}

	if err := s.catalog.SaveProductImage(c.Request.Context(), id, data, c.ContentType()); err != nil {
		catalogError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
