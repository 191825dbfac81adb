package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// listProducts handles GET /products?category=&page=.
func (s *Server) listProducts(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_INPUT", "page must be an integer", "")
		return
	}

	result, err := s.catalog.ListPage(c.Request.Context(), c.Query("category"), page)
	if err != nil {
		catalogError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProductPageJSON(result))
}

// listCategories handles GET /categories: the distinct, sorted category
// list used for store navigation.
func (s *Server) listCategories(c *gin.Context) {
	cats, err := s.catalog.Categories(c.Request.Context())
	if err != nil {
		catalogError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": cats})
}

// productImage handles GET /products/:id/image, serving the stored blob
// under its stored mime type.
func (s *Server) productImage(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(c, http.StatusBadRequest, "INVALID_INPUT", "product id must be a positive integer", "")
		return
	}

	data, mimeType, err := s.catalog.ProductImage(c.Request.Context(), id)
	if err != nil {
		catalogError(c, err)
		return
	}

	c.Data(http.StatusOK, mimeType, data)
}
