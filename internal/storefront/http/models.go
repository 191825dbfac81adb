package http

import (
	cart "github.com/dwikikusuma/sportsstore/internal/cart/domain"
	catalog "github.com/dwikikusuma/sportsstore/internal/catalog/domain"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

type productJSON struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Category    string `json:"category"`
}

type pagingJSON struct {
	CurrentPage  int `json:"current_page"`
	ItemsPerPage int `json:"items_per_page"`
	TotalItems   int `json:"total_items"`
	TotalPages   int `json:"total_pages"`
}

type productPageJSON struct {
	Products        []productJSON `json:"products"`
	Paging          pagingJSON    `json:"paging"`
	CurrentCategory string        `json:"current_category,omitempty"`
}

type cartLineJSON struct {
	Product  productJSON `json:"product"`
	Quantity int         `json:"quantity"`
	Subtotal string      `json:"subtotal"`
}

type cartJSON struct {
	Lines []cartLineJSON `json:"lines"`
	Total string         `json:"total"`
}

type addItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required,min=1"`
	Quantity  int   `json:"quantity" binding:"required,min=1"`
}

type checkoutRequest struct {
	Name    string `json:"name" binding:"required"`
	Line1   string `json:"line1" binding:"required"`
	Line2   string `json:"line2"`
	Line3   string `json:"line3"`
	City    string `json:"city" binding:"required"`
	State   string `json:"state" binding:"required"`
	Country string `json:"country" binding:"required"`
	Zip     string `json:"zip" binding:"required"`

	GiftWrap bool `json:"gift_wrap"`
}

type saveProductRequest struct {
	ID          int64  `json:"id"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Price       string `json:"price" binding:"required"`
	Category    string `json:"category"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func toProductJSON(p catalog.Product) productJSON {
	return productJSON{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.String(),
		Category:    p.Category,
	}
}

func toProductPageJSON(page catalog.ProductPage) productPageJSON {
	products := make([]productJSON, 0, len(page.Products))
	for _, p := range page.Products {
		products = append(products, toProductJSON(p))
	}
	return productPageJSON{
		Products: products,
		Paging: pagingJSON{
			CurrentPage:  page.Paging.CurrentPage,
			ItemsPerPage: page.Paging.ItemsPerPage,
			TotalItems:   page.Paging.TotalItems,
			TotalPages:   page.Paging.TotalPages(),
		},
		CurrentCategory: page.CurrentCategory,
	}
}

func toCartJSON(c *cart.Cart) cartJSON {
	lines := make([]cartLineJSON, 0)
	for _, l := range c.Lines() {
		lines = append(lines, cartLineJSON{
			Product:  toProductJSON(l.Product),
			Quantity: l.Quantity,
			Subtotal: l.Subtotal().String(),
		})
	}
	return cartJSON{
		Lines: lines,
		Total: c.Total().String(),
	}
}
