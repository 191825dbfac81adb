package domain

// PagingInfo describes one window of a product listing.
type PagingInfo struct {
	CurrentPage  int
	ItemsPerPage int
	TotalItems   int
}

func (p PagingInfo) TotalPages() int {
	if p.ItemsPerPage <= 0 {
		return 0
	}
	return (p.TotalItems + p.ItemsPerPage - 1) / p.ItemsPerPage
}

// ProductPage is one page of a (possibly category-filtered) listing.
type ProductPage struct {
	Products        []Product
	Paging          PagingInfo
	CurrentCategory string
}
