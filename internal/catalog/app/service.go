package app

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/dwikikusuma/sportsstore/internal/catalog/domain"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

type Service struct {
	repo ProductRepo

	// PageSize is the fixed window size for ListPage.
	PageSize int
}

func NewService(repo ProductRepo, pageSize int) *Service {
	if pageSize <= 0 {
		pageSize = 4
	}
	return &Service{
		repo:     repo,
		PageSize: pageSize,
	}
}

// ListPage returns one page of the catalog, optionally filtered by exact
// category match. Products are ordered by id ascending; the paging total
// counts the filtered set, not the whole catalog.
func (s *Service) ListPage(ctx context.Context, category string, page int) (domain.ProductPage, error) {
	if page < 1 {
		page = 1
	}

	all, err := s.repo.List(ctx)
	if err != nil {
		return domain.ProductPage{}, err
	}

	filtered := all
	if category != "" {
		filtered = make([]domain.Product, 0, len(all))
		for _, p := range all {
			if p.Category == category {
				filtered = append(filtered, p)
			}
		}
	}

	sort.Slice(filtered, func(i, j int) bool { return filtered[i].ID < filtered[j].ID })

	start := (page - 1) * s.PageSize
	end := start + s.PageSize
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}

	return domain.ProductPage{
		Products: filtered[start:end],
		Paging: domain.PagingInfo{
			CurrentPage:  page,
			ItemsPerPage: s.PageSize,
			TotalItems:   len(filtered),
		},
		CurrentCategory: category,
	}, nil
}

// ListAll returns the whole catalog ordered by id ascending.
func (s *Service) ListAll(ctx context.Context) ([]domain.Product, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, nil
}

// Categories returns the distinct categories across the whole catalog,
// sorted ascending.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, p := range all {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}

	sort.Strings(out)
	return out, nil
}

func (s *Service) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	if id <= 0 {
		return domain.Product{}, ErrInvalidInput
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) SaveProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" || p.Price.IsNegative() {
		return domain.Product{}, ErrInvalidInput
	}
	return s.repo.Save(ctx, p)
}

func (s *Service) DeleteProduct(ctx context.Context, id int64) (domain.Product, error) {
	if id <= 0 {
		return domain.Product{}, ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}

// ProductImage returns the stored image bytes and mime type, or
// ErrNotFound when the product is unknown or has no image.
func (s *Service) ProductImage(ctx context.Context, id int64) ([]byte, string, error) {
	p, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if p.ImageMimeType == "" {
		return nil, "", ErrNotFound
	}
	return p.ImageData, p.ImageMimeType, nil
}

func (s *Service) SaveProductImage(ctx context.Context, id int64, data []byte, mimeType string) error {
	if id <= 0 || len(data) == 0 || strings.TrimSpace(mimeType) == "" {
		return ErrInvalidInput
	}
	return s.repo.UpdateImage(ctx, id, data, mimeType)
}
