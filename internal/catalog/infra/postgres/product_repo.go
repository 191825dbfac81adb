package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dwikikusuma/sportsstore/internal/catalog/app"
	"github.com/dwikikusuma/sportsstore/internal/catalog/domain"
)

type ProductRepo struct {
	db *sql.DB
}

func NewProductRepo(db *sql.DB) *ProductRepo {
	return &ProductRepo{db: db}
}

func (r *ProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, description, price, category FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	out := []domain.Product{}
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	return out, nil
}

func (r *ProductRepo) Get(ctx context.Context, id int64) (domain.Product, error) {
	var (
		p    domain.Product
		mime sql.NullString
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, description, price, category, image_data, image_mime_type
		 FROM products WHERE id = $1`, id).
		Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category, &p.ImageData, &mime)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, app.ErrNotFound
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("get product %d: %w", id, err)
	}

	p.ImageMimeType = mime.String
	return p, nil
}

func (r *ProductRepo) Save(ctx context.Context, p domain.Product) (domain.Product, error) {
	if p.ID == 0 {
		err := r.db.QueryRowContext(ctx,
			`INSERT INTO products (name, description, price, category) VALUES ($1, $2, $3, $4) RETURNING id`,
			p.Name, p.Description, p.Price, p.Category).
			Scan(&p.ID)
		if err != nil {
			return domain.Product{}, fmt.Errorf("insert product: %w", err)
		}
		return p, nil
	}

	// Unknown id is a deliberate no-op, not an error.
	_, err := r.db.ExecContext(ctx,
		`UPDATE products SET name = $2, description = $3, price = $4, category = $5 WHERE id = $1`,
		p.ID, p.Name, p.Description, p.Price, p.Category)
	if err != nil {
		return domain.Product{}, fmt.Errorf("update product %d: %w", p.ID, err)
	}

	return p, nil
}

func (r *ProductRepo) UpdateImage(ctx context.Context, id int64, data []byte, mimeType string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE products SET image_data = $2, image_mime_type = $3 WHERE id = $1`,
		id, data, mimeType)
	if err != nil {
		return fmt.Errorf("update product image %d: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update product image %d: %w", id, err)
	}
	if n == 0 {
		return app.ErrNotFound
	}

	return nil
}

func (r *ProductRepo) Delete(ctx context.Context, id int64) (domain.Product, error) {
	var p domain.Product
	err := r.db.QueryRowContext(ctx,
		`DELETE FROM products WHERE id = $1 RETURNING id, name, description, price, category`, id).
		Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, app.ErrNotFound
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("delete product %d: %w", id, err)
	}

	return p, nil
}
