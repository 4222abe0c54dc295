package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/safedrive/safedrive/internal/domain"
)

const productColumns = `id, name, description, coverage_type, base_price, features`

// ListProducts returns all insurance products ordered by base price
// ascending.
func (s *Store) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+productColumns+`
		FROM products
		ORDER BY base_price ASC, id ASC
	`)
	if err != nil {
		return nil, domain.StoreErr("query products", err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.CoverageType, &p.BasePrice, &p.Features); err != nil {
			return nil, domain.StoreErr("scan product", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StoreErr("iterate products", err)
	}

	return products, nil
}

// GetProduct fetches an insurance product by id.
func (s *Store) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	var p domain.Product
	err := s.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = ?`, id,
	).Scan(&p.ID, &p.Name, &p.Description, &p.CoverageType, &p.BasePrice, &p.Features)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, domain.NotFoundf("product with ID %d not found", id)
	}
	if err != nil {
		return domain.Product{}, domain.StoreErr("query product", err)
	}
	return p, nil
}
