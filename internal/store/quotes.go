package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/safedrive/safedrive/internal/domain"
)

// GetQuote fetches a quote by id.
func (s *Store) GetQuote(ctx context.Context, id int64) (domain.Quote, error) {
	var q domain.Quote
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, vehicle_id, product_id, price, status, created_at
		FROM quotes WHERE id = ?
	`, id).Scan(&q.ID, &q.UserID, &q.VehicleID, &q.ProductID, &q.Price, &q.Status, &q.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Quote{}, domain.NotFoundf("quote with ID %d not found", id)
	}
	if err != nil {
		return domain.Quote{}, domain.StoreErr("query quote", err)
	}
	return q, nil
}

// ListQuotesByUser returns a user's quotes joined with vehicle and
// product details, newest first.
func (s *Store) ListQuotesByUser(ctx context.Context, userID int64) ([]domain.UserQuote, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT q.id, q.user_id, q.vehicle_id, q.product_id, q.price, q.status, q.created_at,
		       v.make, v.model, v.year,
		       p.name, p.coverage_type
		FROM quotes q
		JOIN vehicles v ON q.vehicle_id = v.id
		JOIN products p ON q.product_id = p.id
		WHERE q.user_id = ?
		ORDER BY datetime(q.created_at) DESC, q.id DESC
	`, userID)
	if err != nil {
		return nil, domain.StoreErr("query user quotes", err)
	}
	defer rows.Close()

	quotes := make([]domain.UserQuote, 0)
	for rows.Next() {
		var q domain.UserQuote
		if err := rows.Scan(&q.ID, &q.UserID, &q.VehicleID, &q.ProductID, &q.Price, &q.Status, &q.CreatedAt,
			&q.VehicleMake, &q.VehicleModel, &q.VehicleYear,
			&q.ProductName, &q.CoverageType); err != nil {
			return nil, domain.StoreErr("scan user quote", err)
		}
		quotes = append(quotes, q)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StoreErr("iterate user quotes", err)
	}

	return quotes, nil
}

// ListRecentQuotes returns the most recent quotes across all users,
// joined with owner, vehicle and product details.
func (s *Store) ListRecentQuotes(ctx context.Context, limit int) ([]domain.RecentQuote, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT q.id, q.user_id, q.vehicle_id, q.product_id, q.price, q.status, q.created_at,
		       v.make, v.model, v.year,
		       p.name, p.coverage_type,
		       u.username
		FROM quotes q
		JOIN users u ON q.user_id = u.id
		JOIN vehicles v ON q.vehicle_id = v.id
		JOIN products p ON q.product_id = p.id
		ORDER BY datetime(q.created_at) DESC, q.id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, domain.StoreErr("query recent quotes", err)
	}
	defer rows.Close()

	quotes := make([]domain.RecentQuote, 0)
	for rows.Next() {
		var q domain.RecentQuote
		if err := rows.Scan(&q.ID, &q.UserID, &q.VehicleID, &q.ProductID, &q.Price, &q.Status, &q.CreatedAt,
			&q.VehicleMake, &q.VehicleModel, &q.VehicleYear,
			&q.ProductName, &q.CoverageType,
			&q.Username); err != nil {
			return nil, domain.StoreErr("scan recent quote", err)
		}
		quotes = append(quotes, q)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StoreErr("iterate recent quotes", err)
	}

	return quotes, nil
}

// InsertQuote persists a new quote and returns it with its assigned id
// and creation timestamp. Status defaults to pending when empty.
func (s *Store) InsertQuote(ctx context.Context, q domain.Quote) (domain.Quote, error) {
	status := q.Status
	if status == "" {
		status = domain.StatusPending
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO quotes (user_id, vehicle_id, product_id, price, status)
		VALUES (?, ?, ?, ?, ?)
	`, q.UserID, q.VehicleID, q.ProductID, q.Price, status)
	if err != nil {
		return domain.Quote{}, domain.StoreErr("insert quote", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return domain.Quote{}, domain.StoreErr("read inserted quote id", err)
	}

	return s.GetQuote(ctx, id)
}
