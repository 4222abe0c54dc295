package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/safedrive/safedrive/internal/domain"
)

const userColumns = `id, username, password_hash, email, first_name, last_name, phone, created_at`

func scanUser(row *sql.Row) (domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Email,
		&u.FirstName, &u.LastName, &u.Phone, &u.CreatedAt)
	return u, err
}

// GetUser fetches a user by id.
func (s *Store) GetUser(ctx context.Context, id int64) (domain.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, domain.NotFoundf("user with ID %d not found", id)
	}
	if err != nil {
		return domain.User{}, domain.StoreErr("query user", err)
	}
	return u, nil
}

// FindUserByUsername fetches a user by exact username.
func (s *Store) FindUserByUsername(ctx context.Context, username string) (domain.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, domain.NotFoundf("user '%s' not found", username)
	}
	if err != nil {
		return domain.User{}, domain.StoreErr("query user by username", err)
	}
	return u, nil
}

// SearchUsers finds users matching the filter. Name filters are
// case-insensitive substring matches, AND-combined; a license plate
// joins through the vehicles table. An empty match is not an error.
func (s *Store) SearchUsers(ctx context.Context, f domain.UserFilter) ([]domain.User, error) {
	query := `SELECT DISTINCT u.id, u.username, u.password_hash, u.email, u.first_name, u.last_name, u.phone, u.created_at
		FROM users u`
	args := []any{}

	if f.LicensePlate != "" {
		query += ` JOIN vehicles v ON v.user_id = u.id`
	}
	query += ` WHERE 1 = 1`
	if f.LicensePlate != "" {
		query += ` AND v.license_plate LIKE ?`
		args = append(args, "%"+f.LicensePlate+"%")
	}
	if f.FirstName != "" {
		query += ` AND u.first_name LIKE ?`
		args = append(args, "%"+f.FirstName+"%")
	}
	if f.LastName != "" {
		query += ` AND u.last_name LIKE ?`
		args = append(args, "%"+f.LastName+"%")
	}
	query += ` ORDER BY u.id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, domain.StoreErr("search users", err)
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Email,
			&u.FirstName, &u.LastName, &u.Phone, &u.CreatedAt); err != nil {
			return nil, domain.StoreErr("scan user", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StoreErr("iterate users", err)
	}

	return users, nil
}
