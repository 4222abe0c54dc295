package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/safedrive/safedrive/internal/domain"
)

const vehicleColumns = `id, user_id, make, model, year, license_plate, value, mileage, created_at`

func scanVehicleRows(rows *sql.Rows) ([]domain.Vehicle, error) {
	vehicles := make([]domain.Vehicle, 0)
	for rows.Next() {
		var v domain.Vehicle
		if err := rows.Scan(&v.ID, &v.UserID, &v.Make, &v.Model, &v.Year,
			&v.LicensePlate, &v.Value, &v.Mileage, &v.CreatedAt); err != nil {
			return nil, domain.StoreErr("scan vehicle", err)
		}
		vehicles = append(vehicles, v)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StoreErr("iterate vehicles", err)
	}
	return vehicles, nil
}

// GetVehicle fetches a vehicle by id.
func (s *Store) GetVehicle(ctx context.Context, id int64) (domain.Vehicle, error) {
	var v domain.Vehicle
	err := s.db.QueryRowContext(ctx,
		`SELECT `+vehicleColumns+` FROM vehicles WHERE id = ?`, id,
	).Scan(&v.ID, &v.UserID, &v.Make, &v.Model, &v.Year,
		&v.LicensePlate, &v.Value, &v.Mileage, &v.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Vehicle{}, domain.NotFoundf("vehicle with ID %d not found", id)
	}
	if err != nil {
		return domain.Vehicle{}, domain.StoreErr("query vehicle", err)
	}
	return v, nil
}

// ListVehiclesByUser returns a user's vehicles, newest first.
func (s *Store) ListVehiclesByUser(ctx context.Context, userID int64) ([]domain.Vehicle, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+vehicleColumns+`
		FROM vehicles
		WHERE user_id = ?
		ORDER BY datetime(created_at) DESC, id DESC
	`, userID)
	if err != nil {
		return nil, domain.StoreErr("query user vehicles", err)
	}
	defer rows.Close()

	return scanVehicleRows(rows)
}

// SearchVehicles finds vehicles matching the filter. A license plate
// criterion is exclusive: when present all other filters are ignored.
// Otherwise the provided filters are AND-combined. An empty match is
// not an error.
func (s *Store) SearchVehicles(ctx context.Context, f domain.VehicleFilter) ([]domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE 1 = 1`
	args := []any{}

	if f.LicensePlate != "" {
		query += ` AND license_plate LIKE ?`
		args = append(args, "%"+f.LicensePlate+"%")
	} else {
		if f.Make != "" {
			query += ` AND make LIKE ?`
			args = append(args, "%"+f.Make+"%")
		}
		if f.Model != "" {
			query += ` AND model LIKE ?`
			args = append(args, "%"+f.Model+"%")
		}
		if f.MaxMileage != nil {
			query += ` AND mileage <= ?`
			args = append(args, *f.MaxMileage)
		}
		if f.MinValue != nil {
			query += ` AND value >= ?`
			args = append(args, *f.MinValue)
		}
	}
	query += ` ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, domain.StoreErr("search vehicles", err)
	}
	defer rows.Close()

	return scanVehicleRows(rows)
}
