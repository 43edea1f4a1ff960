package repositories

import (
	"context"
	"database/sql"
	"strings"

	"github.com/Harshith-45/Assignment-Twilight-Bus/internal/domain/models"
)

type TripRepository struct {
	DB *sql.DB
}

func (r TripRepository) CreateTrip(ctx context.Context, t *models.Trip) error {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO trips (route_id, driver_id, trip_date, vehicle, settled) VALUES (?, ?, ?, ?, 0)`,
		t.RouteID, t.DriverID, t.Date, t.Vehicle,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = id
	t.Settled = false
	return nil
}

// ListTrips returns trips in ledger order.
func (r TripRepository) ListTrips(ctx context.Context, f models.TripFilter) ([]models.Trip, error) {
	where := []string{}
	args := []any{}
	if f.DriverID != nil {
		where = append(where, "driver_id=?")
		args = append(args, *f.DriverID)
	}
	if f.Settled != nil {
		where = append(where, "settled=?")
		args = append(args, *f.Settled)
	}

	query := `SELECT id, route_id, driver_id, DATE_FORMAT(trip_date, '%Y-%m-%d'), vehicle, settled FROM trips`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY id`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Trip{}
	for rows.Next() {
		var t models.Trip
		if err := rows.Scan(&t.ID, &t.RouteID, &t.DriverID, &t.Date, &t.Vehicle, &t.Settled); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
