package repositories

import (
	"context"
	"database/sql"

	"github.com/Harshith-45/Assignment-Twilight-Bus/internal/domain/models"
)

type RouteRepository struct {
	DB *sql.DB
}

func (r RouteRepository) ListRoutes(ctx context.Context) ([]models.Route, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, name, batta_per_trip, salary_per_trip FROM routes ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Route{}
	for rows.Next() {
		var rt models.Route
		if err := rows.Scan(&rt.ID, &rt.Name, &rt.BattaPerTrip, &rt.SalaryPerTrip); err != nil {
			return nil, err
		}
		out = append(out, rt)
	}
	return out, rows.Err()
}

// SeedRoutes inserts the tariff table, leaving rows that already exist alone.
func (r RouteRepository) SeedRoutes(ctx context.Context, routes []models.Route) error {
	for _, rt := range routes {
		if _, err := r.DB.ExecContext(ctx,
			`INSERT IGNORE INTO routes (id, name, batta_per_trip, salary_per_trip) VALUES (?, ?, ?, ?)`,
			rt.ID, rt.Name, rt.BattaPerTrip, rt.SalaryPerTrip,
		); err != nil {
			return err
		}
	}
	return nil
}
