package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	intdb "github.com/Harshith-45/Assignment-Twilight-Bus/internal/db"
	"github.com/Harshith-45/Assignment-Twilight-Bus/internal/domain"
	"github.com/Harshith-45/Assignment-Twilight-Bus/internal/domain/models"
)

type SettlementRepository struct {
	DB *sql.DB
}

func (r SettlementRepository) NextSettlementID(ctx context.Context) (int64, error) {
	var id int64
	err := r.DB.QueryRowContext(ctx, `SELECT COALESCE(MAX(id), 0) + 1 FROM settlements`).Scan(&id)
	return id, err
}

// ApplySettlement stores the batch and flips its trips to settled in one
// transaction. A trip that was settled concurrently aborts the whole batch.
func (r SettlementRepository) ApplySettlement(ctx context.Context, st models.Settlement) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO settlements (id, type, settlement_date, trip_count) VALUES (?, ?, ?, ?)`,
		st.ID, string(st.Type), st.Date, st.TripCount,
	); err != nil {
		if isDuplicate(err) {
			return domain.ConflictError{Resource: "settlement", Msg: "id already used", Err: err}
		}
		return err
	}

	for i, l := range st.Lines {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO settlement_lines (settlement_id, position, driver_id, driver_name, batta_amount, salary_amount, total_amount)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			st.ID, i, l.DriverID, l.DriverName, l.BattaAmount, l.SalaryAmount, l.TotalAmount,
		); err != nil {
			return fmt.Errorf("insert settlement line %d: %w", i, err)
		}
	}

	if len(st.TripIDs) > 0 {
		args := make([]any, 0, len(st.TripIDs)+1)
		args = append(args, st.ID)
		for _, id := range st.TripIDs {
			args = append(args, id)
		}
		res, err := tx.ExecContext(ctx,
			`UPDATE trips SET settled=1, settlement_id=? WHERE settled=0 AND id IN (`+intdb.Placeholders(len(st.TripIDs))+`)`,
			args...,
		)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n != int64(len(st.TripIDs)) {
			return domain.ConflictError{Resource: "settlement", Msg: "trip already settled"}
		}
	}

	return tx.Commit()
}

// ListSettlements returns the history, most recent first.
func (r SettlementRepository) ListSettlements(ctx context.Context) ([]models.Settlement, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, type, DATE_FORMAT(settlement_date, '%Y-%m-%d'), trip_count FROM settlements ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	out := []models.Settlement{}
	for rows.Next() {
		st, err := scanSettlement(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		out = append(out, st)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		if err := r.loadDetails(ctx, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r SettlementRepository) GetSettlement(ctx context.Context, id int64) (models.Settlement, error) {
	st, err := scanSettlement(r.DB.QueryRowContext(ctx,
		`SELECT id, type, DATE_FORMAT(settlement_date, '%Y-%m-%d'), trip_count FROM settlements WHERE id=?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Settlement{}, domain.NotFoundError{Resource: "settlement", Err: err}
		}
		return models.Settlement{}, err
	}
	if err := r.loadDetails(ctx, &st); err != nil {
		return models.Settlement{}, err
	}
	return st, nil
}

func scanSettlement(row rowScanner) (models.Settlement, error) {
	var st models.Settlement
	var typ string
	err := row.Scan(&st.ID, &typ, &st.Date, &st.TripCount)
	st.Type = models.SettlementType(typ)
	return st, err
}

func (r SettlementRepository) loadDetails(ctx context.Context, st *models.Settlement) error {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT driver_id, driver_name, batta_amount, salary_amount, total_amount
		 FROM settlement_lines WHERE settlement_id=? ORDER BY position`, st.ID)
	if err != nil {
		return err
	}
	st.Lines = []models.SettlementLine{}
	for rows.Next() {
		var l models.SettlementLine
		if err := rows.Scan(&l.DriverID, &l.DriverName, &l.BattaAmount, &l.SalaryAmount, &l.TotalAmount); err != nil {
			rows.Close()
			return err
		}
		st.Lines = append(st.Lines, l)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = r.DB.QueryContext(ctx, `SELECT id FROM trips WHERE settlement_id=? ORDER BY id`, st.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	st.TripIDs = []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return err
		}
		st.TripIDs = append(st.TripIDs, id)
	}
	return rows.Err()
}
