package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Harshith-45/Assignment-Twilight-Bus/internal/domain"
	"github.com/Harshith-45/Assignment-Twilight-Bus/internal/domain/models"
)

type DriverRepository struct {
	DB *sql.DB
}

const driverColumns = `id, user_id, name, email, phone, license, payment_mode, approved, DATE_FORMAT(registered_date, '%Y-%m-%d')`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDriver(row rowScanner) (models.Driver, error) {
	var d models.Driver
	var mode string
	err := row.Scan(&d.ID, &d.UserID, &d.Name, &d.Email, &d.Phone, &d.License, &mode, &d.Approved, &d.RegisteredDate)
	d.PaymentMode = models.PaymentMode(mode)
	return d, err
}

// RegisterDriver inserts the login user and the driver row in one transaction.
func (r DriverRepository) RegisterDriver(ctx context.Context, u *models.User, d *models.Driver) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO users (role, name, email, password_hash) VALUES (?, ?, ?, ?)`,
		u.Role, u.Name, u.Email, u.PasswordHash,
	)
	if err != nil {
		if isDuplicate(err) {
			return domain.ConflictError{Resource: "driver", Msg: "email already registered", Err: err}
		}
		return err
	}
	userID, err := res.LastInsertId()
	if err != nil {
		return err
	}

	res, err = tx.ExecContext(ctx,
		`INSERT INTO drivers (user_id, name, email, phone, license, payment_mode, approved, registered_date)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		userID, d.Name, d.Email, d.Phone, d.License, string(d.PaymentMode), d.Approved, d.RegisteredDate,
	)
	if err != nil {
		if isDuplicate(err) {
			return domain.ConflictError{Resource: "driver", Msg: "email already registered", Err: err}
		}
		return err
	}
	driverID, err := res.LastInsertId()
	if err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	u.ID = userID
	d.ID = driverID
	d.UserID = userID
	return nil
}

func (r DriverRepository) GetDriver(ctx context.Context, id int64) (models.Driver, error) {
	d, err := scanDriver(r.DB.QueryRowContext(ctx, `SELECT `+driverColumns+` FROM drivers WHERE id=?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Driver{}, domain.NotFoundError{Resource: "driver", Err: err}
	}
	return d, err
}

func (r DriverRepository) GetDriverByUserID(ctx context.Context, userID int64) (models.Driver, error) {
	d, err := scanDriver(r.DB.QueryRowContext(ctx, `SELECT `+driverColumns+` FROM drivers WHERE user_id=? LIMIT 1`, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Driver{}, domain.NotFoundError{Resource: "driver", Err: err}
	}
	return d, err
}

func (r DriverRepository) ListDrivers(ctx context.Context) ([]models.Driver, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+driverColumns+` FROM drivers ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Driver{}
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r DriverRepository) ApproveDriver(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE drivers SET approved=1 WHERE id=? AND approved=0`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 1 {
		return nil
	}
	if _, err := r.GetDriver(ctx, id); err != nil {
		return err
	}
	return domain.ConflictError{Resource: "driver", Msg: "already approved"}
}

// DeleteDriver removes a pending driver together with its login user.
func (r DriverRepository) DeleteDriver(ctx context.Context, id int64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var userID int64
	var approved bool
	err = tx.QueryRowContext(ctx, `SELECT user_id, approved FROM drivers WHERE id=? FOR UPDATE`, id).Scan(&userID, &approved)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundError{Resource: "driver", Err: err}
		}
		return err
	}
	if approved {
		return domain.ConflictError{Resource: "driver", Msg: "approved drivers cannot be removed"}
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM drivers WHERE id=?`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id=?`, userID); err != nil {
		return err
	}
	return tx.Commit()
}
