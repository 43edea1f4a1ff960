package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"

	"github.com/Harshith-45/Assignment-Twilight-Bus/internal/domain"
	"github.com/Harshith-45/Assignment-Twilight-Bus/internal/domain/models"
)

const mysqlDuplicateEntry = 1062

type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) CreateUser(ctx context.Context, u *models.User) error {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO users (role, name, email, password_hash) VALUES (?, ?, ?, ?)`,
		u.Role, u.Name, u.Email, u.PasswordHash,
	)
	if err != nil {
		if isDuplicate(err) {
			return domain.ConflictError{Resource: "user", Msg: "email already registered", Err: err}
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = id
	return nil
}

func (r UserRepository) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, role, name, email, password_hash FROM users WHERE email=? LIMIT 1`, email,
	).Scan(&u.ID, &u.Role, &u.Name, &u.Email, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, domain.NotFoundError{Resource: "user", Err: err}
		}
		return models.User{}, err
	}
	return u, nil
}

func isDuplicate(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDuplicateEntry
}
