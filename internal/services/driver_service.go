package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Harshith-45/Assignment-Twilight-Bus/internal/domain"
	"github.com/Harshith-45/Assignment-Twilight-Bus/internal/domain/models"
	"github.com/Harshith-45/Assignment-Twilight-Bus/internal/utils"
)

const minPasswordLength = 6

// RegisterDriverInput is the self-registration form of a driver.
type RegisterDriverInput struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	License     string `json:"license"`
	PaymentMode string `json:"paymentMode"`
	Password    string `json:"password"`
}

// DriverService owns the driver approval flow.
type DriverService struct {
	Drivers   DriverStore
	RequestID string
	Now       func() time.Time
}

func (s DriverService) Register(ctx context.Context, in RegisterDriverInput) (models.Driver, error) {
	name := utils.NormalizeSpace(in.Name)
	email := utils.NormalizeEmail(in.Email)
	if name == "" {
		return models.Driver{}, domain.ValidationError{Field: "name", Msg: "required"}
	}
	if email == "" || !strings.Contains(email, "@") {
		return models.Driver{}, domain.ValidationError{Field: "email", Msg: "invalid email"}
	}
	if len(in.Password) < minPasswordLength {
		return models.Driver{}, domain.ValidationError{Field: "password", Msg: fmt.Sprintf("must be at least %d characters", minPasswordLength)}
	}
	mode, ok := models.ParsePaymentMode(in.PaymentMode)
	if !ok {
		return models.Driver{}, domain.ValidationError{Field: "paymentMode", Msg: "must be BATTAONLY, SALARYONLY or BOTH"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.Driver{}, domain.InternalError{Msg: "hash password", Err: err}
	}

	user := models.User{Role: models.RoleDriver, Name: name, Email: email, PasswordHash: string(hash)}
	driver := models.Driver{
		Name:           name,
		Email:          email,
		Phone:          utils.TrimOrEmpty(in.Phone),
		License:        strings.ToUpper(utils.TrimOrEmpty(in.License)),
		PaymentMode:    mode,
		Approved:       false,
		RegisteredDate: utils.Today(s.Now),
	}
	if err := s.Drivers.RegisterDriver(ctx, &user, &driver); err != nil {
		return models.Driver{}, err
	}
	utils.LogEvent(s.RequestID, "driver", "register", fmt.Sprintf("driver_id=%d mode=%s", driver.ID, driver.PaymentMode))
	return driver, nil
}

func (s DriverService) Approve(ctx context.Context, id int64) (models.Driver, error) {
	d, err := s.transition(ctx, id, models.DriverApproved)
	if err != nil {
		return models.Driver{}, err
	}
	if err := s.Drivers.ApproveDriver(ctx, id); err != nil {
		return models.Driver{}, err
	}
	d.Approved = true
	utils.LogEvent(s.RequestID, "driver", "approve", fmt.Sprintf("driver_id=%d", id))
	return d, nil
}

// Reject removes a pending registration and its login.
func (s DriverService) Reject(ctx context.Context, id int64) error {
	if _, err := s.transition(ctx, id, models.DriverRemoved); err != nil {
		return err
	}
	if err := s.Drivers.DeleteDriver(ctx, id); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "driver", "reject", fmt.Sprintf("driver_id=%d", id))
	return nil
}

func (s DriverService) transition(ctx context.Context, id int64, to models.DriverStatus) (models.Driver, error) {
	if id <= 0 {
		return models.Driver{}, domain.ValidationError{Field: "id", Msg: "invalid id"}
	}
	d, err := s.Drivers.GetDriver(ctx, id)
	if err != nil {
		return models.Driver{}, err
	}
	if !domain.CanTransition(d.Status(), to) {
		return models.Driver{}, domain.ConflictError{
			Resource: "driver",
			Msg:      fmt.Sprintf("cannot move from %s to %s", d.Status(), to),
		}
	}
	return d, nil
}

// List returns drivers, optionally narrowed to "pending" or "approved".
func (s DriverService) List(ctx context.Context, status string) ([]models.Driver, error) {
	want := models.DriverStatus(strings.ToLower(strings.TrimSpace(status)))
	switch want {
	case "", models.DriverPending, models.DriverApproved:
	default:
		return nil, domain.ValidationError{Field: "status", Msg: "must be pending or approved"}
	}
	all, err := s.Drivers.ListDrivers(ctx)
	if err != nil {
		return nil, err
	}
	if want == "" {
		return all, nil
	}
	out := []models.Driver{}
	for _, d := range all {
		if d.Status() == want {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s DriverService) Get(ctx context.Context, id int64) (models.Driver, error) {
	return s.Drivers.GetDriver(ctx, id)
}

func (s DriverService) GetByUserID(ctx context.Context, userID int64) (models.Driver, error) {
	return s.Drivers.GetDriverByUserID(ctx, userID)
}
