package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/Harshith-45/Assignment-Twilight-Bus/internal/domain"
	"github.com/Harshith-45/Assignment-Twilight-Bus/internal/domain/models"
	"github.com/Harshith-45/Assignment-Twilight-Bus/internal/utils"
)

const defaultTokenTTL = 24 * time.Hour

// Claims is the payload of an access token.
type Claims struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// AuthService issues and checks HS256 bearer tokens.
type AuthService struct {
	Users     UserStore
	Secret    []byte
	TTL       time.Duration
	RequestID string
	Now       func() time.Time
}

func (s AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

var errBadCredentials = domain.UnauthorizedError{Msg: "invalid email or password"}

// Login checks the password and returns a signed token for the user.
func (s AuthService) Login(ctx context.Context, email, password string) (string, models.User, error) {
	user, err := s.Users.GetUserByEmail(ctx, utils.NormalizeEmail(email))
	if err != nil {
		if domain.IsNotFound(err) {
			return "", models.User{}, errBadCredentials
		}
		return "", models.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		utils.LogEvent(s.RequestID, "auth", "login", fmt.Sprintf("user_id=%d rejected", user.ID))
		return "", models.User{}, errBadCredentials
	}

	token, err := s.Issue(user)
	if err != nil {
		return "", models.User{}, err
	}
	utils.LogEvent(s.RequestID, "auth", "login", fmt.Sprintf("user_id=%d role=%s", user.ID, user.Role))
	return token, user, nil
}

func (s AuthService) Issue(user models.User) (string, error) {
	ttl := s.TTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	now := s.now()
	claims := Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
	if err != nil {
		return "", domain.InternalError{Msg: "sign token", Err: err}
	}
	return signed, nil
}

// ParseToken validates signature and expiry.
func (s AuthService) ParseToken(raw string) (Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		return s.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return Claims{}, domain.UnauthorizedError{Msg: "invalid token", Err: err}
	}
	if claims.UserID <= 0 || claims.Role == "" {
		return Claims{}, domain.UnauthorizedError{Msg: "invalid token"}
	}
	return claims, nil
}

// EnsureAdmin creates the admin login when it does not exist yet.
func (s AuthService) EnsureAdmin(ctx context.Context, email, password string) error {
	email = utils.NormalizeEmail(email)
	if email == "" || password == "" {
		return domain.ValidationError{Field: "admin", Msg: "email and password are required"}
	}
	_, err := s.Users.GetUserByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !domain.IsNotFound(err) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.InternalError{Msg: "hash password", Err: err}
	}
	admin := models.User{Role: models.RoleAdmin, Name: "Administrator", Email: email, PasswordHash: string(hash)}
	if err := s.Users.CreateUser(ctx, &admin); err != nil {
		var conflict domain.ConflictError
		if errors.As(err, &conflict) {
			return nil
		}
		return err
	}
	utils.LogEvent(s.RequestID, "auth", "seed_admin", fmt.Sprintf("user_id=%d", admin.ID))
	return nil
}
