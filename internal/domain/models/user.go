package models

const (
	RoleAdmin  = "admin"
	RoleDriver = "driver"
)

// User is a login identity. Drivers get one on registration.
type User struct {
	ID           int64  `json:"id"`
	Role         string `json:"role"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
}
