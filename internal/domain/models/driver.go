package models

import "strings"

// PaymentMode selects which tariff components a driver is paid.
type PaymentMode string

const (
	PaymentBattaOnly  PaymentMode = "BATTAONLY"
	PaymentSalaryOnly PaymentMode = "SALARYONLY"
	PaymentBoth       PaymentMode = "BOTH"
)

// ParsePaymentMode accepts the wire values plus the underscored spellings.
func ParsePaymentMode(s string) (PaymentMode, bool) {
	v := strings.ToUpper(strings.TrimSpace(s))
	v = strings.ReplaceAll(v, "_", "")
	switch PaymentMode(v) {
	case PaymentBattaOnly, PaymentSalaryOnly, PaymentBoth:
		return PaymentMode(v), true
	default:
		return "", false
	}
}

// DriverStatus is the approval state of a driver record.
type DriverStatus string

const (
	DriverPending  DriverStatus = "pending"
	DriverApproved DriverStatus = "approved"
	// DriverRemoved is never stored; rejection deletes the record.
	DriverRemoved DriverStatus = "removed"
)

type Driver struct {
	ID             int64       `json:"id"`
	UserID         int64       `json:"userId"`
	Name           string      `json:"name"`
	Email          string      `json:"email"`
	Phone          string      `json:"phone"`
	License        string      `json:"license"`
	PaymentMode    PaymentMode `json:"paymentMode"`
	Approved       bool        `json:"approved"`
	RegisteredDate string      `json:"registeredDate"`
}

func (d Driver) Status() DriverStatus {
	if d.Approved {
		return DriverApproved
	}
	return DriverPending
}
