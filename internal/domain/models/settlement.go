package models

import "strings"

type SettlementType string

const (
	SettlementWeekly  SettlementType = "weekly"
	SettlementMonthly SettlementType = "monthly"
)

func ParseSettlementType(s string) (SettlementType, bool) {
	switch SettlementType(strings.ToLower(strings.TrimSpace(s))) {
	case SettlementWeekly:
		return SettlementWeekly, true
	case SettlementMonthly:
		return SettlementMonthly, true
	default:
		return "", false
	}
}

// SettlementLine is one driver's share of a settlement. DriverName is a
// snapshot taken when the batch was built.
type SettlementLine struct {
	DriverID     int64  `json:"driverId"`
	DriverName   string `json:"driverName"`
	BattaAmount  int64  `json:"battaAmount"`
	SalaryAmount int64  `json:"salaryAmount"`
	TotalAmount  int64  `json:"totalAmount"`
}

// Settlement is an immutable batch in the settlement history.
type Settlement struct {
	ID        int64            `json:"id"`
	Type      SettlementType   `json:"type"`
	Date      string           `json:"date"`
	Lines     []SettlementLine `json:"drivers"`
	TripCount int              `json:"tripCount"`
	TripIDs   []int64          `json:"tripIds"`
}

func (s Settlement) TotalAmount() int64 {
	var sum int64
	for _, l := range s.Lines {
		sum += l.TotalAmount
	}
	return sum
}
