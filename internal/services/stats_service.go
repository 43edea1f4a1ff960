package services

import (
	"context"

	"github.com/Harshith-45/Assignment-Twilight-Bus/internal/domain/models"
)

type AdminStats struct {
	PendingApprovals int `json:"pendingApprovals"`
	ActiveDrivers    int `json:"activeDrivers"`
	PendingTrips     int `json:"pendingTrips"`
	Settlements      int `json:"settlements"`
}

// StatsService feeds the admin dashboard counters.
type StatsService struct {
	Drivers     DriverStore
	Trips       TripStore
	Settlements SettlementStore
}

func (s StatsService) Admin(ctx context.Context) (AdminStats, error) {
	var out AdminStats
	drivers, err := s.Drivers.ListDrivers(ctx)
	if err != nil {
		return out, err
	}
	for _, d := range drivers {
		if d.Approved {
			out.ActiveDrivers++
		} else {
			out.PendingApprovals++
		}
	}

	unsettled := false
	trips, err := s.Trips.ListTrips(ctx, models.TripFilter{Settled: &unsettled})
	if err != nil {
		return out, err
	}
	out.PendingTrips = len(trips)

	history, err := s.Settlements.ListSettlements(ctx)
	if err != nil {
		return out, err
	}
	out.Settlements = len(history)
	return out, nil
}
