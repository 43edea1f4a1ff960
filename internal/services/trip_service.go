package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Harshith-45/Assignment-Twilight-Bus/internal/domain"
	"github.com/Harshith-45/Assignment-Twilight-Bus/internal/domain/models"
	"github.com/Harshith-45/Assignment-Twilight-Bus/internal/utils"
)

// TripService records trips and reads the ledger with payouts attached.
type TripService struct {
	Routes    RouteStore
	Drivers   DriverStore
	Trips     TripStore
	RequestID string
	Now       func() time.Time
}

// Earnings summarises a driver's ledger.
type Earnings struct {
	PendingAmount int64 `json:"pendingAmount"`
	SettledAmount int64 `json:"settledAmount"`
	TripCount     int   `json:"tripCount"`
	PendingTrips  int   `json:"pendingTrips"`
	SettledTrips  int   `json:"settledTrips"`
}

// LogTrip records a trip for today. Only approved drivers may log trips.
func (s TripService) LogTrip(ctx context.Context, driverID, routeID int64, vehicle string) (models.TripWithPayment, error) {
	driver, err := s.Drivers.GetDriver(ctx, driverID)
	if err != nil {
		return models.TripWithPayment{}, err
	}
	if !driver.Approved {
		return models.TripWithPayment{}, domain.ValidationError{Field: "driver", Msg: "driver is not approved"}
	}
	routes, err := s.Routes.ListRoutes(ctx)
	if err != nil {
		return models.TripWithPayment{}, err
	}
	route := models.FindRoute(routes, routeID)
	if route == nil {
		return models.TripWithPayment{}, domain.ValidationError{Field: "routeId", Msg: "unknown route"}
	}
	vehicle = utils.NormalizeVehicle(vehicle)
	if vehicle == "" {
		return models.TripWithPayment{}, domain.ValidationError{Field: "vehicle", Msg: "required"}
	}

	trip := models.Trip{
		RouteID:  route.ID,
		DriverID: driver.ID,
		Date:     utils.Today(s.Now),
		Vehicle:  vehicle,
	}
	if err := s.Trips.CreateTrip(ctx, &trip); err != nil {
		return models.TripWithPayment{}, err
	}
	utils.LogEvent(s.RequestID, "trip", "log", fmt.Sprintf("trip_id=%d driver_id=%d route_id=%d", trip.ID, driver.ID, route.ID))

	return models.TripWithPayment{
		Trip:      trip,
		RouteName: route.Name,
		Payment:   domain.ComputePayment(trip, &driver, route),
	}, nil
}

func (s TripService) ListDriverTrips(ctx context.Context, driverID int64) ([]models.TripWithPayment, error) {
	return s.list(ctx, models.TripFilter{DriverID: &driverID})
}

// ListTrips is the admin view of the ledger. A nil settled lists everything.
func (s TripService) ListTrips(ctx context.Context, settled *bool) ([]models.TripWithPayment, error) {
	return s.list(ctx, models.TripFilter{Settled: settled})
}

func (s TripService) DriverEarnings(ctx context.Context, driverID int64) (Earnings, error) {
	trips, err := s.ListDriverTrips(ctx, driverID)
	if err != nil {
		return Earnings{}, err
	}
	var e Earnings
	for _, t := range trips {
		e.TripCount++
		if t.Settled {
			e.SettledTrips++
			e.SettledAmount += t.Payment.Total
		} else {
			e.PendingTrips++
			e.PendingAmount += t.Payment.Total
		}
	}
	return e, nil
}

func (s TripService) list(ctx context.Context, f models.TripFilter) ([]models.TripWithPayment, error) {
	trips, err := s.Trips.ListTrips(ctx, f)
	if err != nil {
		return nil, err
	}
	routes, err := s.Routes.ListRoutes(ctx)
	if err != nil {
		return nil, err
	}
	drivers, err := s.Drivers.ListDrivers(ctx)
	if err != nil {
		return nil, err
	}
	byID := driverIndex(drivers)

	out := make([]models.TripWithPayment, 0, len(trips))
	for _, t := range trips {
		row := models.TripWithPayment{Trip: t, Payment: domain.PaymentForTrip(t, byID, routes)}
		if r := models.FindRoute(routes, t.RouteID); r != nil {
			row.RouteName = r.Name
		}
		out = append(out, row)
	}
	return out, nil
}
