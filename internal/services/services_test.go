package services

import (
	"context"
	"testing"
	"time"

	"github.com/Harshith-45/Assignment-Twilight-Bus/internal/domain/models"
	"github.com/Harshith-45/Assignment-Twilight-Bus/internal/repositories"
)

func fixedNow() time.Time {
	return time.Date(2024, 1, 7, 12, 0, 0, 0, time.Local)
}

type fixture struct {
	store       *repositories.MemoryStore
	drivers     DriverService
	trips       TripService
	settlements SettlementService
}

func newFixture() fixture {
	store := repositories.NewMemoryStore(models.DefaultRoutes())
	return fixture{
		store:   store,
		drivers: DriverService{Drivers: store, Now: fixedNow},
		trips:   TripService{Routes: store, Drivers: store, Trips: store, Now: fixedNow},
		settlements: SettlementService{
			Routes: store, Drivers: store, Trips: store, Settlements: store,
			Locker: &LocalLocker{}, Now: fixedNow,
		},
	}
}

// approvedDriver registers and approves a driver with the given mode.
func (f fixture) approvedDriver(t *testing.T, email, mode string) models.Driver {
	t.Helper()
	ctx := context.Background()
	d, err := f.drivers.Register(ctx, RegisterDriverInput{
		Name: "Driver " + email, Email: email, Phone: "9000000000", License: "dl-1",
		PaymentMode: mode, Password: "secret1",
	})
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	d, err = f.drivers.Approve(ctx, d.ID)
	if err != nil {
		t.Fatalf("approve %s: %v", email, err)
	}
	return d
}

func (f fixture) logTrip(t *testing.T, driverID, routeID int64) models.TripWithPayment {
	t.Helper()
	trip, err := f.trips.LogTrip(context.Background(), driverID, routeID, "ka 01 ab 1234")
	if err != nil {
		t.Fatalf("log trip: %v", err)
	}
	return trip
}
