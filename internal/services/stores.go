package services

import (
	"context"
	"sync"

	"github.com/Harshith-45/Assignment-Twilight-Bus/internal/domain/models"
)

type RouteStore interface {
	ListRoutes(ctx context.Context) ([]models.Route, error)
}

type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
}

type DriverStore interface {
	RegisterDriver(ctx context.Context, u *models.User, d *models.Driver) error
	GetDriver(ctx context.Context, id int64) (models.Driver, error)
	GetDriverByUserID(ctx context.Context, userID int64) (models.Driver, error)
	ListDrivers(ctx context.Context) ([]models.Driver, error)
	ApproveDriver(ctx context.Context, id int64) error
	DeleteDriver(ctx context.Context, id int64) error
}

type TripStore interface {
	CreateTrip(ctx context.Context, t *models.Trip) error
	ListTrips(ctx context.Context, f models.TripFilter) ([]models.Trip, error)
}

type SettlementStore interface {
	NextSettlementID(ctx context.Context) (int64, error)
	ApplySettlement(ctx context.Context, st models.Settlement) error
	ListSettlements(ctx context.Context) ([]models.Settlement, error)
	GetSettlement(ctx context.Context, id int64) (models.Settlement, error)
}

// Store is everything the services need from persistence. Both
// repositories.MemoryStore and repositories.MySQLStore satisfy it.
type Store interface {
	RouteStore
	UserStore
	DriverStore
	TripStore
	SettlementStore
	Ping(ctx context.Context) error
}

// Locker serialises settlement runs. Lock blocks until the lock is held or
// ctx is done.
type Locker interface {
	Lock(ctx context.Context) (unlock func(), err error)
}

// LocalLocker is a process-local Locker.
type LocalLocker struct {
	ch   chan struct{}
	once sync.Once
}

func (l *LocalLocker) Lock(ctx context.Context) (func(), error) {
	l.once.Do(func() { l.ch = make(chan struct{}, 1) })
	select {
	case l.ch <- struct{}{}:
		var released sync.Once
		return func() { released.Do(func() { <-l.ch }) }, nil
	case <-ctx.Done():
		return func() {}, ctx.Err()
	}
}

var defaultLocker = &LocalLocker{}

func driverIndex(drivers []models.Driver) map[int64]models.Driver {
	out := make(map[int64]models.Driver, len(drivers))
	for _, d := range drivers {
		out[d.ID] = d
	}
	return out
}
