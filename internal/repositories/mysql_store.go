package repositories

import (
	"context"
	"database/sql"
)

// MySQLStore bundles the MySQL repositories behind the same method set as
// MemoryStore.
type MySQLStore struct {
	RouteRepository
	UserRepository
	DriverRepository
	TripRepository
	SettlementRepository

	DB *sql.DB
}

func NewMySQLStore(db *sql.DB) *MySQLStore {
	return &MySQLStore{
		RouteRepository:      RouteRepository{DB: db},
		UserRepository:       UserRepository{DB: db},
		DriverRepository:     DriverRepository{DB: db},
		TripRepository:       TripRepository{DB: db},
		SettlementRepository: SettlementRepository{DB: db},
		DB:                   db,
	}
}

func (s *MySQLStore) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}
