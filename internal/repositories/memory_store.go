package repositories

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/Harshith-45/Assignment-Twilight-Bus/internal/domain"
	"github.com/Harshith-45/Assignment-Twilight-Bus/internal/domain/models"
)

// MemoryStore keeps the whole application state in process. It is the single
// owner of drivers, trips and the settlement history; every method is safe for
// concurrent use.
type MemoryStore struct {
	mu sync.RWMutex

	routes      []models.Route
	users       []models.User
	drivers     []models.Driver
	trips       []models.Trip
	settlements []models.Settlement // most recent first

	lastUserID   int64
	lastDriverID int64
	lastTripID   int64
}

func NewMemoryStore(routes []models.Route) *MemoryStore {
	s := &MemoryStore{}
	s.routes = append(s.routes, routes...)
	sort.Slice(s.routes, func(i, j int) bool { return s.routes[i].ID < s.routes[j].ID })
	return s
}

func (s *MemoryStore) ListRoutes(ctx context.Context) ([]models.Route, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Route{}, s.routes...), nil
}

func (s *MemoryStore) CreateUser(ctx context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.emailTaken(u.Email) {
		return domain.ConflictError{Resource: "user", Msg: "email already registered"}
	}
	s.lastUserID++
	u.ID = s.lastUserID
	s.users = append(s.users, *u)
	return nil
}

func (s *MemoryStore) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return models.User{}, domain.NotFoundError{Resource: "user"}
}

func (s *MemoryStore) emailTaken(email string) bool {
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}

// RegisterDriver stores the login user and the pending driver together.
func (s *MemoryStore) RegisterDriver(ctx context.Context, u *models.User, d *models.Driver) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.emailTaken(u.Email) {
		return domain.ConflictError{Resource: "driver", Msg: "email already registered"}
	}
	s.lastUserID++
	u.ID = s.lastUserID
	s.lastDriverID++
	d.ID = s.lastDriverID
	d.UserID = u.ID
	s.users = append(s.users, *u)
	s.drivers = append(s.drivers, *d)
	return nil
}

func (s *MemoryStore) GetDriver(ctx context.Context, id int64) (models.Driver, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.driverIndex(id); i >= 0 {
		return s.drivers[i], nil
	}
	return models.Driver{}, domain.NotFoundError{Resource: "driver"}
}

func (s *MemoryStore) GetDriverByUserID(ctx context.Context, userID int64) (models.Driver, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.drivers {
		if d.UserID == userID {
			return d, nil
		}
	}
	return models.Driver{}, domain.NotFoundError{Resource: "driver"}
}

func (s *MemoryStore) ListDrivers(ctx context.Context) ([]models.Driver, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Driver{}, s.drivers...), nil
}

// ApproveDriver flips a pending driver to approved.
func (s *MemoryStore) ApproveDriver(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.driverIndex(id)
	if i < 0 {
		return domain.NotFoundError{Resource: "driver"}
	}
	if s.drivers[i].Approved {
		return domain.ConflictError{Resource: "driver", Msg: "already approved"}
	}
	s.drivers[i].Approved = true
	return nil
}

// DeleteDriver removes a pending driver and its login user.
func (s *MemoryStore) DeleteDriver(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.driverIndex(id)
	if i < 0 {
		return domain.NotFoundError{Resource: "driver"}
	}
	d := s.drivers[i]
	if d.Approved {
		return domain.ConflictError{Resource: "driver", Msg: "approved drivers cannot be removed"}
	}
	s.drivers = append(s.drivers[:i:i], s.drivers[i+1:]...)
	for j, u := range s.users {
		if u.ID == d.UserID {
			s.users = append(s.users[:j:j], s.users[j+1:]...)
			break
		}
	}
	return nil
}

func (s *MemoryStore) driverIndex(id int64) int {
	for i, d := range s.drivers {
		if d.ID == id {
			return i
		}
	}
	return -1
}

func (s *MemoryStore) CreateTrip(ctx context.Context, t *models.Trip) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastTripID++
	t.ID = s.lastTripID
	t.Settled = false
	s.trips = append(s.trips, *t)
	return nil
}

func (s *MemoryStore) ListTrips(ctx context.Context, f models.TripFilter) ([]models.Trip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Trip{}
	for _, t := range s.trips {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *MemoryStore) NextSettlementID(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var max int64
	for _, st := range s.settlements {
		if st.ID > max {
			max = st.ID
		}
	}
	return max + 1, nil
}

// ApplySettlement records st and marks its trips settled in one critical
// section. If any trip is unknown or already settled nothing changes.
func (s *MemoryStore) ApplySettlement(ctx context.Context, st models.Settlement) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.settlements {
		if existing.ID == st.ID {
			return domain.ConflictError{Resource: "settlement", Msg: "id already used"}
		}
	}
	state := make(map[int64]bool, len(s.trips))
	for _, t := range s.trips {
		state[t.ID] = t.Settled
	}
	for _, id := range st.TripIDs {
		settled, ok := state[id]
		if !ok {
			return domain.NotFoundError{Resource: "trip"}
		}
		if settled {
			return domain.ConflictError{Resource: "settlement", Msg: "trip already settled"}
		}
	}

	s.settlements, s.trips = domain.ApplySettlement(s.settlements, s.trips, cloneSettlement(st))
	return nil
}

func (s *MemoryStore) ListSettlements(ctx context.Context) ([]models.Settlement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Settlement, 0, len(s.settlements))
	for _, st := range s.settlements {
		out = append(out, cloneSettlement(st))
	}
	return out, nil
}

func (s *MemoryStore) GetSettlement(ctx context.Context, id int64) (models.Settlement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, st := range s.settlements {
		if st.ID == id {
			return cloneSettlement(st), nil
		}
	}
	return models.Settlement{}, domain.NotFoundError{Resource: "settlement"}
}

func (s *MemoryStore) Ping(ctx context.Context) error { return nil }

func cloneSettlement(st models.Settlement) models.Settlement {
	st.Lines = append([]models.SettlementLine{}, st.Lines...)
	st.TripIDs = append([]int64{}, st.TripIDs...)
	return st
}
