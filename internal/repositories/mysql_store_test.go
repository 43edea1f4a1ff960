package repositories

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"

	"github.com/Harshith-45/Assignment-Twilight-Bus/internal/domain"
	"github.com/Harshith-45/Assignment-Twilight-Bus/internal/domain/models"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func checkExpectations(t *testing.T, mock sqlmock.Sqlmock) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRouteRepository_ListRoutes(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(`SELECT id, name, batta_per_trip, salary_per_trip FROM routes`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "batta", "salary"}).
			AddRow(1, "City A - City B", 500, 700).
			AddRow(2, "City B - City C", 400, 600))

	routes, err := RouteRepository{DB: db}.ListRoutes(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(routes) != 2 || routes[0].BattaPerTrip != 500 || routes[1].SalaryPerTrip != 600 {
		t.Fatalf("unexpected routes: %+v", routes)
	}
	checkExpectations(t, mock)
}

func TestRouteRepository_SeedRoutes(t *testing.T) {
	db, mock := newMock(t)
	for _, rt := range models.DefaultRoutes() {
		mock.ExpectExec(`INSERT IGNORE INTO routes`).
			WithArgs(rt.ID, rt.Name, rt.BattaPerTrip, rt.SalaryPerTrip).
			WillReturnResult(sqlmock.NewResult(rt.ID, 1))
	}
	if err := (RouteRepository{DB: db}).SeedRoutes(context.Background(), models.DefaultRoutes()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	checkExpectations(t, mock)
}

func TestUserRepository_GetUserByEmailNotFound(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(`FROM users WHERE email=\?`).WithArgs("x@example.com").WillReturnError(sql.ErrNoRows)

	_, err := UserRepository{DB: db}.GetUserByEmail(context.Background(), "x@example.com")
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	checkExpectations(t, mock)
}

func TestDriverRepository_RegisterDriver(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO users`).
		WithArgs(models.RoleDriver, "Ravi", "ravi@example.com", "hash").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectExec(`INSERT INTO drivers`).
		WithArgs(int64(7), "Ravi", "ravi@example.com", "999", "DL-1", "BOTH", false, "2024-01-01").
		WillReturnResult(sqlmock.NewResult(3, 1))
	mock.ExpectCommit()

	u := models.User{Role: models.RoleDriver, Name: "Ravi", Email: "ravi@example.com", PasswordHash: "hash"}
	d := models.Driver{Name: "Ravi", Email: "ravi@example.com", Phone: "999", License: "DL-1",
		PaymentMode: models.PaymentBoth, RegisteredDate: "2024-01-01"}
	if err := (DriverRepository{DB: db}).RegisterDriver(context.Background(), &u, &d); err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.ID != 7 || d.ID != 3 || d.UserID != 7 {
		t.Fatalf("ids not assigned: user=%d driver=%d/%d", u.ID, d.ID, d.UserID)
	}
	checkExpectations(t, mock)
}

func TestDriverRepository_RegisterDriverDuplicate(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO users`).WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
	mock.ExpectRollback()

	u := models.User{Email: "ravi@example.com"}
	d := models.Driver{Email: "ravi@example.com"}
	err := DriverRepository{DB: db}.RegisterDriver(context.Background(), &u, &d)
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
	checkExpectations(t, mock)
}

func TestDriverRepository_ApproveAlreadyApproved(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec(`UPDATE drivers SET approved=1`).WithArgs(int64(3)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`FROM drivers WHERE id=\?`).WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name", "email", "phone", "license", "payment_mode", "approved", "registered_date"}).
			AddRow(3, 7, "Ravi", "ravi@example.com", "", "", "BOTH", true, "2024-01-01"))

	err := DriverRepository{DB: db}.ApproveDriver(context.Background(), 3)
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
	checkExpectations(t, mock)
}

func TestDriverRepository_DeletePending(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT user_id, approved FROM drivers WHERE id=\? FOR UPDATE`).WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "approved"}).AddRow(7, false))
	mock.ExpectExec(`DELETE FROM drivers WHERE id=\?`).WithArgs(int64(3)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM users WHERE id=\?`).WithArgs(int64(7)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := (DriverRepository{DB: db}).DeleteDriver(context.Background(), 3); err != nil {
		t.Fatalf("delete: %v", err)
	}
	checkExpectations(t, mock)
}

func TestTripRepository_ListTripsFilters(t *testing.T) {
	db, mock := newMock(t)
	driverID := int64(4)
	settled := false
	mock.ExpectQuery(`FROM trips WHERE driver_id=\? AND settled=\? ORDER BY id`).
		WithArgs(driverID, settled).
		WillReturnRows(sqlmock.NewRows([]string{"id", "route_id", "driver_id", "trip_date", "vehicle", "settled"}).
			AddRow(1, 1, 4, "2024-01-01", "KA01", false))

	trips, err := TripRepository{DB: db}.ListTrips(context.Background(), models.TripFilter{DriverID: &driverID, Settled: &settled})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(trips) != 1 || trips[0].Vehicle != "KA01" || trips[0].Settled {
		t.Fatalf("unexpected trips: %+v", trips)
	}
	checkExpectations(t, mock)
}

func TestSettlementRepository_ApplySettlement(t *testing.T) {
	db, mock := newMock(t)
	st := models.Settlement{
		ID: 5, Type: models.SettlementWeekly, Date: "2024-01-07", TripCount: 2, TripIDs: []int64{10, 11},
		Lines: []models.SettlementLine{{DriverID: 1, DriverName: "Ravi", BattaAmount: 1000, TotalAmount: 1000}},
	}
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO settlements`).WithArgs(int64(5), "weekly", "2024-01-07", 2).
		WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectExec(`INSERT INTO settlement_lines`).WithArgs(int64(5), 0, int64(1), "Ravi", int64(1000), int64(0), int64(1000)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE trips SET settled=1, settlement_id=\? WHERE settled=0 AND id IN \(\?,\?\)`).
		WithArgs(int64(5), int64(10), int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	if err := (SettlementRepository{DB: db}).ApplySettlement(context.Background(), st); err != nil {
		t.Fatalf("apply: %v", err)
	}
	checkExpectations(t, mock)
}

func TestSettlementRepository_ApplySettlementRollsBackOnRace(t *testing.T) {
	db, mock := newMock(t)
	st := models.Settlement{ID: 5, Type: models.SettlementMonthly, Date: "2024-01-31", TripCount: 2, TripIDs: []int64{10, 11}}
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO settlements`).WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectExec(`UPDATE trips SET settled=1`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	err := SettlementRepository{DB: db}.ApplySettlement(context.Background(), st)
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
	checkExpectations(t, mock)
}

func TestSettlementRepository_GetSettlement(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(`FROM settlements WHERE id=\?`).WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "type", "date", "trip_count"}).AddRow(5, "weekly", "2024-01-07", 2))
	mock.ExpectQuery(`FROM settlement_lines WHERE settlement_id=\?`).WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"driver_id", "driver_name", "batta", "salary", "total"}).
			AddRow(1, "Ravi", 1000, 0, 1000))
	mock.ExpectQuery(`SELECT id FROM trips WHERE settlement_id=\?`).WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10).AddRow(11))

	st, err := SettlementRepository{DB: db}.GetSettlement(context.Background(), 5)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if st.Type != models.SettlementWeekly || len(st.Lines) != 1 || len(st.TripIDs) != 2 || st.TotalAmount() != 1000 {
		t.Fatalf("unexpected settlement: %+v", st)
	}
	checkExpectations(t, mock)
}

func TestSettlementRepository_NextSettlementID(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(`SELECT COALESCE\(MAX\(id\), 0\) \+ 1 FROM settlements`).
		WillReturnRows(sqlmock.NewRows([]string{"next"}).AddRow(4))

	id, err := SettlementRepository{DB: db}.NextSettlementID(context.Background())
	if err != nil || id != 4 {
		t.Fatalf("next id = %d, %v", id, err)
	}
	checkExpectations(t, mock)
}
