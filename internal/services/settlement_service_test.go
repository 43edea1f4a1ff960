package services

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Harshith-45/Assignment-Twilight-Bus/internal/domain"
	"github.com/Harshith-45/Assignment-Twilight-Bus/internal/domain/models"
)

func TestSettlementService_WeeklyBothModeScenario(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	d := f.approvedDriver(t, "a@example.com", "BOTH")
	f.logTrip(t, d.ID, 1)

	st, err := f.settlements.Process(ctx, "weekly")
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if st.ID != 1 || st.Type != models.SettlementWeekly || st.Date != "2024-01-07" || st.TripCount != 1 {
		t.Fatalf("unexpected settlement: %+v", st)
	}
	if len(st.Lines) != 1 || st.Lines[0].BattaAmount != 500 || st.Lines[0].SalaryAmount != 0 || st.Lines[0].TotalAmount != 500 {
		t.Fatalf("unexpected lines: %+v", st.Lines)
	}

	// every trip is settled, so a monthly run right after has nothing to do
	if _, err := f.settlements.Process(ctx, "monthly"); !errors.Is(err, domain.ErrNothingToSettle) {
		t.Fatalf("expected nothing to settle, got %v", err)
	}
	history, _ := f.settlements.History(ctx)
	if len(history) != 1 {
		t.Fatalf("empty run must not touch history, got %d entries", len(history))
	}
}

func TestSettlementService_MonthlyAggregates(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	a := f.approvedDriver(t, "a@example.com", "BOTH")
	b := f.approvedDriver(t, "b@example.com", "BATTAONLY")
	f.logTrip(t, a.ID, 2)
	f.logTrip(t, b.ID, 1)
	f.logTrip(t, a.ID, 2)

	preview, err := f.settlements.Preview(ctx, "monthly")
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if len(preview) != 1 || preview[0].DriverID != a.ID || preview[0].SalaryAmount != 1200 {
		t.Fatalf("unexpected preview: %+v", preview)
	}
	unsettled := false
	open, _ := f.trips.ListTrips(ctx, &unsettled)
	if len(open) != 3 {
		t.Fatalf("preview must not settle trips")
	}

	st, err := f.settlements.Process(ctx, "MONTHLY")
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if st.TripCount != 3 || len(st.TripIDs) != 3 {
		t.Fatalf("every input trip belongs to the batch: %+v", st)
	}
	open, _ = f.trips.ListTrips(ctx, &unsettled)
	if len(open) != 0 {
		t.Fatalf("expected all trips settled, %d open", len(open))
	}
}

func TestSettlementService_HistoryMostRecentFirst(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	d := f.approvedDriver(t, "a@example.com", "BOTH")
	for i := 0; i < 3; i++ {
		f.logTrip(t, d.ID, 1)
		if _, err := f.settlements.Process(ctx, "weekly"); err != nil {
			t.Fatalf("process %d: %v", i, err)
		}
	}
	history, err := f.settlements.History(ctx)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 3 || history[0].ID != 3 || history[2].ID != 1 {
		t.Fatalf("unexpected history order: %+v", history)
	}
	got, err := f.settlements.Get(ctx, 2)
	if err != nil || got.ID != 2 {
		t.Fatalf("get: %+v %v", got, err)
	}
	if _, err := f.settlements.Get(ctx, 9); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSettlementService_RejectsUnknownType(t *testing.T) {
	f := newFixture()
	if _, err := f.settlements.Process(context.Background(), "daily"); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := f.settlements.Preview(context.Background(), ""); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSettlementService_ConcurrentRunsSettleOnce(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	d := f.approvedDriver(t, "a@example.com", "BOTH")
	for i := 0; i < 5; i++ {
		f.logTrip(t, d.ID, 1)
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	successes, empties := 0, 0
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.settlements.Process(ctx, "weekly")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case domain.IsNothingToSettle(err):
				empties++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if successes != 1 || empties != 7 {
		t.Fatalf("successes=%d empties=%d", successes, empties)
	}
	history, _ := f.settlements.History(ctx)
	if len(history) != 1 || history[0].TripCount != 5 || history[0].TotalAmount() != 2500 {
		t.Fatalf("unexpected history: %+v", history)
	}
}

func TestSettlementService_Statement(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	d := f.approvedDriver(t, "a@example.com", "SALARYONLY")
	f.logTrip(t, d.ID, 1)
	if _, err := f.settlements.Process(ctx, "monthly"); err != nil {
		t.Fatalf("process: %v", err)
	}

	pdf, name, err := f.settlements.Statement(ctx, 1)
	if err != nil {
		t.Fatalf("statement: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("output is not a PDF")
	}
	if name != "SETTLEMENT_1_MONTHLY_2024-01-07.pdf" {
		t.Fatalf("unexpected filename %q", name)
	}
	if _, _, err := f.settlements.Statement(ctx, 2); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestLocalLocker_RespectsContext(t *testing.T) {
	l := &LocalLocker{}
	unlock, err := l.Lock(context.Background())
	if err != nil {
		t.Fatalf("lock: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := l.Lock(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}

	unlock()
	unlock()
	again, err := l.Lock(context.Background())
	if err != nil {
		t.Fatalf("relock: %v", err)
	}
	again()
}
