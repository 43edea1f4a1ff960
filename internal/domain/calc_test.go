package domain

import (
	"reflect"
	"testing"

	"github.com/Harshith-45/Assignment-Twilight-Bus/internal/domain/models"
)

var testRoutes = []models.Route{
	{ID: 1, Name: "City A - City B", BattaPerTrip: 500, SalaryPerTrip: 700},
	{ID: 2, Name: "City B - City C", BattaPerTrip: 400, SalaryPerTrip: 600},
}

func TestComputePaymentByMode(t *testing.T) {
	route := &testRoutes[0]
	trip := models.Trip{ID: 1, RouteID: 1, DriverID: 1}

	tests := []struct {
		name string
		mode models.PaymentMode
		want models.Payment
	}{
		{"batta only", models.PaymentBattaOnly, models.Payment{Batta: 500, Salary: 0, Total: 500}},
		{"salary only", models.PaymentSalaryOnly, models.Payment{Batta: 0, Salary: 700, Total: 700}},
		{"both", models.PaymentBoth, models.Payment{Batta: 500, Salary: 700, Total: 1200}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			driver := &models.Driver{ID: 1, PaymentMode: tt.mode, Approved: true}
			got := ComputePayment(trip, driver, route)
			if got != tt.want {
				t.Fatalf("ComputePayment() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestComputePaymentMissingReferences(t *testing.T) {
	trip := models.Trip{ID: 1, RouteID: 99, DriverID: 7}

	if got := ComputePayment(trip, &models.Driver{PaymentMode: models.PaymentBoth}, nil); got != (models.Payment{}) {
		t.Fatalf("missing route should pay nothing, got %+v", got)
	}

	got := ComputePayment(trip, nil, &testRoutes[0])
	want := models.Payment{Batta: 500, Total: 500}
	if got != want {
		t.Fatalf("missing driver should pay as batta only, got %+v want %+v", got, want)
	}
}

func TestComputePaymentTotalsAlwaysAdd(t *testing.T) {
	for _, r := range testRoutes {
		for _, mode := range []models.PaymentMode{models.PaymentBattaOnly, models.PaymentSalaryOnly, models.PaymentBoth} {
			p := ComputePayment(models.Trip{RouteID: r.ID}, &models.Driver{PaymentMode: mode}, &r)
			if p.Total != p.Batta+p.Salary {
				t.Fatalf("route %d mode %s: total %d != %d+%d", r.ID, mode, p.Total, p.Batta, p.Salary)
			}
			if mode == models.PaymentBattaOnly && (p.Salary != 0 || p.Batta != r.BattaPerTrip) {
				t.Fatalf("batta only on route %d paid %+v", r.ID, p)
			}
			if mode == models.PaymentBoth && p.Total != r.BattaPerTrip+r.SalaryPerTrip {
				t.Fatalf("both on route %d paid %+v", r.ID, p)
			}
		}
	}
}

func TestPaymentForTripResolvesReferences(t *testing.T) {
	drivers := map[int64]models.Driver{3: {ID: 3, PaymentMode: models.PaymentSalaryOnly}}
	got := PaymentForTrip(models.Trip{RouteID: 2, DriverID: 3}, drivers, testRoutes)
	if got.Salary != 600 || got.Total != 600 {
		t.Fatalf("unexpected payment %+v", got)
	}
}

func TestSummarizeBothModeSplitsByRunType(t *testing.T) {
	drivers := map[int64]models.Driver{1: {ID: 1, Name: "Ravi", PaymentMode: models.PaymentBoth, Approved: true}}
	trips := []models.Trip{{ID: 1, RouteID: 1, DriverID: 1}}

	weekly := Summarize(trips, drivers, testRoutes, models.SettlementWeekly)
	wantWeekly := []models.SettlementLine{{DriverID: 1, DriverName: "Ravi", BattaAmount: 500, SalaryAmount: 0, TotalAmount: 500}}
	if !reflect.DeepEqual(weekly, wantWeekly) {
		t.Fatalf("weekly = %+v, want %+v", weekly, wantWeekly)
	}

	monthly := Summarize(trips, drivers, testRoutes, models.SettlementMonthly)
	wantMonthly := []models.SettlementLine{{DriverID: 1, DriverName: "Ravi", BattaAmount: 0, SalaryAmount: 700, TotalAmount: 700}}
	if !reflect.DeepEqual(monthly, wantMonthly) {
		t.Fatalf("monthly = %+v, want %+v", monthly, wantMonthly)
	}
}

func TestSummarizeAggregatesPerDriver(t *testing.T) {
	drivers := map[int64]models.Driver{1: {ID: 1, Name: "Ravi", PaymentMode: models.PaymentBoth}}
	trips := []models.Trip{
		{ID: 1, RouteID: 1, DriverID: 1},
		{ID: 2, RouteID: 1, DriverID: 1},
	}
	lines := Summarize(trips, drivers, testRoutes, models.SettlementWeekly)
	if len(lines) != 1 {
		t.Fatalf("expected a single line, got %d", len(lines))
	}
	if lines[0].BattaAmount != 1000 || lines[0].TotalAmount != 1000 {
		t.Fatalf("unexpected aggregate %+v", lines[0])
	}
}

func TestSummarizeOrderAndSkips(t *testing.T) {
	drivers := map[int64]models.Driver{
		1: {ID: 1, Name: "Ravi", PaymentMode: models.PaymentBattaOnly},
		2: {ID: 2, Name: "Meena", PaymentMode: models.PaymentBoth},
		3: {ID: 3, Name: "Arun", PaymentMode: models.PaymentSalaryOnly},
	}
	trips := []models.Trip{
		{ID: 1, RouteID: 2, DriverID: 2},
		{ID: 2, RouteID: 1, DriverID: 42}, // unknown driver
		{ID: 3, RouteID: 1, DriverID: 1},
		{ID: 4, RouteID: 1, DriverID: 3}, // salary only, weekly run
		{ID: 5, RouteID: 1, DriverID: 2},
	}
	lines := Summarize(trips, drivers, testRoutes, models.SettlementWeekly)
	want := []models.SettlementLine{
		{DriverID: 2, DriverName: "Meena", BattaAmount: 900, TotalAmount: 900},
		{DriverID: 1, DriverName: "Ravi", BattaAmount: 500, TotalAmount: 500},
	}
	if !reflect.DeepEqual(lines, want) {
		t.Fatalf("lines = %+v, want %+v", lines, want)
	}
}

func TestSummarizeIsPure(t *testing.T) {
	drivers := map[int64]models.Driver{
		1: {ID: 1, Name: "Ravi", PaymentMode: models.PaymentBoth},
		2: {ID: 2, Name: "Meena", PaymentMode: models.PaymentSalaryOnly},
	}
	trips := []models.Trip{
		{ID: 1, RouteID: 1, DriverID: 1},
		{ID: 2, RouteID: 2, DriverID: 2},
		{ID: 3, RouteID: 9, DriverID: 1},
	}
	first := Summarize(trips, drivers, testRoutes, models.SettlementMonthly)
	second := Summarize(trips, drivers, testRoutes, models.SettlementMonthly)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("summaries differ: %+v vs %+v", first, second)
	}
	for _, tr := range trips {
		if tr.Settled {
			t.Fatalf("summarize mutated trip %d", tr.ID)
		}
	}
}

func TestSummarizeEmpty(t *testing.T) {
	lines := Summarize(nil, map[int64]models.Driver{}, testRoutes, models.SettlementWeekly)
	if lines == nil || len(lines) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", lines)
	}
}
