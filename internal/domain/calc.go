package domain

import "github.com/Harshith-45/Assignment-Twilight-Bus/internal/domain/models"

// ComputePayment returns the payout of one trip. The trip is carried for
// context only; route and driver are resolved by the caller.
//
// A nil driver pays as BATTAONLY and a nil route has a zero tariff, so the
// result degrades to zero amounts instead of failing.
func ComputePayment(trip models.Trip, driver *models.Driver, route *models.Route) models.Payment {
	mode := models.PaymentBattaOnly
	if driver != nil {
		mode = driver.PaymentMode
	}

	var battaRate, salaryRate int64
	if route != nil {
		battaRate = route.BattaPerTrip
		salaryRate = route.SalaryPerTrip
	}

	var p models.Payment
	switch mode {
	case models.PaymentBattaOnly:
		p.Batta = battaRate
	case models.PaymentSalaryOnly:
		p.Salary = salaryRate
	default:
		p.Batta = battaRate
		p.Salary = salaryRate
	}
	p.Total = p.Batta + p.Salary
	return p
}

// PaymentForTrip resolves the trip's driver and route, then computes the payout.
func PaymentForTrip(trip models.Trip, drivers map[int64]models.Driver, routes []models.Route) models.Payment {
	var driver *models.Driver
	if d, ok := drivers[trip.DriverID]; ok {
		driver = &d
	}
	return ComputePayment(trip, driver, models.FindRoute(routes, trip.RouteID))
}

// paysComponent reports whether a payment mode earns the component settled by
// the given run type: batta for weekly runs, salary for monthly runs.
func paysComponent(mode models.PaymentMode, typ models.SettlementType) bool {
	switch mode {
	case models.PaymentBattaOnly:
		return typ == models.SettlementWeekly
	case models.PaymentSalaryOnly:
		return typ != models.SettlementWeekly
	default:
		return true
	}
}

// Summarize aggregates unsettled trips into one line per driver, in order of
// first appearance. Weekly runs collect batta only, monthly runs salary only.
// Trips whose driver is unknown are skipped, and so are trips of drivers whose
// payment mode never earns the component of this run.
func Summarize(unsettled []models.Trip, drivers map[int64]models.Driver, routes []models.Route, typ models.SettlementType) []models.SettlementLine {
	lines := []models.SettlementLine{}
	index := map[int64]int{}

	for _, trip := range unsettled {
		driver, ok := drivers[trip.DriverID]
		if !ok {
			continue
		}
		if !paysComponent(driver.PaymentMode, typ) {
			continue
		}
		payment := ComputePayment(trip, &driver, models.FindRoute(routes, trip.RouteID))

		i, seen := index[driver.ID]
		if !seen {
			lines = append(lines, models.SettlementLine{
				DriverID:   driver.ID,
				DriverName: driver.Name,
			})
			i = len(lines) - 1
			index[driver.ID] = i
		}

		line := &lines[i]
		if typ == models.SettlementWeekly {
			line.BattaAmount += payment.Batta
		} else {
			line.SalaryAmount += payment.Salary
		}
		line.TotalAmount = line.BattaAmount + line.SalaryAmount
	}
	return lines
}
