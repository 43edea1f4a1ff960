package models

// Trip is one logged run of a driver on a route.
type Trip struct {
	ID       int64  `json:"id"`
	RouteID  int64  `json:"routeId"`
	DriverID int64  `json:"driverId"`
	Date     string `json:"date"`
	Vehicle  string `json:"vehicle"`
	Settled  bool   `json:"settled"`
}

// Payment is the payout derived for a single trip.
type Payment struct {
	Batta  int64 `json:"batta"`
	Salary int64 `json:"salary"`
	Total  int64 `json:"total"`
}

type TripWithPayment struct {
	Trip
	RouteName string  `json:"routeName"`
	Payment   Payment `json:"payment"`
}

// TripFilter narrows trip listings; nil fields match everything.
type TripFilter struct {
	DriverID *int64
	Settled  *bool
}

func (f TripFilter) Match(t Trip) bool {
	if f.DriverID != nil && t.DriverID != *f.DriverID {
		return false
	}
	if f.Settled != nil && t.Settled != *f.Settled {
		return false
	}
	return true
}
