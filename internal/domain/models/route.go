package models

// Route is a fixed route with its per-trip tariff.
type Route struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	BattaPerTrip  int64  `json:"battaPerTrip"`
	SalaryPerTrip int64  `json:"salaryPerTrip"`
}

// DefaultRoutes is the tariff table seeded at start-up.
func DefaultRoutes() []Route {
	return []Route{
		{ID: 1, Name: "City A - City B", BattaPerTrip: 500, SalaryPerTrip: 700},
		{ID: 2, Name: "City B - City C", BattaPerTrip: 400, SalaryPerTrip: 600},
		{ID: 3, Name: "Local Shuttle", BattaPerTrip: 200, SalaryPerTrip: 300},
	}
}

// FindRoute returns the route with the given id, or nil.
func FindRoute(routes []Route, id int64) *Route {
	for i := range routes {
		if routes[i].ID == id {
			return &routes[i]
		}
	}
	return nil
}
