package domain

import "github.com/Harshith-45/Assignment-Twilight-Bus/internal/domain/models"

// PlanSettlement builds the next settlement batch without mutating anything.
// TripCount and TripIDs cover every input trip, including the ones Summarize
// skipped: the whole input set is settled together.
func PlanSettlement(
	unsettled []models.Trip,
	drivers map[int64]models.Driver,
	routes []models.Route,
	typ models.SettlementType,
	nextID int64,
	date string,
) (models.Settlement, error) {
	lines := Summarize(unsettled, drivers, routes, typ)
	if len(lines) == 0 {
		return models.Settlement{}, ErrNothingToSettle
	}

	ids := make([]int64, 0, len(unsettled))
	for _, t := range unsettled {
		ids = append(ids, t.ID)
	}

	return models.Settlement{
		ID:        nextID,
		Type:      typ,
		Date:      date,
		Lines:     lines,
		TripCount: len(unsettled),
		TripIDs:   ids,
	}, nil
}

// ApplySettlement returns the history and trips as they are after s is
// applied: s first in the history and every trip of s marked settled. The
// inputs are left untouched.
func ApplySettlement(history []models.Settlement, trips []models.Trip, s models.Settlement) ([]models.Settlement, []models.Trip) {
	nextHistory := make([]models.Settlement, 0, len(history)+1)
	nextHistory = append(nextHistory, s)
	nextHistory = append(nextHistory, history...)

	member := make(map[int64]struct{}, len(s.TripIDs))
	for _, id := range s.TripIDs {
		member[id] = struct{}{}
	}
	nextTrips := make([]models.Trip, len(trips))
	for i, t := range trips {
		if _, ok := member[t.ID]; ok {
			t.Settled = true
		}
		nextTrips[i] = t
	}
	return nextHistory, nextTrips
}
