package domain

import "github.com/Harshith-45/Assignment-Twilight-Bus/internal/domain/models"

// DriverTransitions is the driver approval flow as code. Approved and removed
// are terminal.
var DriverTransitions = map[models.DriverStatus][]models.DriverStatus{
	models.DriverPending: {models.DriverApproved, models.DriverRemoved},
}

func CanTransition(from, to models.DriverStatus) bool {
	next, ok := DriverTransitions[from]
	if !ok {
		return false
	}
	for _, s := range next {
		if s == to {
			return true
		}
	}
	return false
}
