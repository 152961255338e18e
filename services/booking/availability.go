package booking

import (
	"context"
	"time"

	"riverwood/models"
)

// Overlaps reports whether the half-open ranges [aStart, aEnd) and
// [bStart, bEnd) intersect.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// HasConflict reports whether any reservation in a date-blocking status (see
// BlocksDates) for the cabin overlaps the half-open range [start, end). The
// repository query narrows to non-cancelled rows; the status rule itself
// lives here.
//
// The check is read-only and takes no lock: two concurrent bookings can both
// pass before either commits. Per-subject turn serialization plus low
// contention keep the window small; this is an accepted trade-off rather than
// a bug to fix here.
func (s *DefaultReservationService) HasConflict(ctx context.Context, cabinID string, start, end time.Time) (bool, error) {
	existing, err := s.Repo.GetActiveByCabin(cabinID)
	if err != nil {
		return false, err
	}
	for _, res := range existing {
		if !BlocksDates(res.Status) {
			continue
		}
		if Overlaps(res.StartDate, res.EndDate, start, end) {
			return true, nil
		}
	}
	return false, nil
}

// activeStatuses are the statuses that block a cabin's dates.
var activeStatuses = map[string]bool{
	models.ReservationPending:   true,
	models.ReservationConfirmed: true,
	models.ReservationCompleted: true,
}

// BlocksDates reports whether a reservation in the given status holds its
// date range.
func BlocksDates(status string) bool {
	return activeStatuses[status]
}
