package booking

import (
	"context"
	"fmt"
	"time"

	"riverwood/models"

	"github.com/google/uuid"
)

// CreateReservation persists a new pending reservation. The conflict check is
// repeated here so the window between the flow's availability check and the
// insert stays as small as possible; the two are still not one transaction.
func (s *DefaultReservationService) CreateReservation(ctx context.Context, res *models.Reservation) (*models.Reservation, error) {
	if res.CabinID == "" {
		return nil, fmt.Errorf("reservation is missing a cabin")
	}
	if !res.StartDate.Before(res.EndDate) {
		return nil, fmt.Errorf("reservation range is empty: start %s, end %s",
			res.StartDate.Format("2006-01-02"), res.EndDate.Format("2006-01-02"))
	}

	conflict, err := s.HasConflict(ctx, res.CabinID, res.StartDate, res.EndDate)
	if err != nil {
		return nil, fmt.Errorf("availability check failed: %w", err)
	}
	if conflict {
		return nil, fmt.Errorf("cabin %s is no longer available for the requested dates", res.CabinID)
	}

	now := time.Now().UTC()
	res.ID = uuid.New().String()
	res.Status = models.ReservationPending
	res.CreatedAt = now
	res.UpdatedAt = now

	if err := s.Repo.Create(res); err != nil {
		return nil, err
	}
	return res, nil
}

// GetReservationByID retrieves a reservation by ID.
func (s *DefaultReservationService) GetReservationByID(ctx context.Context, id string) (*models.Reservation, error) {
	return s.Repo.GetByID(id)
}

// UpdateReservationStatus transitions a reservation's status. Completed and
// cancelled reservations are immutable; re-applying the current status is a
// no-op.
func (s *DefaultReservationService) UpdateReservationStatus(ctx context.Context, id, status string) error {
	switch status {
	case models.ReservationPending, models.ReservationConfirmed,
		models.ReservationCancelled, models.ReservationCompleted:
	default:
		return fmt.Errorf("invalid reservation status %q", status)
	}

	current, err := s.Repo.GetByID(id)
	if err != nil {
		return err
	}
	if current.Status == status {
		return nil
	}
	if current.Status == models.ReservationCancelled || current.Status == models.ReservationCompleted {
		return fmt.Errorf("reservation %s is %s and can no longer change status", id, current.Status)
	}

	return s.Repo.UpdateStatus(id, status)
}

// GetLatestPendingReservation retrieves the newest pending reservation, or
// nil when none exists.
func (s *DefaultReservationService) GetLatestPendingReservation(ctx context.Context) (*models.Reservation, error) {
	return s.Repo.GetLatestPending()
}

// ListReservations retrieves all reservations, newest first.
func (s *DefaultReservationService) ListReservations(ctx context.Context) ([]models.Reservation, error) {
	return s.Repo.GetAll()
}

// ListReservationsBySubject retrieves a subject's reservations, newest first.
func (s *DefaultReservationService) ListReservationsBySubject(ctx context.Context, subjectID string) ([]models.Reservation, error) {
	return s.Repo.GetBySubject(subjectID)
}
