package booking

import (
	"context"
	"time"

	reservationRepo "riverwood/database/repository/reservation"
	"riverwood/models"
)

// ReservationService defines reservation reads and writes shared by the chat
// flow, the admin API and the expiration sweeper.
type ReservationService interface {
	// HasConflict reports whether any non-cancelled reservation for the cabin
	// overlaps the half-open range [start, end).
	HasConflict(ctx context.Context, cabinID string, start, end time.Time) (bool, error)
	// CreateReservation persists a new pending reservation, assigning its ID
	// and timestamps.
	CreateReservation(ctx context.Context, res *models.Reservation) (*models.Reservation, error)
	// GetReservationByID retrieves a reservation by ID.
	GetReservationByID(ctx context.Context, id string) (*models.Reservation, error)
	// UpdateReservationStatus transitions a reservation's status. Completed
	// and cancelled reservations are immutable.
	UpdateReservationStatus(ctx context.Context, id, status string) error
	// GetLatestPendingReservation retrieves the newest pending reservation,
	// or nil when none exists.
	GetLatestPendingReservation(ctx context.Context) (*models.Reservation, error)
	// ListReservations retrieves all reservations, newest first.
	ListReservations(ctx context.Context) ([]models.Reservation, error)
	// ListReservationsBySubject retrieves a subject's reservations, newest first.
	ListReservationsBySubject(ctx context.Context, subjectID string) ([]models.Reservation, error)
}

// DefaultReservationService implements ReservationService.
type DefaultReservationService struct {
	Repo reservationRepo.ReservationRepository
}
