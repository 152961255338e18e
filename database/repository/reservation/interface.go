package reservationRepo

import (
	"time"

	"riverwood/models"
)

// ReservationRepository defines methods for reservation data access.
type ReservationRepository interface {
	// Create inserts a new reservation record.
	Create(res *models.Reservation) error
	// GetByID retrieves a reservation by its unique ID.
	GetByID(id string) (*models.Reservation, error)
	// GetAll retrieves all reservations, newest first.
	GetAll() ([]models.Reservation, error)
	// GetActiveByCabin retrieves all non-cancelled reservations for a cabin.
	GetActiveByCabin(cabinID string) ([]models.Reservation, error)
	// GetBySubject retrieves all reservations made by a chat subject, newest first.
	GetBySubject(subjectID string) ([]models.Reservation, error)
	// GetLatestPending retrieves the most recently created pending reservation.
	GetLatestPending() (*models.Reservation, error)
	// GetPendingCreatedBefore retrieves pending reservations created before the cutoff.
	GetPendingCreatedBefore(cutoff time.Time) ([]models.Reservation, error)
	// UpdateStatus sets the status of a reservation and bumps its updated_at.
	UpdateStatus(id, status string) error
}
