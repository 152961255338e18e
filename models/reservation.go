package models

import "time"

// Reservation statuses.
const (
	ReservationPending   = "pending"
	ReservationConfirmed = "confirmed"
	ReservationCancelled = "cancelled"
	ReservationCompleted = "completed"
)

// Reservation represents a cabin booking over a half-open date range
// [StartDate, EndDate). It is created with status "pending" when the chat
// flow completes and moves to confirmed/cancelled through an explicit
// confirmation, an administrative action, or the expiration sweeper.
type Reservation struct {
	ID              string    `bson:"id" json:"id"`
	CabinID         string    `bson:"cabin_id" json:"cabin_id"`
	SubjectID       string    `bson:"subject_id" json:"subject_id"`
	GuestName       string    `bson:"guest_name" json:"guest_name"`
	GuestPhone      string    `bson:"guest_phone" json:"guest_phone"`
	StartDate       time.Time `bson:"start_date" json:"start_date"`
	EndDate         time.Time `bson:"end_date" json:"end_date"`
	PartySize       int       `bson:"party_size" json:"party_size"`
	Status          string    `bson:"status" json:"status"`
	TotalPrice      float64   `bson:"total_price" json:"total_price"`
	PaymentProofRef string    `bson:"payment_proof_ref,omitempty" json:"payment_proof_ref,omitempty"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updated_at"`
}

// Nights returns the number of nights covered by the reservation.
func (r *Reservation) Nights() int {
	return int(r.EndDate.Sub(r.StartDate).Hours() / 24)
}
