package models

import "time"

// ConversationState identifies the handler responsible for the next turn of a
// subject's conversation.
type ConversationState string

// Top-level states.
const (
	StateMainMenu           ConversationState = "MAIN_MENU"
	StateLodgingList        ConversationState = "LODGING_LIST"
	StateLodgingDetail      ConversationState = "LODGING_DETAIL"
	StateActivities         ConversationState = "ACTIVITIES"
	StatePostBookingSupport ConversationState = "POST_BOOKING_SUPPORT"
	StateShareExperience    ConversationState = "SHARE_EXPERIENCE"
)

// Reservation flow states, in order.
const (
	StateReservationDates      ConversationState = "RESERVATION_DATES"
	StateReservationName       ConversationState = "RESERVATION_NAME"
	StateReservationPhone      ConversationState = "RESERVATION_PHONE"
	StateReservationPartySize  ConversationState = "RESERVATION_PARTY_SIZE"
	StateReservationLodging    ConversationState = "RESERVATION_LODGING"
	StateReservationConditions ConversationState = "RESERVATION_CONDITIONS"
	StateReservationPayment    ConversationState = "RESERVATION_PAYMENT"
	StateReservationConfirm    ConversationState = "RESERVATION_CONFIRM"
)

// Payload holds the opaque per-conversation key-value bag carried between
// turns (collected reservation data, menu positions, and so on).
type Payload map[string]string

// Clone returns a copy of the payload so handlers can modify it without
// aliasing the stored record.
func (p Payload) Clone() Payload {
	out := make(Payload, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Conversation is the persisted per-subject conversation record. Exactly one
// exists per subject; it is created on first contact and never hard-deleted.
type Conversation struct {
	SubjectID string            `json:"subject_id"`
	State     ConversationState `json:"state"`
	Payload   Payload           `json:"payload"`
	UpdatedAt time.Time         `json:"updated_at"`
}
