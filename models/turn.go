package models

import "time"

// MessageKind classifies an inbound chat message.
type MessageKind string

const (
	MessageKindText     MessageKind = "text"
	MessageKindImage    MessageKind = "image"
	MessageKindDocument MessageKind = "document"
	MessageKindAudio    MessageKind = "audio"
	MessageKindVideo    MessageKind = "video"
)

// TurnPayload is one inbound message wrapped for processing: the unit of work
// carried through the turn queue and handed to the dispatcher. MessageID is
// the transport's handle for the raw message; for media messages it doubles
// as the attachment reference (e.g. a payment proof).
type TurnPayload struct {
	SubjectID  string      `json:"subject_id"`
	Text       string      `json:"text"`
	MessageID  string      `json:"message_id"`
	Kind       MessageKind `json:"kind"`
	EnqueuedAt time.Time   `json:"enqueued_at"`
}
