package models

import "time"

// Guest is a known chat contact, recorded the first time a reservation is
// completed for a subject.
type Guest struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Phone     string    `bson:"phone" json:"phone"`
	SubjectID string    `bson:"subject_id" json:"subject_id"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
