package models

import "time"

// RateSeason overrides the nightly price for a date range. Multiplier is
// applied to the type's base rate for every night falling inside
// [Start, End).
type RateSeason struct {
	Name       string    `bson:"name" json:"name"`
	Start      time.Time `bson:"start" json:"start"`
	End        time.Time `bson:"end" json:"end"`
	Multiplier float64   `bson:"multiplier" json:"multiplier"`
}

// CabinType groups cabins sharing capacity and pricing.
type CabinType struct {
	ID          string       `bson:"id" json:"id"`
	Name        string       `bson:"name" json:"name"`
	Capacity    int          `bson:"capacity" json:"capacity"`
	NightlyRate float64      `bson:"nightly_rate" json:"nightly_rate"`
	Seasons     []RateSeason `bson:"seasons,omitempty" json:"seasons,omitempty"`
}

// Cabin is a bookable unit. Availability is derived, never stored: a cabin is
// free for a range exactly when no non-cancelled reservation overlaps it.
type Cabin struct {
	ID          string `bson:"id" json:"id"`
	Name        string `bson:"name" json:"name"`
	TypeID      string `bson:"type_id" json:"type_id"`
	Description string `bson:"description" json:"description"`
	ImageURL    string `bson:"image_url,omitempty" json:"image_url,omitempty"`
}
