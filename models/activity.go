package models

// Activity is an on-site experience offered to guests (kayaking, bonfire
// nights, guided hikes). Managed through the admin API, listed by the
// assistant.
type Activity struct {
	ID          string `bson:"id" json:"id"`
	Name        string `bson:"name" json:"name"`
	Description string `bson:"description" json:"description"`
	Schedule    string `bson:"schedule,omitempty" json:"schedule,omitempty"`
	ImageURL    string `bson:"image_url,omitempty" json:"image_url,omitempty"`
	VideoURL    string `bson:"video_url,omitempty" json:"video_url,omitempty"`
}
