package schema

import (
	"time"
)

const (
	EmergencyCollection = "emergencies"
)

type EmergencyStatus string

const (
	EmergencyOpen         EmergencyStatus = "open"
	EmergencyAcknowledged EmergencyStatus = "acknowledged"
)

// Categories lists the kinds of emergency a victim can signal
var Categories = []string{
	"Medical",
	"Accident",
	"Violence / Assault",
	"Fire",
	"Natural disaster",
	"Other",
}

// ValidCategory reports whether c is one of the known emergency categories
func ValidCategory(c string) bool {
	for _, category := range Categories {
		if category == c {
			return true
		}
	}
	return false
}

// Emergency is a single help request. Category and coordinates are fixed at
// creation; Status only ever moves from open to acknowledged.
type Emergency struct {
	ID        string          `json:"id" bson:"_id"`
	Category  string          `json:"category" bson:"category"`
	Latitude  float64         `json:"lat" bson:"lat"`
	Longitude float64         `json:"lng" bson:"lng"`
	CreatedAt time.Time       `json:"created_at" bson:"created_at"`
	Status    EmergencyStatus `json:"status" bson:"status"`
}

// IsAcknowledged is derived from the observed record only
func (e *Emergency) IsAcknowledged() bool {
	return e != nil && e.Status == EmergencyAcknowledged
}
