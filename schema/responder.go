package schema

import (
	"regexp"
	"time"
)

const (
	ResponderCollection = "responders"

	ResponderKeyMaxLength = 150
)

var unsafeKeyChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// Responder is a push-addressable endpoint of a responder device
type Responder struct {
	Key       string    `json:"-" bson:"_id"`
	Token     string    `json:"token" bson:"token"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// ResponderKey turns a push token into a storage key made of
// [A-Za-z0-9_-] only, at most 150 characters long.
func ResponderKey(token string) string {
	key := unsafeKeyChars.ReplaceAllString(token, "_")
	if len(key) > ResponderKeyMaxLength {
		key = key[:ResponderKeyMaxLength]
	}
	return key
}
