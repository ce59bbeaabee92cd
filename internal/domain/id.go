package domain

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NewID returns a fresh time-ordered identifier.
// Hex ordering of two IDs matches their creation order (second resolution,
// then the process counter).
func NewID() string {
	return primitive.NewObjectID().Hex()
}

// ValidID reports whether s is a well-formed identifier.
func ValidID(s string) bool {
	return primitive.IsValidObjectID(s)
}

// IDTime returns the creation time embedded in an identifier.
// The second return value is false for malformed identifiers.
func IDTime(id string) (time.Time, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return time.Time{}, false
	}
	return oid.Timestamp().UTC(), true
}

// CleanID trims surrounding whitespace left over from copy-paste.
func CleanID(id string) string {
	return strings.TrimSpace(id)
}
