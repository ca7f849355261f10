package models

import "github.com/google/uuid"

// newID returns a fresh primary key for rows inserted without one.
func newID() string {
	return uuid.NewString()
}
