// Package user models subscription owners as the pipeline sees them.
package user

import "strings"

// User owns a subscription key and optionally pins a subconverter.
type User struct {
	id              string
	name            string
	subscriptionKey string
	subconverterID  *string
}

// ReconstructUser rebuilds a user from storage.
func ReconstructUser(id, name, subscriptionKey string, subconverterID *string) *User {
	if subconverterID != nil && strings.TrimSpace(*subconverterID) == "" {
		subconverterID = nil
	}
	return &User{
		id:              id,
		name:            name,
		subscriptionKey: subscriptionKey,
		subconverterID:  subconverterID,
	}
}

func (u *User) ID() string { return u.id }

func (u *User) Name() string { return u.name }

func (u *User) SubscriptionKey() string { return u.subscriptionKey }

// SubconverterID returns the preferred subconverter, or nil when the user
// relies on the default one.
func (u *User) SubconverterID() *string { return u.subconverterID }
