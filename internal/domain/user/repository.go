package user

import "context"

// Repository is the read side of user storage. Lookups return nil, nil
// when the user does not exist.
type Repository interface {
	GetByID(ctx context.Context, id string) (*User, error)
	GetBySubscriptionKey(ctx context.Context, key string) (*User, error)
}
