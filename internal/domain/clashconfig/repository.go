package clashconfig

import "context"

// Repository persists profiles. Lookups return nil, nil when nothing matches.
type Repository interface {
	GetByID(ctx context.Context, id string) (*Profile, error)
	GetByKey(ctx context.Context, key string) (*Profile, error)
	List(ctx context.Context) ([]*Profile, error)
	Create(ctx context.Context, profile *Profile) error
	Update(ctx context.Context, profile *Profile) error
	Delete(ctx context.Context, id string) error
}
