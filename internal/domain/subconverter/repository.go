package subconverter

import "context"

// Repository is the read side of subconverter storage.
type Repository interface {
	// GetByID returns nil, nil when no subconverter has the id.
	GetByID(ctx context.Context, id string) (*Subconverter, error)

	// FindDefault returns the default subconverter, or nil, nil when none is
	// flagged. When several are flagged the lowest id wins.
	FindDefault(ctx context.Context) (*Subconverter, error)

	// List returns all subconverters ordered by id.
	List(ctx context.Context) ([]*Subconverter, error)
}
