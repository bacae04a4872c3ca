package zone

import "context"

// ZoneRepository defines data access for the office zone registry.
type ZoneRepository interface {
	Create(ctx context.Context, zone Zone) (Zone, error)

	GetByID(ctx context.Context, id string) (Zone, error)

	// List returns all registered zones ordered by name.
	List(ctx context.Context) ([]Zone, error)

	Update(ctx context.Context, zone Zone) error

	Delete(ctx context.Context, id string) error
}
