package zone

import "context"

type ZoneService interface {
	Create(ctx context.Context, req CreateZoneRequest) (ZoneResponse, error)
	Get(ctx context.Context, id string) (ZoneResponse, error)
	List(ctx context.Context) ([]ZoneResponse, error)
	Update(ctx context.Context, req UpdateZoneRequest) (ZoneResponse, error)
	Delete(ctx context.Context, id string) error
}
