package zone

import (
	"time"

	"github.com/attendly/attendly-backend-go/internal/pkg/geo"
)

// Zone is a registered office location. Check-ins are only accepted from
// positions within RadiusMeters of the center.
type Zone struct {
	ID           string
	Name         string
	Latitude     float64
	Longitude    float64
	RadiusMeters int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Radius bounds enforced on every create and update.
const (
	MinRadiusMeters = 10
	MaxRadiusMeters = 10000
)

// Center returns the zone's center point.
func (z Zone) Center() geo.Point {
	return geo.Point{Latitude: z.Latitude, Longitude: z.Longitude}
}

// GeofenceResult is the outcome of evaluating a position against a zone.
type GeofenceResult struct {
	WithinRadius   bool
	DistanceMeters float64
}

// Evaluate computes the distance from position to the zone center and
// whether it falls inside the geofence. A distance exactly equal to the
// radius counts as inside.
func (z Zone) Evaluate(position geo.Point) GeofenceResult {
	distance := geo.DistanceMeters(position, z.Center())
	return GeofenceResult{
		WithinRadius:   distance <= float64(z.RadiusMeters),
		DistanceMeters: distance,
	}
}

// AuthorizeCheckIn gates a check-in attempt against the zone. It returns nil
// when the position is inside the geofence and an *OutOfRangeError carrying
// the measured distance otherwise.
func (z Zone) AuthorizeCheckIn(position geo.Point) error {
	result := z.Evaluate(position)
	if !result.WithinRadius {
		return &OutOfRangeError{
			DistanceMeters: result.DistanceMeters,
			RadiusMeters:   z.RadiusMeters,
		}
	}
	return nil
}
