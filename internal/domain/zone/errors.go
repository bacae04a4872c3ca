package zone

import (
	"errors"
	"fmt"

	"github.com/attendly/attendly-backend-go/internal/pkg/geo"
)

var (
	ErrZoneNotFound = errors.New("zone not found")
)

// OutOfRangeError reports a check-in attempt from outside a zone's geofence.
// The distance and radius are kept so clients can render an actionable
// message.
type OutOfRangeError struct {
	DistanceMeters float64
	RadiusMeters   int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf(
		"you are %s away from the office, you must be within %d m to check in",
		geo.FormatDistance(e.DistanceMeters), e.RadiusMeters,
	)
}
