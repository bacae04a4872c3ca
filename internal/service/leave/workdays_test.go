package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWorkingDays(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{
			name:  "single weekday",
			start: date(2025, time.June, 10), // Tuesday
			end:   date(2025, time.June, 10),
			want:  1,
		},
		{
			name:  "single saturday",
			start: date(2025, time.June, 14),
			end:   date(2025, time.June, 14),
			want:  0,
		},
		{
			name:  "full work week",
			start: date(2025, time.June, 9), // Monday
			end:   date(2025, time.June, 13),
			want:  5,
		},
		{
			name:  "week including weekend",
			start: date(2025, time.June, 9), // Monday
			end:   date(2025, time.June, 15),
			want:  5,
		},
		{
			name:  "saturday to sunday only",
			start: date(2025, time.June, 14),
			end:   date(2025, time.June, 15),
			want:  0,
		},
		{
			name:  "end before start",
			start: date(2025, time.June, 10),
			end:   date(2025, time.June, 9),
			want:  0,
		},
		{
			name:  "spanning two weekends",
			start: date(2025, time.June, 6), // Friday
			end:   date(2025, time.June, 16),
			want:  7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WorkingDays(tt.start, tt.end))
		})
	}
}
