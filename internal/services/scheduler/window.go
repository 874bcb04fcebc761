package scheduler

import (
	"time"

	"github.com/onegreenvn/phishing-campaign-service/internal/models"
)

// InWindow reports whether now falls in the daily window [start, end).
// Windows never wrap past midnight.
func InWindow(now time.Time, start, end models.TimeOfDay) bool {
	m := models.TimeOfDayOf(now)
	return start <= m && m < end
}
