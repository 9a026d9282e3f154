package shift

import (
	"time"
)

// Shift assigns an employee to a circular geofence plus a nominal day/time
// window. The day and time fields are advisory: check-in matching is by
// location only.
type Shift struct {
	ID           string
	UserID       string
	DayOfWeek    string
	StartTime    string // HH:MM
	EndTime      string // HH:MM
	CenterLat    float64
	CenterLng    float64
	RadiusMeters float64
	CreatedAt    time.Time

	// DTO
	Username *string
}
