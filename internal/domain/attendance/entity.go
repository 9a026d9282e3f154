package attendance

import (
	"time"
)

// Session terminal statuses and ping tags.
const (
	StatusActive       = "active"
	StatusCompleted    = "completed"
	StatusEmergencyOut = "emergency_out"

	// StatusOffline is the presence status reported for an employee with no
	// open session. It is never stored on a session row.
	StatusOffline = "offline"

	TagInZone    = "in_zone"
	TagOutOfZone = "out_of_zone"
)

// Session is one continuous open-to-closed attendance interval for an
// employee. At most one session per employee may be open at any time.
type Session struct {
	ID           string
	UserID       string
	CheckInTime  time.Time
	CheckOutTime *time.Time
	Status       string
	CreatedAt    time.Time

	// DTO
	Username *string
}

// Open reports whether the session has not been checked out yet.
func (s Session) Open() bool {
	return s.CheckOutTime == nil
}

// Ping is a single recorded location sample tied to an employee. The log is
// append-only: one ping at check-in and one per location update on shift.
type Ping struct {
	ID         string
	UserID     string
	Latitude   float64
	Longitude  float64
	Tag        string
	RecordedAt time.Time

	// DTO
	Username *string
}
