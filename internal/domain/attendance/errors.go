package attendance

import "errors"

// Attendance domain errors
var (
	// ErrOutsideZone rejects a check-in attempted outside every assigned
	// shift zone.
	ErrOutsideZone = errors.New("you are not inside any assigned shift zone")

	// ErrAlreadyCheckedIn rejects a check-in while a session is still open.
	ErrAlreadyCheckedIn = errors.New("an attendance session is already open")
)
