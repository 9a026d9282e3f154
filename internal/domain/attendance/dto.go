package attendance

import (
	"github.com/teamtracker/teamtracker-backend-go/internal/pkg/validator"
)

// Coordinate is a pair of finite floating-point degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type CheckInRequest struct {
	// UserID comes from the access token, not the request body.
	UserID     string     `json:"-"`
	Coordinate Coordinate `json:"coordinate"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	if !validator.IsValidLatitude(r.Coordinate.Lat) {
		errs = append(errs, validator.ValidationError{
			Field:   "coordinate.lat",
			Message: "latitude must be between -90 and 90",
		})
	}

	if !validator.IsValidLongitude(r.Coordinate.Lng) {
		errs = append(errs, validator.ValidationError{
			Field:   "coordinate.lng",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CheckOutRequest struct {
	UserID string `json:"-"`
	// Status defaults to "completed" when omitted.
	Status string `json:"status,omitempty"`
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	if r.Status == "" {
		r.Status = StatusCompleted
	}

	if !validator.IsInSlice(r.Status, []string{StatusCompleted, StatusEmergencyOut}) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: completed, emergency_out",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type PingRequest struct {
	UserID     string     `json:"-"`
	Coordinate Coordinate `json:"coordinate"`
}

func (r *PingRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	if !validator.IsValidLatitude(r.Coordinate.Lat) {
		errs = append(errs, validator.ValidationError{
			Field:   "coordinate.lat",
			Message: "latitude must be between -90 and 90",
		})
	}

	if !validator.IsValidLongitude(r.Coordinate.Lng) {
		errs = append(errs, validator.ValidationError{
			Field:   "coordinate.lng",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SessionResponse struct {
	ID           string  `json:"id"`
	UserID       string  `json:"user_id"`
	Username     *string `json:"username,omitempty"`
	CheckInTime  string  `json:"check_in_time"`
	CheckOutTime *string `json:"check_out_time,omitempty"`
	Status       string  `json:"status"`
}

type PingResponse struct {
	ID         string     `json:"id"`
	UserID     string     `json:"user_id"`
	Username   *string    `json:"username,omitempty"`
	Coordinate Coordinate `json:"coordinate"`
	Tag        string     `json:"tag"`
	RecordedAt string     `json:"recorded_at"`
}

// PresenceView is the derived online/offline view of one employee at query
// time. It is computed fresh on every call, never stored.
type PresenceView struct {
	UserID       string      `json:"user_id"`
	Username     string      `json:"username"`
	Role         string      `json:"role"`
	IsOnline     bool        `json:"is_online"`
	LastStatus   string      `json:"last_status"`
	LastLocation *Coordinate `json:"last_location,omitempty"`
}

type PingFilter struct {
	UserID *string `json:"user_id,omitempty"`
	Date   *string `json:"date,omitempty"` // YYYY-MM-DD
}

func (f *PingFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Date != nil && *f.Date != "" {
		if _, valid := validator.IsValidDate(*f.Date); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
