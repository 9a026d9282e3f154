package shift

import (
	"github.com/teamtracker/teamtracker-backend-go/internal/pkg/validator"
)

type CreateShiftRequest struct {
	UserID    string  `json:"user_id"`
	DayOfWeek string  `json:"day_of_week"`
	StartTime string  `json:"start_time"` // HH:MM
	EndTime   string  `json:"end_time"`   // HH:MM
	Center    Center  `json:"center"`
	Radius    float64 `json:"radius"` // meters
}

type Center struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (r *CreateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	if validator.IsEmpty(r.DayOfWeek) {
		errs = append(errs, validator.ValidationError{
			Field:   "day_of_week",
			Message: "day_of_week is required",
		})
	}

	if r.StartTime != "" && !validator.IsValidTimeOfDay(r.StartTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be in HH:MM format",
		})
	}

	if r.EndTime != "" && !validator.IsValidTimeOfDay(r.EndTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be in HH:MM format",
		})
	}

	if !validator.IsValidLatitude(r.Center.Lat) {
		errs = append(errs, validator.ValidationError{
			Field:   "center.lat",
			Message: "latitude must be between -90 and 90",
		})
	}

	if !validator.IsValidLongitude(r.Center.Lng) {
		errs = append(errs, validator.ValidationError{
			Field:   "center.lng",
			Message: "longitude must be between -180 and 180",
		})
	}

	if r.Radius <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "radius",
			Message: "radius must be greater than 0",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ShiftResponse struct {
	ID        string  `json:"id"`
	UserID    string  `json:"user_id"`
	Username  *string `json:"username,omitempty"`
	DayOfWeek string  `json:"day_of_week"`
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`
	Center    Center  `json:"center"`
	Radius    float64 `json:"radius"`
}

type ShiftFilter struct {
	UserID *string `json:"user_id,omitempty"`
}
