package attendance

import (
	"github.com/teamtracker/teamtracker-backend-go/internal/domain/attendance"
	"github.com/teamtracker/teamtracker-backend-go/internal/domain/shift"
	"github.com/teamtracker/teamtracker-backend-go/internal/pkg/geo"
)

// matchShift returns the first shift, in the order given, whose zone
// contains the coordinate; a distance exactly equal to the radius counts as
// inside. Returns nil when no shift qualifies.
//
// Matching is by location only. The day/time window on a shift is advisory
// metadata and deliberately not consulted, so an employee can check in to
// any of their zones regardless of the declared day.
func matchShift(coord attendance.Coordinate, shifts []shift.Shift) *shift.Shift {
	for i := range shifts {
		s := &shifts[i]
		if geo.DistanceMeters(coord.Lat, coord.Lng, s.CenterLat, s.CenterLng) <= s.RadiusMeters {
			return s
		}
	}
	return nil
}
