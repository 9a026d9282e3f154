package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/teamtracker/teamtracker-backend-go/internal/domain/attendance"
	"github.com/teamtracker/teamtracker-backend-go/internal/domain/shift"
	"github.com/teamtracker/teamtracker-backend-go/internal/pkg/geo"
)

func zone(id string, lat, lng, radius float64) shift.Shift {
	return shift.Shift{
		ID:           id,
		UserID:       "user-1",
		DayOfWeek:    "monday",
		CenterLat:    lat,
		CenterLng:    lng,
		RadiusMeters: radius,
	}
}

func TestMatchShift_InsideZone(t *testing.T) {
	shifts := []shift.Shift{zone("z1", 0, 0, 1000)}

	// Roughly 15.7 meters from the origin.
	matched := matchShift(attendance.Coordinate{Lat: 0.0001, Lng: 0.0001}, shifts)

	assert.NotNil(t, matched)
	assert.Equal(t, "z1", matched.ID)
}

func TestMatchShift_OutsideZone(t *testing.T) {
	shifts := []shift.Shift{zone("z1", 0, 0, 1000)}

	// (10, 10) is over a thousand kilometers from the origin.
	matched := matchShift(attendance.Coordinate{Lat: 10, Lng: 10}, shifts)

	assert.Nil(t, matched)
}

func TestMatchShift_BoundaryIsInside(t *testing.T) {
	center := attendance.Coordinate{Lat: 0, Lng: 0}
	point := attendance.Coordinate{Lat: 0.0001, Lng: 0.0001}
	exact := geo.DistanceMeters(center.Lat, center.Lng, point.Lat, point.Lng)

	shifts := []shift.Shift{zone("z1", center.Lat, center.Lng, exact)}

	matched := matchShift(point, shifts)

	assert.NotNil(t, matched, "distance exactly equal to radius must match")
}

func TestMatchShift_FirstMatchWins(t *testing.T) {
	// Both zones contain the point; the first assigned shift is chosen.
	shifts := []shift.Shift{
		zone("first", 0, 0, 5000),
		zone("second", 0.001, 0.001, 5000),
	}

	matched := matchShift(attendance.Coordinate{Lat: 0.0005, Lng: 0.0005}, shifts)

	assert.NotNil(t, matched)
	assert.Equal(t, "first", matched.ID)
}

func TestMatchShift_NoShifts(t *testing.T) {
	matched := matchShift(attendance.Coordinate{Lat: 0, Lng: 0}, nil)

	assert.Nil(t, matched)
}

func TestMatchShift_IgnoresDayAndTime(t *testing.T) {
	// A shift declared for a different day still matches by location alone.
	s := zone("z1", 0, 0, 1000)
	s.DayOfWeek = "sunday"
	s.StartTime = "09:00"
	s.EndTime = "17:00"

	matched := matchShift(attendance.Coordinate{Lat: 0, Lng: 0}, []shift.Shift{s})

	assert.NotNil(t, matched)
}
