package shift

import (
	"context"
	"errors"
	"fmt"

	"github.com/teamtracker/teamtracker-backend-go/internal/domain/shift"
	"github.com/teamtracker/teamtracker-backend-go/internal/domain/user"
)

type ShiftServiceImpl struct {
	shiftRepo shift.Repository
	userRepo  user.Repository
}

func NewShiftService(shiftRepo shift.Repository, userRepo user.Repository) shift.Service {
	return &ShiftServiceImpl{
		shiftRepo: shiftRepo,
		userRepo:  userRepo,
	}
}

// CreateShift implements shift.Service.
func (s *ShiftServiceImpl) CreateShift(ctx context.Context, req shift.CreateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	// The assignee must exist; a dangling shift would never match anyone.
	if _, err := s.userRepo.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return shift.ShiftResponse{}, err
		}
		return shift.ShiftResponse{}, fmt.Errorf("failed to look up shift assignee: %w", err)
	}

	created, err := s.shiftRepo.Create(ctx, shift.Shift{
		UserID:       req.UserID,
		DayOfWeek:    req.DayOfWeek,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		CenterLat:    req.Center.Lat,
		CenterLng:    req.Center.Lng,
		RadiusMeters: req.Radius,
	})
	if err != nil {
		return shift.ShiftResponse{}, fmt.Errorf("failed to create shift: %w", err)
	}

	return mapShiftToResponse(created), nil
}

// ListShifts implements shift.Service.
func (s *ShiftServiceImpl) ListShifts(ctx context.Context, filter shift.ShiftFilter) ([]shift.ShiftResponse, error) {
	shifts, err := s.shiftRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}

	responses := make([]shift.ShiftResponse, 0, len(shifts))
	for _, sh := range shifts {
		responses = append(responses, mapShiftToResponse(sh))
	}
	return responses, nil
}

// DeleteShift implements shift.Service.
func (s *ShiftServiceImpl) DeleteShift(ctx context.Context, id string) error {
	if err := s.shiftRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, shift.ErrShiftNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete shift: %w", err)
	}
	return nil
}

func mapShiftToResponse(s shift.Shift) shift.ShiftResponse {
	return shift.ShiftResponse{
		ID:        s.ID,
		UserID:    s.UserID,
		Username:  s.Username,
		DayOfWeek: s.DayOfWeek,
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		Center: shift.Center{
			Lat: s.CenterLat,
			Lng: s.CenterLng,
		},
		Radius: s.RadiusMeters,
	}
}
