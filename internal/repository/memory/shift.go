package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/teamtracker/teamtracker-backend-go/internal/domain/shift"
)

type ShiftRepository struct {
	mu     sync.RWMutex
	shifts map[string]shift.Shift
	order  []string // creation order, so ListByUser is deterministic
}

func NewShiftRepository() *ShiftRepository {
	return &ShiftRepository{shifts: make(map[string]shift.Shift)}
}

func (r *ShiftRepository) Create(_ context.Context, newShift shift.Shift) (shift.Shift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	newShift.ID = uuid.NewString()
	newShift.CreatedAt = time.Now().UTC()
	r.shifts[newShift.ID] = newShift
	r.order = append(r.order, newShift.ID)
	return newShift, nil
}

func (r *ShiftRepository) ListByUser(_ context.Context, userID string) ([]shift.Shift, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	shifts := make([]shift.Shift, 0)
	for _, id := range r.order {
		s, ok := r.shifts[id]
		if !ok || s.UserID != userID {
			continue
		}
		shifts = append(shifts, s)
	}
	return shifts, nil
}

func (r *ShiftRepository) List(_ context.Context, filter shift.ShiftFilter) ([]shift.Shift, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	shifts := make([]shift.Shift, 0)
	for _, id := range r.order {
		s, ok := r.shifts[id]
		if !ok {
			continue
		}
		if filter.UserID != nil && s.UserID != *filter.UserID {
			continue
		}
		shifts = append(shifts, s)
	}
	return shifts, nil
}

func (r *ShiftRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.shifts[id]; !ok {
		return shift.ErrShiftNotFound
	}
	delete(r.shifts, id)
	return nil
}
