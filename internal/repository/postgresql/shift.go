package postgresql

import (
	"context"
	"fmt"

	"github.com/teamtracker/teamtracker-backend-go/internal/domain/shift"
	"github.com/teamtracker/teamtracker-backend-go/internal/pkg/database"
)

type shiftRepository struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) shift.Repository {
	return &shiftRepository{db: db}
}

// Create implements shift.Repository.
func (r *shiftRepository) Create(ctx context.Context, newShift shift.Shift) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO shifts (user_id, day_of_week, start_time, end_time, center_lat, center_lng, radius)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		newShift.UserID,
		newShift.DayOfWeek,
		newShift.StartTime,
		newShift.EndTime,
		newShift.CenterLat,
		newShift.CenterLng,
		newShift.RadiusMeters,
	).Scan(&newShift.ID, &newShift.CreatedAt)

	if err != nil {
		return shift.Shift{}, fmt.Errorf("failed to create shift: %w", err)
	}

	return newShift, nil
}

// ListByUser implements shift.Repository.
func (r *shiftRepository) ListByUser(ctx context.Context, userID string) ([]shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, day_of_week, start_time, end_time, center_lat, center_lng, radius, created_at
		FROM shifts
		WHERE user_id = $1
	`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts by user: %w", err)
	}
	defer rows.Close()

	shifts := make([]shift.Shift, 0)
	for rows.Next() {
		var s shift.Shift
		if err := rows.Scan(
			&s.ID, &s.UserID, &s.DayOfWeek, &s.StartTime, &s.EndTime,
			&s.CenterLat, &s.CenterLng, &s.RadiusMeters, &s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shifts: %w", err)
	}

	return shifts, nil
}

// List implements shift.Repository.
func (r *shiftRepository) List(ctx context.Context, filter shift.ShiftFilter) ([]shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT s.id, s.user_id, s.day_of_week, s.start_time, s.end_time,
		       s.center_lat, s.center_lng, s.radius, s.created_at,
		       u.username
		FROM shifts s
		LEFT JOIN users u ON u.id = s.user_id
	`
	args := []interface{}{}
	if filter.UserID != nil {
		query += ` WHERE s.user_id = $1`
		args = append(args, *filter.UserID)
	}
	query += ` ORDER BY s.created_at DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	defer rows.Close()

	shifts := make([]shift.Shift, 0)
	for rows.Next() {
		var s shift.Shift
		if err := rows.Scan(
			&s.ID, &s.UserID, &s.DayOfWeek, &s.StartTime, &s.EndTime,
			&s.CenterLat, &s.CenterLng, &s.RadiusMeters, &s.CreatedAt,
			&s.Username,
		); err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shifts: %w", err)
	}

	return shifts, nil
}

// Delete implements shift.Repository.
func (r *shiftRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM shifts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete shift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrShiftNotFound
	}

	return nil
}
