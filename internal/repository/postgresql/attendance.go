package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/teamtracker/teamtracker-backend-go/internal/domain/attendance"
	"github.com/teamtracker/teamtracker-backend-go/internal/pkg/database"
)

type sessionRepository struct {
	db *database.DB
}

func NewSessionRepository(db *database.DB) attendance.SessionRepository {
	return &sessionRepository{db: db}
}

// Open implements attendance.SessionRepository.
//
// The insert is guarded by an advisory lock on the employee id plus a
// NOT EXISTS check, so two concurrent check-ins for the same employee can
// never both commit an open session.
func (r *sessionRepository) Open(ctx context.Context, session attendance.Session, ping attendance.Ping) (attendance.Session, error) {
	err := WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, session.UserID); err != nil {
			return fmt.Errorf("acquire check-in lock: %w", err)
		}

		query := `
			INSERT INTO attendance_sessions (user_id, check_in_time, status)
			SELECT $1, $2, $3
			WHERE NOT EXISTS (
				SELECT 1 FROM attendance_sessions
				WHERE user_id = $1 AND check_out_time IS NULL
			)
			RETURNING id, created_at
		`

		err := tx.QueryRow(ctx, query,
			session.UserID,
			session.CheckInTime,
			session.Status,
		).Scan(&session.ID, &session.CreatedAt)

		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return attendance.ErrAlreadyCheckedIn
			}
			return fmt.Errorf("failed to open session: %w", err)
		}

		pingQuery := `
			INSERT INTO location_pings (user_id, lat, lng, tag, recorded_at)
			VALUES ($1, $2, $3, $4, $5)
		`
		if _, err := tx.Exec(ctx, pingQuery,
			ping.UserID, ping.Latitude, ping.Longitude, ping.Tag, ping.RecordedAt,
		); err != nil {
			return fmt.Errorf("failed to record check-in ping: %w", err)
		}

		return nil
	})

	if err != nil {
		return attendance.Session{}, err
	}

	return session, nil
}

// GetOpenSession implements attendance.SessionRepository.
func (r *sessionRepository) GetOpenSession(ctx context.Context, userID string) (*attendance.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, check_in_time, check_out_time, status, created_at
		FROM attendance_sessions
		WHERE user_id = $1
		  AND check_out_time IS NULL
		ORDER BY check_in_time DESC
		LIMIT 1
	`

	var s attendance.Session
	err := q.QueryRow(ctx, query, userID).Scan(
		&s.ID, &s.UserID, &s.CheckInTime, &s.CheckOutTime, &s.Status, &s.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // no open session
		}
		return nil, fmt.Errorf("failed to get open session: %w", err)
	}

	return &s, nil
}

// CloseOpenSessions implements attendance.SessionRepository.
func (r *sessionRepository) CloseOpenSessions(ctx context.Context, userID string, endTime time.Time, status string) ([]attendance.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_sessions
		SET check_out_time = $2, status = $3
		WHERE user_id = $1
		  AND check_out_time IS NULL
		RETURNING id, user_id, check_in_time, check_out_time, status, created_at
	`

	rows, err := q.Query(ctx, query, userID, endTime, status)
	if err != nil {
		return nil, fmt.Errorf("failed to close open sessions: %w", err)
	}
	defer rows.Close()

	return scanSessions(rows)
}

// CloseStaleSessions implements attendance.SessionRepository.
func (r *sessionRepository) CloseStaleSessions(ctx context.Context, cutoff time.Time, endTime time.Time, status string) ([]attendance.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_sessions
		SET check_out_time = $2, status = $3
		WHERE check_in_time < $1
		  AND check_out_time IS NULL
		RETURNING id, user_id, check_in_time, check_out_time, status, created_at
	`

	rows, err := q.Query(ctx, query, cutoff, endTime, status)
	if err != nil {
		return nil, fmt.Errorf("failed to close stale sessions: %w", err)
	}
	defer rows.Close()

	return scanSessions(rows)
}

func scanSessions(rows pgx.Rows) ([]attendance.Session, error) {
	sessions := make([]attendance.Session, 0)
	for rows.Next() {
		var s attendance.Session
		if err := rows.Scan(
			&s.ID, &s.UserID, &s.CheckInTime, &s.CheckOutTime, &s.Status, &s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sessions: %w", err)
	}

	return sessions, nil
}

type pingRepository struct {
	db *database.DB
}

func NewPingRepository(db *database.DB) attendance.PingRepository {
	return &pingRepository{db: db}
}

// Create implements attendance.PingRepository.
func (r *pingRepository) Create(ctx context.Context, newPing attendance.Ping) (attendance.Ping, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO location_pings (user_id, lat, lng, tag, recorded_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := q.QueryRow(ctx, query,
		newPing.UserID,
		newPing.Latitude,
		newPing.Longitude,
		newPing.Tag,
		newPing.RecordedAt,
	).Scan(&newPing.ID)

	if err != nil {
		return attendance.Ping{}, fmt.Errorf("failed to create ping: %w", err)
	}

	return newPing, nil
}

// GetLatest implements attendance.PingRepository.
func (r *pingRepository) GetLatest(ctx context.Context, userID string) (*attendance.Ping, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, lat, lng, tag, recorded_at
		FROM location_pings
		WHERE user_id = $1
		ORDER BY recorded_at DESC
		LIMIT 1
	`

	var p attendance.Ping
	err := q.QueryRow(ctx, query, userID).Scan(
		&p.ID, &p.UserID, &p.Latitude, &p.Longitude, &p.Tag, &p.RecordedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // employee has never pinged
		}
		return nil, fmt.Errorf("failed to get latest ping: %w", err)
	}

	return &p, nil
}

// List implements attendance.PingRepository.
func (r *pingRepository) List(ctx context.Context, filter attendance.PingFilter) ([]attendance.Ping, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT p.id, p.user_id, p.lat, p.lng, p.tag, p.recorded_at, u.username
		FROM location_pings p
		LEFT JOIN users u ON u.id = p.user_id
	`
	conditions := []string{}
	args := []interface{}{}

	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		conditions = append(conditions, fmt.Sprintf("p.user_id = $%d", len(args)))
	}
	if filter.Date != nil && *filter.Date != "" {
		args = append(args, *filter.Date)
		conditions = append(conditions, fmt.Sprintf("p.recorded_at::date = $%d::date", len(args)))
	}

	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += ` ORDER BY p.recorded_at DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list pings: %w", err)
	}
	defer rows.Close()

	pings := make([]attendance.Ping, 0)
	for rows.Next() {
		var p attendance.Ping
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.Latitude, &p.Longitude, &p.Tag, &p.RecordedAt, &p.Username,
		); err != nil {
			return nil, fmt.Errorf("failed to scan ping: %w", err)
		}
		pings = append(pings, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate pings: %w", err)
	}

	return pings, nil
}
