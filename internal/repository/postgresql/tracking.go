package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/inkstudio/studio-backend-go/internal/domain/tracking"
	"github.com/inkstudio/studio-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type sessionRepository struct {
	db *database.DB
}

func NewSessionRepository(db *database.DB) tracking.SessionRepository {
	return &sessionRepository{db: db}
}

const sessionColumns = `id, user_id, studio_id, clock_in, clock_out, total_minutes,
	location, latitude, longitude, notes, created_at, updated_at`

func scanSession(row pgx.Row) (tracking.Session, error) {
	var s tracking.Session
	err := row.Scan(
		&s.ID, &s.UserID, &s.StudioID, &s.ClockIn, &s.ClockOut, &s.TotalMinutes,
		&s.Location, &s.Latitude, &s.Longitude, &s.Notes,
		&s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

// CreateSession implements tracking.SessionRepository.
func (r *sessionRepository) CreateSession(ctx context.Context, session tracking.Session) (tracking.Session, error) {
	q := database.GetQuerier(ctx, r.db)

	session.ID = uuid.Must(uuid.NewV7()).String()

	query := `
		INSERT INTO time_tracking_sessions (
			id, user_id, studio_id, clock_in, location, latitude, longitude, notes
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		session.ID,
		session.UserID,
		session.StudioID,
		session.ClockIn,
		session.Location,
		session.Latitude,
		session.Longitude,
		session.Notes,
	).Scan(&session.CreatedAt, &session.UpdatedAt)

	if err != nil {
		return tracking.Session{}, fmt.Errorf("failed to create session: %w", err)
	}

	return session, nil
}

// GetSessionByID implements tracking.SessionRepository.
func (r *sessionRepository) GetSessionByID(ctx context.Context, id string) (tracking.Session, error) {
	q := database.GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM time_tracking_sessions WHERE id = $1`, sessionColumns)

	session, err := scanSession(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return tracking.Session{}, tracking.ErrSessionNotFound
		}
		return tracking.Session{}, fmt.Errorf("failed to get session: %w", err)
	}

	breaks, err := r.ListBreaks(ctx, session.ID)
	if err != nil {
		return tracking.Session{}, err
	}
	session.Breaks = breaks

	return session, nil
}

// GetOpenSession implements tracking.SessionRepository.
func (r *sessionRepository) GetOpenSession(ctx context.Context, userID string) (*tracking.Session, error) {
	q := database.GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM time_tracking_sessions
		WHERE user_id = $1
		  AND clock_out IS NULL
		ORDER BY clock_in DESC
		LIMIT 1
	`, sessionColumns)

	session, err := scanSession(q.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // user is clocked out
		}
		return nil, fmt.Errorf("failed to get open session: %w", err)
	}

	breaks, err := r.ListBreaks(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	session.Breaks = breaks

	return &session, nil
}

// CloseSession implements tracking.SessionRepository.
func (r *sessionRepository) CloseSession(ctx context.Context, id string, clockOut time.Time, totalMinutes int) error {
	q := database.GetQuerier(ctx, r.db)

	query := `
		UPDATE time_tracking_sessions
		SET clock_out = $2, total_minutes = $3, updated_at = NOW()
		WHERE id = $1
		  AND clock_out IS NULL
	`

	tag, err := q.Exec(ctx, query, id, clockOut, totalMinutes)
	if err != nil {
		return fmt.Errorf("failed to close session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return tracking.ErrSessionClosed
	}

	return nil
}

// UpdateSessionLocation implements tracking.SessionRepository.
func (r *sessionRepository) UpdateSessionLocation(ctx context.Context, id string, lat, lng float64) error {
	q := database.GetQuerier(ctx, r.db)

	query := `
		UPDATE time_tracking_sessions
		SET latitude = $2, longitude = $3, updated_at = NOW()
		WHERE id = $1
	`

	if _, err := q.Exec(ctx, query, id, lat, lng); err != nil {
		return fmt.Errorf("failed to update session location: %w", err)
	}

	return nil
}

// ListSessions implements tracking.SessionRepository.
func (r *sessionRepository) ListSessions(ctx context.Context, userID string, from, to time.Time) ([]tracking.Session, error) {
	q := database.GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM time_tracking_sessions
		WHERE user_id = $1
		  AND clock_in >= $2
		  AND clock_in <= $3
		ORDER BY clock_in DESC
	`, sessionColumns)

	rows, err := q.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	sessions, err := collectSessions(rows)
	if err != nil {
		return nil, err
	}

	for i := range sessions {
		breaks, err := r.ListBreaks(ctx, sessions[i].ID)
		if err != nil {
			return nil, err
		}
		sessions[i].Breaks = breaks
	}

	return sessions, nil
}

// ListOpenSessions implements tracking.SessionRepository.
func (r *sessionRepository) ListOpenSessions(ctx context.Context) ([]tracking.Session, error) {
	q := database.GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM time_tracking_sessions
		WHERE clock_out IS NULL
		ORDER BY clock_in
	`, sessionColumns)

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list open sessions: %w", err)
	}
	defer rows.Close()

	return collectSessions(rows)
}

func collectSessions(rows pgx.Rows) ([]tracking.Session, error) {
	var sessions []tracking.Session
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

// CreateBreak implements tracking.SessionRepository.
func (r *sessionRepository) CreateBreak(ctx context.Context, brk tracking.BreakSession) (tracking.BreakSession, error) {
	q := database.GetQuerier(ctx, r.db)

	brk.ID = uuid.Must(uuid.NewV7()).String()

	query := `
		INSERT INTO break_sessions (id, session_id, start_time, reason)
		VALUES ($1, $2, $3, $4)
	`

	if _, err := q.Exec(ctx, query, brk.ID, brk.SessionID, brk.StartTime, brk.Reason); err != nil {
		return tracking.BreakSession{}, fmt.Errorf("failed to create break: %w", err)
	}

	return brk, nil
}

// GetOpenBreak implements tracking.SessionRepository.
func (r *sessionRepository) GetOpenBreak(ctx context.Context, sessionID string) (*tracking.BreakSession, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		SELECT id, session_id, start_time, end_time, duration_minutes, reason
		FROM break_sessions
		WHERE session_id = $1
		  AND end_time IS NULL
		ORDER BY start_time DESC
		LIMIT 1
	`

	var brk tracking.BreakSession
	err := q.QueryRow(ctx, query, sessionID).Scan(
		&brk.ID, &brk.SessionID, &brk.StartTime, &brk.EndTime, &brk.DurationMinutes, &brk.Reason,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // no open break
		}
		return nil, fmt.Errorf("failed to get open break: %w", err)
	}

	return &brk, nil
}

// CloseBreak implements tracking.SessionRepository.
func (r *sessionRepository) CloseBreak(ctx context.Context, id string, endTime time.Time, durationMinutes int) error {
	q := database.GetQuerier(ctx, r.db)

	query := `
		UPDATE break_sessions
		SET end_time = $2, duration_minutes = $3
		WHERE id = $1
		  AND end_time IS NULL
	`

	tag, err := q.Exec(ctx, query, id, endTime, durationMinutes)
	if err != nil {
		return fmt.Errorf("failed to close break: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return tracking.ErrNoOpenBreak
	}

	return nil
}

// ListBreaks implements tracking.SessionRepository.
func (r *sessionRepository) ListBreaks(ctx context.Context, sessionID string) ([]tracking.BreakSession, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		SELECT id, session_id, start_time, end_time, duration_minutes, reason
		FROM break_sessions
		WHERE session_id = $1
		ORDER BY start_time
	`

	rows, err := q.Query(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list breaks: %w", err)
	}
	defer rows.Close()

	var breaks []tracking.BreakSession
	for rows.Next() {
		var brk tracking.BreakSession
		if err := rows.Scan(&brk.ID, &brk.SessionID, &brk.StartTime, &brk.EndTime, &brk.DurationMinutes, &brk.Reason); err != nil {
			return nil, fmt.Errorf("failed to scan break: %w", err)
		}
		breaks = append(breaks, brk)
	}

	return breaks, rows.Err()
}
