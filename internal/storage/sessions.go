package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned when a session ID is unknown.
var ErrSessionNotFound = errors.New("storage: session not found")

// Counter names a per-session command counter.
type Counter string

const (
	CounterScrambles Counter = "scrambles"
	CounterSolves    Counter = "solves"
	CounterResets    Counter = "resets"
)

// Session is one run of the interactive cube.
type Session struct {
	SessionID string
	StartedAt time.Time
	EndedAt   *time.Time
	Scrambles int
	Solves    int
	Resets    int
	Moves     int
}

// Duration returns how long the session lasted, or 0 while it is open.
func (s Session) Duration() time.Duration {
	if s.EndedAt == nil {
		return 0
	}
	return s.EndedAt.Sub(s.StartedAt)
}

// SessionRepository provides CRUD operations for sessions.
type SessionRepository struct {
	db *DB
}

// NewSessionRepository creates a new session repository.
func NewSessionRepository(db *DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create starts a new session and returns its ID.
func (r *SessionRepository) Create() (string, error) {
	id := uuid.New().String()

	_, err := r.db.Exec(`
		INSERT INTO sessions (session_id, started_at)
		VALUES (?, ?)
	`, id, formatTime(time.Now()))
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	return id, nil
}

// End marks a session as finished.
func (r *SessionRepository) End(sessionID string) error {
	result, err := r.db.Exec(`
		UPDATE sessions SET ended_at = ? WHERE session_id = ?
	`, formatTime(time.Now()), sessionID)
	if err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}
	if n == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// IncrementCounter bumps one of the command counters of a session.
func (r *SessionRepository) IncrementCounter(sessionID string, counter Counter) error {
	var column string
	switch counter {
	case CounterScrambles, CounterSolves, CounterResets:
		column = string(counter)
	default:
		return fmt.Errorf("unknown counter %q", counter)
	}

	_, err := r.db.Exec(
		fmt.Sprintf("UPDATE sessions SET %s = %s + 1 WHERE session_id = ?", column, column),
		sessionID,
	)
	if err != nil {
		return fmt.Errorf("failed to increment %s: %w", column, err)
	}
	return nil
}

const sessionColumns = `session_id, started_at, ended_at, scrambles, solves, resets, moves`

func scanSession(scan func(dest ...any) error) (Session, error) {
	var s Session
	var startedAt string
	var endedAt sql.NullString

	err := scan(&s.SessionID, &startedAt, &endedAt, &s.Scrambles, &s.Solves, &s.Resets, &s.Moves)
	if err != nil {
		return s, err
	}

	s.StartedAt = parseTime(startedAt)
	if endedAt.Valid {
		t := parseTime(endedAt.String)
		s.EndedAt = &t
	}
	return s, nil
}

// Get retrieves a session by ID.
func (r *SessionRepository) Get(sessionID string) (*Session, error) {
	row := r.db.QueryRow(`SELECT `+sessionColumns+` FROM sessions WHERE session_id = ?`, sessionID)

	s, err := scanSession(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &s, nil
}

// List retrieves the most recent sessions, newest first.
func (r *SessionRepository) List(limit int) ([]Session, error) {
	rows, err := r.db.Query(`
		SELECT `+sessionColumns+`
		FROM sessions
		ORDER BY started_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		s, err := scanSession(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, s)
	}

	return sessions, rows.Err()
}
