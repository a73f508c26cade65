package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/SeamusWaldron/twistycube"
)

// MoveRecord represents a journaled quarter turn.
type MoveRecord struct {
	MoveID    int64
	SessionID string
	MoveIndex int
	TsMs      int64
	Axis      string
	Layer     int
	Direction int
	Notation  string
	Source    string
}

// Move converts the record back into a cube move.
func (m MoveRecord) Move() (twistycube.Move, error) {
	var axis twistycube.Axis
	switch m.Axis {
	case "x":
		axis = twistycube.AxisX
	case "y":
		axis = twistycube.AxisY
	case "z":
		axis = twistycube.AxisZ
	default:
		return twistycube.Move{}, fmt.Errorf("%w: axis %q", twistycube.ErrInvalidMove, m.Axis)
	}

	mv := twistycube.Move{Axis: axis, Layer: m.Layer, Direction: twistycube.Direction(m.Direction)}
	if !mv.Valid() {
		return twistycube.Move{}, fmt.Errorf("%w: %+v", twistycube.ErrInvalidMove, m)
	}
	return mv, nil
}

// MoveRepository provides CRUD operations for moves.
type MoveRepository struct {
	db *DB
}

// NewMoveRepository creates a new move repository.
func NewMoveRepository(db *DB) *MoveRepository {
	return &MoveRepository{db: db}
}

// Create journals a completed move and bumps the session's move count.
func (r *MoveRepository) Create(sessionID string, ev twistycube.MoveEvent, at time.Time) (int64, error) {
	var id int64
	err := r.db.Transaction(func(tx *sql.Tx) error {
		result, err := tx.Exec(`
			INSERT INTO moves (session_id, move_index, ts_ms, axis, layer, direction, notation, source)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, sessionID, ev.Index, at.UnixMilli(), ev.Move.Axis.String(), ev.Move.Layer,
			int(ev.Move.Direction), ev.Move.Notation(), ev.Source.String())
		if err != nil {
			return fmt.Errorf("failed to create move: %w", err)
		}

		id, err = result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get move ID: %w", err)
		}

		_, err = tx.Exec(`UPDATE sessions SET moves = moves + 1 WHERE session_id = ?`, sessionID)
		if err != nil {
			return fmt.Errorf("failed to update session move count: %w", err)
		}
		return nil
	})
	return id, err
}

// GetBySession retrieves all moves of a session in order.
func (r *MoveRepository) GetBySession(sessionID string) ([]MoveRecord, error) {
	rows, err := r.db.Query(`
		SELECT move_id, session_id, move_index, ts_ms, axis, layer, direction, notation, source
		FROM moves
		WHERE session_id = ?
		ORDER BY move_id
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get moves: %w", err)
	}
	defer rows.Close()

	var moves []MoveRecord
	for rows.Next() {
		var m MoveRecord
		err := rows.Scan(&m.MoveID, &m.SessionID, &m.MoveIndex, &m.TsMs, &m.Axis, &m.Layer, &m.Direction, &m.Notation, &m.Source)
		if err != nil {
			return nil, fmt.Errorf("failed to scan move: %w", err)
		}
		moves = append(moves, m)
	}

	return moves, rows.Err()
}

// Count returns the number of moves journaled for a session.
func (r *MoveRepository) Count(sessionID string) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM moves WHERE session_id = ?", sessionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count moves: %w", err)
	}
	return count, nil
}
