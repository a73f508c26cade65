package cli

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/SeamusWaldron/twistycube"
	"github.com/SeamusWaldron/twistycube/internal/config"
	"github.com/SeamusWaldron/twistycube/internal/storage"
)

// journal records a play session. It only writes; nothing is ever loaded
// back into a controller. Failures are logged and otherwise ignored so a
// broken database never interrupts play.
type journal struct {
	db        *storage.DB
	sessions  *storage.SessionRepository
	moves     *storage.MoveRepository
	sessionID string
	log       logrus.FieldLogger
}

// openDB opens the journal database named by the settings.
func openDB(s config.Settings) (*storage.DB, error) {
	if s.DBPath != "" {
		return storage.Open(s.DBPath)
	}
	return storage.OpenDefault()
}

func openJournal(s config.Settings, log logrus.FieldLogger) (*journal, error) {
	db, err := openDB(s)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}

	sessions := storage.NewSessionRepository(db)
	id, err := sessions.Create()
	if err != nil {
		db.Close()
		return nil, err
	}

	log.WithFields(logrus.Fields{"session": id, "db": db.Path()}).Info("Journal session started")
	return &journal{
		db:        db,
		sessions:  sessions,
		moves:     storage.NewMoveRepository(db),
		sessionID: id,
		log:       log,
	}, nil
}

func (j *journal) move(ev twistycube.MoveEvent) {
	if j == nil {
		return
	}
	if _, err := j.moves.Create(j.sessionID, ev, time.Now()); err != nil {
		j.log.WithError(err).Warn("Failed to journal move")
	}
}

func (j *journal) count(c storage.Counter) {
	if j == nil {
		return
	}
	if err := j.sessions.IncrementCounter(j.sessionID, c); err != nil {
		j.log.WithError(err).Warn("Failed to update session counter")
	}
}

func (j *journal) close() {
	if j == nil {
		return
	}
	if err := j.sessions.End(j.sessionID); err != nil {
		j.log.WithError(err).Warn("Failed to end session")
	}
	j.db.Close()
}
