package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/twistycube"
	"github.com/SeamusWaldron/twistycube/internal/storage"
)

var (
	historyLimit int
	historyJSON  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List journaled play sessions",
	Long: `List recent play sessions recorded by 'twistycube play'.

Examples:
  twistycube history
  twistycube history --limit 5
  twistycube history show <session_id>
  twistycube history show --json`,
	RunE: runHistory,
}

var historyShowCmd = &cobra.Command{
	Use:   "show [session_id]",
	Short: "Show the moves of a session",
	Long: `Print the journaled moves of a session and the cube they produce.
Without a session ID the most recent session is shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistoryShow,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Number of sessions to list")

	historyCmd.AddCommand(historyShowCmd)
	historyShowCmd.Flags().BoolVar(&historyJSON, "json", false, "Print moves as JSON")
}

func runHistory(cmd *cobra.Command, args []string) error {
	_, settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	db, err := openDB(settings)
	if err != nil {
		return err
	}
	defer db.Close()

	sessions, err := storage.NewSessionRepository(db).List(historyLimit)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		return nil
	}

	fmt.Printf("%-36s  %-19s  %8s  %6s  %9s  %6s  %6s\n",
		"SESSION", "STARTED", "DURATION", "MOVES", "SCRAMBLES", "SOLVES", "RESETS")
	for _, s := range sessions {
		duration := "active"
		if s.EndedAt != nil {
			duration = s.Duration().Round(time.Second).String()
		}
		fmt.Printf("%-36s  %-19s  %8s  %6d  %9d  %6d  %6d\n",
			s.SessionID, s.StartedAt.Local().Format("2006-01-02 15:04:05"), duration,
			s.Moves, s.Scrambles, s.Solves, s.Resets)
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	_, settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	db, err := openDB(settings)
	if err != nil {
		return err
	}
	defer db.Close()

	sessionRepo := storage.NewSessionRepository(db)
	var session *storage.Session
	if len(args) == 1 {
		session, err = sessionRepo.Get(args[0])
		if errors.Is(err, storage.ErrSessionNotFound) {
			return fmt.Errorf("no session %s", args[0])
		}
		if err != nil {
			return err
		}
	} else {
		sessions, err := sessionRepo.List(1)
		if err != nil {
			return err
		}
		if len(sessions) == 0 {
			return fmt.Errorf("no sessions found")
		}
		session = &sessions[0]
	}

	records, err := storage.NewMoveRepository(db).GetBySession(session.SessionID)
	if err != nil {
		return err
	}

	if historyJSON {
		return printMovesJSON(records)
	}

	geom, err := settings.Geometry()
	if err != nil {
		return err
	}
	lattice, moves, err := replayJournal(twistycube.NewLattice(geom), records)
	if err != nil {
		return err
	}

	fmt.Printf("Session: %s\n", session.SessionID)
	fmt.Printf("Started: %s\n", session.StartedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Printf("Moves:   %d\n", len(records))
	if len(moves) > 0 {
		fmt.Printf("Since last reset: %s\n", moveStyle.Render(twistycube.CompactMoves(moves)))
	}
	fmt.Println()
	fmt.Print(renderNet(lattice.Facelets(), nil))
	return nil
}

// replayJournal applies journaled moves to a solved lattice. The move index
// restarts at 1 after every reset, so the lattice starts over there too.
// It returns the lattice and the moves applied since the last reset.
func replayJournal(l *twistycube.Lattice, records []storage.MoveRecord) (*twistycube.Lattice, []twistycube.Move, error) {
	var moves []twistycube.Move
	for i, r := range records {
		m, err := r.Move()
		if err != nil {
			return nil, nil, err
		}
		if r.MoveIndex == 1 && i > 0 {
			l.Reset()
			moves = moves[:0]
		}
		l.Apply(m)
		moves = append(moves, m)
	}
	return l, moves, nil
}

func printMovesJSON(records []storage.MoveRecord) error {
	type MoveJSON struct {
		MoveIndex int    `json:"move_index"`
		TsMs      int64  `json:"ts_ms"`
		Axis      string `json:"axis"`
		Layer     int    `json:"layer"`
		Direction int    `json:"direction"`
		Notation  string `json:"notation"`
		Source    string `json:"source"`
	}

	movesJSON := make([]MoveJSON, 0, len(records))
	for _, m := range records {
		movesJSON = append(movesJSON, MoveJSON{
			MoveIndex: m.MoveIndex,
			TsMs:      m.TsMs,
			Axis:      m.Axis,
			Layer:     m.Layer,
			Direction: m.Direction,
			Notation:  m.Notation,
			Source:    m.Source,
		})
	}

	data, err := json.MarshalIndent(movesJSON, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
