package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/twistycube"
	"github.com/SeamusWaldron/twistycube/internal/ble"
	"github.com/SeamusWaldron/twistycube/internal/config"
	"github.com/SeamusWaldron/twistycube/internal/protocol"
	"github.com/SeamusWaldron/twistycube/internal/storage"
)

// A terminal cell is roughly twice as tall as it is wide; pointer
// coordinates are scaled so a drag feels the same in both directions.
const (
	cellWidth  = 8.0
	cellHeight = 16.0
)

const connectTimeout = 15 * time.Second

var (
	playFPS       int
	playSeed      uint64
	playGoCube    bool
	playNoJournal bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play with the cube in the terminal",
	Long: `Start the interactive cube.

Keyboard shortcuts:
  u d l r f b     - Twist the face that currently points that way on screen
  U D L R F B     - Same twist, counter-clockwise
  s               - Scramble
  Enter           - Solve (replay the history backwards)
  n               - Reset to a solved cube
  Arrow keys      - Spin the whole cube
  q/Esc           - Quit

Drag with the left mouse button to turn the whole cube. On release it
settles on the nearest grid-aligned orientation; twists are refused until
it is LOCKED again.

With --gocube, moves made on a physical GoCube are mirrored on screen.`,
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().IntVar(&playFPS, "fps", 0, "Frames per second (default from settings)")
	playCmd.Flags().Uint64Var(&playSeed, "seed", 0, "Seed the scramble generator")
	playCmd.Flags().BoolVar(&playGoCube, "gocube", false, "Mirror a physical GoCube over Bluetooth")
	playCmd.Flags().BoolVar(&playNoJournal, "no-journal", false, "Do not record the session")
}

// Messages
type frameMsg time.Time
type gocubeConnectedMsg struct{ name, id string }
type gocubeErrMsg struct{ err error }
type gocubeMovesMsg struct{ moves []twistycube.Move }
type gocubeOrientationMsg struct{ up, front twistycube.CubeFace }
type gocubeInfoMsg struct{ text string }

// Model
type playModel struct {
	ctrl    *twistycube.Controller
	log     logrus.FieldLogger
	fps     int
	spin    *inertia
	journal *journal

	// GoCube mirror
	client     *ble.Client
	settings   *config.File
	connected  bool
	deviceName string
	cubeType   string
	held       *gocubeOrientationMsg // how the physical cube is held
	msgChan    chan *protocol.Message
	stop       chan struct{} // closed when the GoCube link is gone

	mouseDown bool
	notice    string
	err       error
	solves    int
	quitting  bool
}

func newPlayModel(ctrl *twistycube.Controller, fps int, log logrus.FieldLogger) *playModel {
	m := &playModel{
		ctrl:    ctrl,
		log:     log,
		fps:     fps,
		spin:    newInertia(fps),
		msgChan: make(chan *protocol.Message, 100),
		stop:    make(chan struct{}),
	}

	ctrl.OnMove(func(ev twistycube.MoveEvent) {
		m.journal.move(ev)
	})
	ctrl.OnSolved(func() {
		m.solves++
		m.notice = "Solved!"
	})
	ctrl.OnLockChange(func(locked bool) {
		if !locked {
			m.notice = ""
		}
	})
	return m
}

func (m *playModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.frameCmd()}
	if m.client != nil {
		cmds = append(cmds, m.connectGoCube(), m.listenForMessages())
	}
	return tea.Batch(cmds...)
}

func (m *playModel) frameCmd() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m *playModel) connectGoCube() tea.Cmd {
	return func() tea.Msg {
		// Set up message callback BEFORE connecting
		m.client.SetMessageCallback(func(msg *protocol.Message) {
			select {
			case m.msgChan <- msg:
			default:
				// Channel full, drop message
			}
		})

		if err := m.client.ConnectFirst(context.Background(), connectTimeout); err != nil {
			return gocubeErrMsg{err: fmt.Errorf("connection failed: %w", err)}
		}

		// Orientation, model and offline stats are informational; failures
		// only cost the status line.
		if err := m.client.EnableOrientation(); err != nil {
			m.log.WithError(err).Warn("Failed to enable orientation")
		}
		if err := m.client.RequestCubeType(); err != nil {
			m.log.WithError(err).Warn("Failed to request cube type")
		}
		if err := m.client.RequestOfflineStats(); err != nil {
			m.log.WithError(err).Warn("Failed to request offline stats")
		}
		return gocubeConnectedMsg{name: m.client.DeviceName(), id: m.client.DeviceUUID()}
	}
}

// listenForMessages waits for the next notification the TUI cares about.
// It returns nil once the link is stopped.
func (m *playModel) listenForMessages() tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case <-m.stop:
				return nil
			case msg := <-m.msgChan:
				if out := m.decodeMessage(msg); out != nil {
					return out
				}
			}
		}
	}
}

// stopListening releases the listener. The message channel stays open
// because the BLE callback may still fire.
func (m *playModel) stopListening() {
	select {
	case <-m.stop:
	default:
		close(m.stop)
	}
}

// decodeMessage turns a GoCube notification into a TUI message, or nil if
// there is nothing to show.
func (m *playModel) decodeMessage(msg *protocol.Message) tea.Msg {
	log := m.log.WithField("type", msg.TypeName())

	switch msg.Type {
	case protocol.MsgTypeRotation:
		moves, err := protocol.MessageMoves(msg)
		if err != nil {
			log.WithError(err).Warn("Failed to decode GoCube rotation")
			return nil
		}
		if len(moves) > 0 {
			return gocubeMovesMsg{moves: moves}
		}

	case protocol.MsgTypeOrientation:
		ev, err := protocol.DecodeOrientation(msg.Payload)
		if err != nil {
			log.WithError(err).Debug("Failed to decode GoCube orientation")
			return nil
		}
		return gocubeOrientationMsg{up: ev.UpFace, front: ev.FrontFace}

	case protocol.MsgTypeCubeType:
		ev, err := protocol.DecodeCubeType(msg.Payload)
		if err != nil {
			log.WithError(err).Debug("Failed to decode cube type")
			return nil
		}
		return gocubeInfoMsg{text: ev.TypeName}

	case protocol.MsgTypeOfflineStats:
		ev, err := protocol.DecodeOfflineStats(msg.Payload)
		if err != nil {
			log.WithError(err).Debug("Failed to decode offline stats")
			return nil
		}
		log.WithFields(logrus.Fields{
			"moves":  ev.Moves,
			"time":   ev.Time,
			"solves": ev.Solves,
		}).Info("GoCube offline stats")

	default:
		log.Debug("Ignoring GoCube message")
	}
	return nil
}

func (m *playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		if x, y, release := m.spin.step(); m.spin.active || release {
			m.ctrl.PointerMove(x, y)
			if release {
				m.ctrl.PointerUp()
			}
		}
		m.ctrl.Tick()
		return m, m.frameCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)

	case gocubeConnectedMsg:
		m.connected = true
		m.deviceName = msg.name
		m.notice = fmt.Sprintf("Mirroring %s", msg.name)
		if m.settings != nil {
			if err := m.settings.SetLastDevice(msg.id, msg.name); err != nil {
				m.log.WithError(err).Warn("Failed to save last device")
			}
		}

	case gocubeErrMsg:
		m.err = msg.err
		m.stopListening()

	case gocubeOrientationMsg:
		m.held = &msg
		return m, m.listenForMessages()

	case gocubeInfoMsg:
		m.cubeType = msg.text
		return m, m.listenForMessages()

	case gocubeMovesMsg:
		for _, mv := range msg.moves {
			if err := m.ctrl.Enqueue(mv); err != nil {
				m.err = err
			}
		}
		return m, m.listenForMessages()
	}

	return m, nil
}

func (m *playModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil

	switch msg.String() {
	case "q", "esc", "ctrl+c":
		m.quitting = true
		m.stopListening()
		if m.client != nil && m.connected {
			m.client.Disconnect()
		}
		return m, tea.Quit

	case "s":
		if _, err := m.ctrl.Scramble(); err != nil {
			m.err = err
			return m, nil
		}
		m.notice = ""
		m.journal.count(storage.CounterScrambles)

	case "enter":
		if err := m.ctrl.Solve(); err != nil {
			m.err = err
			return m, nil
		}
		m.journal.count(storage.CounterSolves)

	case "n":
		if err := m.ctrl.Reset(); err != nil {
			m.err = err
			return m, nil
		}
		m.spin.stop()
		m.notice = ""
		m.journal.count(storage.CounterResets)
		if m.client != nil && m.connected {
			// Keep the physical cube's notion of solved in line with the screen.
			if err := m.client.ResetSolved(); err != nil {
				m.log.WithError(err).Warn("Failed to reset GoCube state")
			}
		}

	case "up":
		m.push(0, -1)
	case "down":
		m.push(0, 1)
	case "left":
		m.push(-1, 0)
	case "right":
		m.push(1, 0)

	default:
		if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 {
			if err := m.ctrl.Key(msg.Runes[0]); err != nil && !errors.Is(err, twistycube.ErrUnknownKey) {
				m.err = err
			}
		}
	}

	return m, nil
}

func (m *playModel) push(dx, dy float64) {
	if m.mouseDown {
		return
	}
	if begin, x, y := m.spin.push(dx, dy); begin {
		m.ctrl.PointerDown(x, y)
	}
}

func (m *playModel) handleMouse(msg tea.MouseMsg) {
	x := float64(msg.X) * cellWidth
	y := float64(msg.Y) * cellHeight

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		if m.spin.active {
			m.spin.stop()
			m.ctrl.PointerUp()
		}
		m.mouseDown = true
		m.ctrl.PointerDown(x, y)
	case tea.MouseActionMotion:
		if m.mouseDown {
			m.ctrl.PointerMove(x, y)
		}
	case tea.MouseActionRelease:
		if m.mouseDown {
			m.mouseDown = false
			m.ctrl.PointerUp()
		}
	}
}

func (m *playModel) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("twistycube"))
	b.WriteString("  ")
	b.WriteString(lockBadge(m.ctrl))
	b.WriteString("\n\n")

	b.WriteString(renderNet(m.ctrl.Facelets(), movingFacelets(m.ctrl)))
	b.WriteString("\n")

	up, front := m.ctrl.ScreenFaces()
	b.WriteString(statusStyle.Render(fmt.Sprintf("Screen: %s up, %s front", up, front)))
	b.WriteString("\n")

	state := m.ctrl.State().String()
	if mv, ok := m.ctrl.InFlight(); ok {
		state = fmt.Sprintf("%s %s %s", state, moveStyle.Render(mv.Notation()), progressBar(m.ctrl.Progress(), 20))
	}
	if m.ctrl.Solving() {
		state += " (solving)"
	}
	b.WriteString(fmt.Sprintf("State: %s\n", state))

	history := m.ctrl.History()
	b.WriteString(fmt.Sprintf("Queued: %d  History: %d  Solves: %d\n", m.ctrl.QueueLen(), len(history), m.solves))
	if len(history) > 0 {
		b.WriteString("Moves: ")
		b.WriteString(moveStyle.Render(tail(history, 30)))
		b.WriteString("\n")
	}

	if m.client != nil {
		if m.connected {
			status := fmt.Sprintf("GoCube: %s", m.deviceName)
			if m.cubeType != "" {
				status += fmt.Sprintf(" [%s]", m.cubeType)
			}
			if battery := m.client.Battery(); battery >= 0 {
				status += fmt.Sprintf(" (Battery: %d%%)", battery)
			}
			if m.held != nil {
				status += fmt.Sprintf(" held %s up, %s front", m.held.up, m.held.front)
			}
			b.WriteString(statusStyle.Render(status))
		} else {
			b.WriteString(statusStyle.Render("GoCube: connecting..."))
		}
		b.WriteString("\n")
	}

	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(lockedStyle.Render(m.notice))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("Keys: udlrfb=twist (shift=reverse)  s=scramble  enter=solve  n=reset  arrows=spin  q=quit"))
	b.WriteString("\n")

	return b.String()
}

func runPlay(cmd *cobra.Command, args []string) error {
	file, settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("fps") {
		settings.FPS = playFPS
		if err := settings.Validate(); err != nil {
			return err
		}
	}

	// The TUI owns the terminal, so logs go nowhere unless --log-file is set.
	log, closeLog, err := newLogger(io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	var extra []twistycube.Option
	if cmd.Flags().Changed("seed") {
		extra = append(extra, twistycube.WithSeed(playSeed))
	}
	ctrl, err := newController(settings, log, extra...)
	if err != nil {
		return err
	}

	model := newPlayModel(ctrl, settings.FPS, log)

	if !playNoJournal {
		j, err := openJournal(settings, log)
		if err != nil {
			return err
		}
		defer j.close()
		model.journal = j
	}

	if playGoCube {
		client, err := ble.NewClient(log)
		if err != nil {
			return fmt.Errorf("BLE not available: %w", err)
		}
		model.client = client
		model.settings = file
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
