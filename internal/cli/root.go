// Package cli implements the command-line interface for twistycube.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/twistycube"
	"github.com/SeamusWaldron/twistycube/internal/config"
)

const version = "0.1.0"

var (
	// Global flags
	dbPath         string
	configPath     string
	logFile        string
	verbose        bool
	turnStep       float64
	scrambleLength int
	snapMode       string
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "twistycube",
	Short: "Terminal Rubik's cube",
	Long: `twistycube - an animated 3x3x3 cube in the terminal.

Twist faces from the keyboard, drag the whole cube around with the mouse,
scramble it and let it solve itself by replaying your moves backwards.
A GoCube smart cube can drive the on-screen cube over Bluetooth.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version)); err != nil {
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&dbPath, "db", "", "Journal database path (default: ~/.twistycube/journal.db)")
	flags.StringVar(&configPath, "config", "", "Settings file path (default: ~/.twistycube/config.json)")
	flags.StringVar(&logFile, "log-file", "", "Write logs to this file")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	flags.Float64Var(&turnStep, "turn-step", twistycube.DefaultTurnStep, "Radians a twist advances per frame")
	flags.IntVar(&scrambleLength, "scramble-length", twistycube.DefaultScrambleLength, "Quarter turns per scramble")
	flags.StringVar(&snapMode, "snap", twistycube.SnapMatrix.String(), "Orientation snapping: matrix or components")
}

// newLogger builds the application logger. Without --log-file, output goes
// to fallback, which the TUI sets to io.Discard since it owns the terminal.
func newLogger(fallback io.Writer) (*logrus.Logger, func(), error) {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	log.SetLevel(logrus.InfoLevel)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	if logFile == "" {
		log.SetOutput(fallback)
		return log, func() {}, nil
	}

	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	log.SetOutput(f)
	return log, func() { f.Close() }, nil
}

// loadSettings reads the settings file and applies flags that were set
// explicitly on the command line.
func loadSettings(cmd *cobra.Command) (*config.File, config.Settings, error) {
	var file *config.File
	var err error
	if configPath != "" {
		file, err = config.NewFile(configPath)
	} else {
		file, err = config.NewDefaultFile()
	}
	if err != nil {
		return nil, config.Settings{}, fmt.Errorf("failed to load settings: %w", err)
	}

	s := file.Settings()
	flags := cmd.Flags()
	if flags.Changed("db") {
		s.DBPath = dbPath
	}
	if flags.Changed("turn-step") {
		s.TurnStep = turnStep
	}
	if flags.Changed("scramble-length") {
		s.ScrambleLength = scrambleLength
	}
	if flags.Changed("snap") {
		s.SnapMode = snapMode
	}
	if err := s.Validate(); err != nil {
		return nil, config.Settings{}, err
	}

	return file, s, nil
}

// newController builds a controller from settings plus extra options.
func newController(s config.Settings, log logrus.FieldLogger, extra ...twistycube.Option) (*twistycube.Controller, error) {
	opts, err := s.Options()
	if err != nil {
		return nil, err
	}
	opts = append(opts, twistycube.WithLogger(log))
	opts = append(opts, extra...)
	return twistycube.New(opts...)
}

// runToIdle ticks a controller until its queue drains.
func runToIdle(ctrl *twistycube.Controller) {
	for ctrl.State() == twistycube.Rotating {
		ctrl.Tick()
	}
}
