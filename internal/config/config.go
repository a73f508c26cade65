// Package config manages the application settings file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/SeamusWaldron/twistycube"
)

// Settings is the persistent application configuration.
type Settings struct {
	DBPath          string  `json:"db_path,omitempty"`
	FPS             int     `json:"fps"`
	TurnStep        float64 `json:"turn_step"`
	Damping         float64 `json:"damping"`
	DragSensitivity float64 `json:"drag_sensitivity"`
	ScrambleLength  int     `json:"scramble_length"`
	SnapMode        string  `json:"snap_mode"`
	CubieSize       float64 `json:"cubie_size"`
	CubieGap        float64 `json:"cubie_gap"`
	Tolerance       float64 `json:"tolerance"`
	LastDeviceID    string  `json:"last_device_id,omitempty"`
	LastDeviceName  string  `json:"last_device_name,omitempty"`
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	geom := twistycube.DefaultGeometry()
	return Settings{
		FPS:             60,
		TurnStep:        twistycube.DefaultTurnStep,
		Damping:         twistycube.DefaultDamping,
		DragSensitivity: twistycube.DefaultDragSensitivity,
		ScrambleLength:  twistycube.DefaultScrambleLength,
		SnapMode:        twistycube.SnapMatrix.String(),
		CubieSize:       geom.Size,
		CubieGap:        geom.Gap,
		Tolerance:       geom.Tolerance,
	}
}

// Validate checks the settings that the library would otherwise reject or
// silently ignore.
func (s Settings) Validate() error {
	if s.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", s.FPS)
	}
	if _, err := parseSnapMode(s.SnapMode); err != nil {
		return err
	}
	if _, err := twistycube.NewGeometry(s.CubieSize, s.CubieGap, s.Tolerance); err != nil {
		return err
	}
	return nil
}

func parseSnapMode(s string) (twistycube.SnapMode, error) {
	switch s {
	case "", twistycube.SnapMatrix.String():
		return twistycube.SnapMatrix, nil
	case twistycube.SnapComponents.String():
		return twistycube.SnapComponents, nil
	default:
		return 0, fmt.Errorf("unknown snap mode %q", s)
	}
}

// Geometry returns the validated cubie geometry.
func (s Settings) Geometry() (twistycube.Geometry, error) {
	return twistycube.NewGeometry(s.CubieSize, s.CubieGap, s.Tolerance)
}

// Snap returns the configured snap mode.
func (s Settings) Snap() (twistycube.SnapMode, error) {
	return parseSnapMode(s.SnapMode)
}

// Options converts the settings into controller options.
func (s Settings) Options() ([]twistycube.Option, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	mode, _ := s.Snap()
	geom, _ := s.Geometry()

	return []twistycube.Option{
		twistycube.WithGeometry(geom),
		twistycube.WithTurnStep(s.TurnStep),
		twistycube.WithDamping(s.Damping),
		twistycube.WithDragSensitivity(s.DragSensitivity),
		twistycube.WithScrambleLength(s.ScrambleLength),
		twistycube.WithSnapMode(mode),
	}, nil
}

// File manages the settings file.
type File struct {
	path     string
	settings Settings
}

// DefaultPath returns the default settings file path.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	dir := filepath.Join(home, ".twistycube")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return filepath.Join(dir, "config.json"), nil
}

// NewFile creates a settings file manager. A missing file yields defaults.
func NewFile(path string) (*File, error) {
	f := &File{path: path, settings: Defaults()}

	if err := f.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	return f, nil
}

// NewDefaultFile creates a settings file manager with the default path.
func NewDefaultFile() (*File, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return NewFile(path)
}

// Load loads the settings from disk. Fields absent from the file keep their
// current values.
func (f *File) Load() error {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, &f.settings); err != nil {
		return fmt.Errorf("failed to parse %s: %w", f.path, err)
	}
	return nil
}

// Save saves the settings to disk.
func (f *File) Save() error {
	data, err := json.MarshalIndent(f.settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.WriteFile(f.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}

	return nil
}

// Path returns the settings file path.
func (f *File) Path() string {
	return f.path
}

// Settings returns the current settings.
func (f *File) Settings() Settings {
	return f.settings
}

// Update replaces the in-memory settings without saving them.
func (f *File) Update(s Settings) {
	f.settings = s
}

// SetLastDevice records the last connected GoCube and saves.
func (f *File) SetLastDevice(deviceID, deviceName string) error {
	f.settings.LastDeviceID = deviceID
	f.settings.LastDeviceName = deviceName
	return f.Save()
}
