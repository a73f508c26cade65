package protocol

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/SeamusWaldron/twistycube"
)

// RotationEvent represents a single face rotation reported by the cube.
type RotationEvent struct {
	FaceCode          byte   // Raw face+direction code (0x00-0x0B)
	CenterOrientation byte   // Center piece orientation
	Clockwise         bool   // Direction of rotation
	Color             string // Color name (blue, green, white, yellow, red, orange)
}

// BatteryEvent represents a battery level notification.
type BatteryEvent struct {
	Level int // 0-100 percentage
}

// CubeTypeEvent represents a cube type notification.
type CubeTypeEvent struct {
	TypeCode byte
	TypeName string
}

// OrientationEvent represents a cube orientation notification.
type OrientationEvent struct {
	Quat mgl64.Quat // normalized

	// Derived discrete orientation
	UpFace    twistycube.CubeFace // face pointing up
	FrontFace twistycube.CubeFace // face toward the solver
}

// OfflineStatsEvent represents offline statistics.
type OfflineStatsEvent struct {
	Moves  int
	Time   int // seconds
	Solves int
}

// Color index is faceCode/2, per the GoCube protocol.
var colorNames = map[byte]string{
	0: "blue",
	1: "green",
	2: "white",
	3: "yellow",
	4: "red",
	5: "orange",
}

// DecodeRotation decodes a rotation message payload into rotation events.
// Rotation payloads contain pairs of bytes: [face_dir] [center_orientation]
func DecodeRotation(payload []byte) ([]RotationEvent, error) {
	if len(payload)%2 != 0 {
		return nil, fmt.Errorf("rotation payload must have even length, got %d", len(payload))
	}

	var events []RotationEvent
	for i := 0; i < len(payload); i += 2 {
		faceCode := payload[i]

		// Even codes are clockwise, odd codes counter-clockwise.
		colorName, ok := colorNames[faceCode/2]
		if !ok {
			return nil, fmt.Errorf("unknown color index %d from face code 0x%02X", faceCode/2, faceCode)
		}

		events = append(events, RotationEvent{
			FaceCode:          faceCode,
			CenterOrientation: payload[i+1],
			Clockwise:         faceCode%2 == 0,
			Color:             colorName,
		})
	}

	return events, nil
}

// DecodeBattery decodes a battery message payload.
func DecodeBattery(payload []byte) (*BatteryEvent, error) {
	if len(payload) < 1 {
		return nil, fmt.Errorf("battery payload too short")
	}
	return &BatteryEvent{Level: int(payload[0])}, nil
}

// DecodeCubeType decodes a cube type message payload.
func DecodeCubeType(payload []byte) (*CubeTypeEvent, error) {
	if len(payload) < 1 {
		return nil, fmt.Errorf("cube type payload too short")
	}

	typeName := "standard"
	if payload[0] == 0x01 {
		typeName = "edge"
	}

	return &CubeTypeEvent{TypeCode: payload[0], TypeName: typeName}, nil
}

// DecodeOrientation decodes an orientation message payload.
// Format: ASCII string "x#y#z#w", where w may carry trailing garbage.
func DecodeOrientation(payload []byte) (*OrientationEvent, error) {
	parts := strings.Split(string(payload), "#")
	if len(parts) != 4 {
		return nil, fmt.Errorf("orientation payload must have 4 parts, got %d", len(parts))
	}

	var values [4]float64
	for i, name := range []string{"x", "y", "z", "w"} {
		s := parts[i]
		if i == 3 {
			s = extractNumeric(s)
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s value: %w", name, err)
		}
		values[i] = v
	}

	// The cube sends raw integer components.
	q := mgl64.Quat{W: values[3], V: mgl64.Vec3{values[0], values[1], values[2]}}
	if q.Len() == 0 {
		return nil, fmt.Errorf("orientation quaternion is zero")
	}
	q = q.Normalize()

	return &OrientationEvent{
		Quat:      q,
		UpFace:    twistycube.NearestFace(q.Rotate(mgl64.Vec3{0, 1, 0})),
		FrontFace: twistycube.NearestFace(q.Rotate(mgl64.Vec3{0, 0, 1})),
	}, nil
}

// extractNumeric extracts the leading numeric portion (including optional minus sign) from a string.
func extractNumeric(s string) string {
	var result strings.Builder
	for i, r := range s {
		if (r == '-' && i == 0) || (r >= '0' && r <= '9') || r == '.' {
			result.WriteRune(r)
			continue
		}
		break
	}
	return result.String()
}

// DecodeOfflineStats decodes an offline stats message payload.
func DecodeOfflineStats(payload []byte) (*OfflineStatsEvent, error) {
	parts := strings.Split(string(payload), "#")
	if len(parts) != 3 {
		return nil, fmt.Errorf("offline stats payload must have 3 parts, got %d", len(parts))
	}

	var values [3]int
	for i, name := range []string{"moves", "time", "solves"} {
		v, err := strconv.Atoi(parts[i])
		if err != nil {
			return nil, fmt.Errorf("invalid %s value: %w", name, err)
		}
		values[i] = v
	}

	return &OfflineStatsEvent{Moves: values[0], Time: values[1], Solves: values[2]}, nil
}
