// Package ble provides low-level BLE communication with GoCube devices.
package ble

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"tinygo.org/x/bluetooth"

	"github.com/SeamusWaldron/twistycube/internal/protocol"
)

// Errors
var (
	ErrNotConnected     = errors.New("ble: not connected to device")
	ErrAlreadyConnected = errors.New("ble: already connected to a device")
	ErrDeviceNotFound   = errors.New("ble: device not found")
	ErrServiceNotFound  = errors.New("ble: GoCube service not found")
)

// BLE UUIDs
var (
	serviceUUID = bluetooth.NewUUID(uuid.MustParse(protocol.ServiceUUID))
	txCharUUID  = bluetooth.NewUUID(uuid.MustParse(protocol.TxCharUUID))
	rxCharUUID  = bluetooth.NewUUID(uuid.MustParse(protocol.RxCharUUID))
)

// ScanResult represents a discovered GoCube device.
type ScanResult struct {
	Name    string
	UUID    string
	RSSI    int16
	Address bluetooth.Address
}

// IsGoCube reports whether an advertised name belongs to a GoCube.
func IsGoCube(name string) bool {
	return strings.HasPrefix(strings.ToLower(name), "gocube")
}

// Client manages BLE connection to a GoCube device.
type Client struct {
	adapter *bluetooth.Adapter
	log     logrus.FieldLogger
	device  bluetooth.Device
	rxChar  bluetooth.DeviceCharacteristic

	mu         sync.RWMutex
	connected  bool
	deviceName string
	deviceUUID string
	battery    int

	onMessage func(*protocol.Message)
}

// NewClient creates a new BLE client for GoCube communication.
func NewClient(log logrus.FieldLogger) (*Client, error) {
	adapter := bluetooth.DefaultAdapter
	if err := adapter.Enable(); err != nil {
		return nil, fmt.Errorf("failed to enable BLE adapter: %w", err)
	}

	return &Client{
		adapter: adapter,
		log:     log,
		battery: -1,
	}, nil
}

// SetMessageCallback sets the callback for incoming messages. It is called
// from the BLE stack's goroutine.
func (c *Client) SetMessageCallback(cb func(*protocol.Message)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onMessage = cb
}

// Scan scans for GoCube devices until timeout or ctx is done.
func (c *Client) Scan(ctx context.Context, timeout time.Duration) ([]ScanResult, error) {
	if c.IsConnected() {
		return nil, ErrAlreadyConnected
	}

	var results []ScanResult
	var mu sync.Mutex
	seen := make(map[string]bool)
	done := make(chan error, 1)

	go func() {
		done <- c.adapter.Scan(func(adapter *bluetooth.Adapter, result bluetooth.ScanResult) {
			name := result.LocalName()
			addr := result.Address.String()

			mu.Lock()
			defer mu.Unlock()
			if seen[addr] || !IsGoCube(name) {
				return
			}
			seen[addr] = true
			results = append(results, ScanResult{
				Name:    name,
				UUID:    addr,
				RSSI:    result.RSSI,
				Address: result.Address,
			})
			c.log.WithFields(logrus.Fields{"name": name, "address": addr}).Debug("GoCube found")
		})
	}()

	select {
	case <-time.After(timeout):
	case <-ctx.Done():
	}

	c.adapter.StopScan()
	if err := <-done; err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()
	return results, nil
}

// ConnectFirst scans until the first GoCube shows up and connects to it.
func (c *Client) ConnectFirst(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	found := make(chan ScanResult, 1)
	go c.adapter.Scan(func(adapter *bluetooth.Adapter, result bluetooth.ScanResult) {
		if !IsGoCube(result.LocalName()) {
			return
		}
		select {
		case found <- ScanResult{
			Name:    result.LocalName(),
			UUID:    result.Address.String(),
			RSSI:    result.RSSI,
			Address: result.Address,
		}:
		default:
		}
	})

	select {
	case result := <-found:
		c.adapter.StopScan()
		return c.ConnectToResult(result)
	case <-ctx.Done():
		c.adapter.StopScan()
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return ErrDeviceNotFound
		}
		return ctx.Err()
	}
}

// ConnectToResult connects directly to a device from a scan result.
func (c *Client) ConnectToResult(result ScanResult) error {
	if c.IsConnected() {
		return ErrAlreadyConnected
	}

	device, err := c.adapter.Connect(result.Address, bluetooth.ConnectionParams{})
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	rxChar, err := c.subscribe(device)
	if err != nil {
		device.Disconnect()
		return err
	}

	c.mu.Lock()
	c.device = device
	c.rxChar = rxChar
	c.connected = true
	c.deviceName = result.Name
	c.deviceUUID = result.UUID
	c.mu.Unlock()

	c.log.WithFields(logrus.Fields{"name": result.Name, "address": result.UUID}).Info("GoCube connected")

	if err := c.RequestBattery(); err != nil {
		c.log.WithError(err).Warn("Battery request failed")
	}
	return nil
}

// subscribe discovers the GoCube service, enables notifications on TX and
// returns the RX characteristic used for commands.
func (c *Client) subscribe(device bluetooth.Device) (bluetooth.DeviceCharacteristic, error) {
	var rxChar bluetooth.DeviceCharacteristic

	services, err := device.DiscoverServices([]bluetooth.UUID{serviceUUID})
	if err != nil {
		return rxChar, fmt.Errorf("failed to discover services: %w", err)
	}
	if len(services) == 0 {
		return rxChar, ErrServiceNotFound
	}

	chars, err := services[0].DiscoverCharacteristics([]bluetooth.UUID{txCharUUID, rxCharUUID})
	if err != nil {
		return rxChar, fmt.Errorf("failed to discover characteristics: %w", err)
	}

	var txChar bluetooth.DeviceCharacteristic
	for _, ch := range chars {
		switch ch.UUID() {
		case txCharUUID:
			txChar = ch
		case rxCharUUID:
			rxChar = ch
		}
	}

	if err := txChar.EnableNotifications(c.handleNotification); err != nil {
		return rxChar, fmt.Errorf("failed to enable notifications: %w", err)
	}
	return rxChar, nil
}

// Disconnect disconnects from the current device.
func (c *Client) Disconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected {
		return nil
	}

	err := c.device.Disconnect()
	c.connected = false
	c.deviceName = ""
	c.deviceUUID = ""
	c.battery = -1

	return err
}

// IsConnected returns true if connected to a device.
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

// DeviceName returns the connected device name.
func (c *Client) DeviceName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.deviceName
}

// DeviceUUID returns the connected device address.
func (c *Client) DeviceUUID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.deviceUUID
}

// Battery returns the last known battery level (-1 if unknown).
func (c *Client) Battery() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.battery
}

// SendCommand sends a command to the cube.
func (c *Client) SendCommand(cmd byte) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.connected {
		return ErrNotConnected
	}

	data := protocol.BuildCommand(cmd)
	_, err := c.rxChar.WriteWithoutResponse(data)
	if err != nil {
		_, err = c.rxChar.Write(data)
	}
	return err
}

// RequestBattery requests the battery level from the cube.
func (c *Client) RequestBattery() error {
	return c.SendCommand(protocol.CmdRequestBattery)
}

// ResetSolved tells the cube to treat its current state as solved.
func (c *Client) ResetSolved() error {
	return c.SendCommand(protocol.CmdResetSolved)
}

// EnableOrientation starts orientation notifications.
func (c *Client) EnableOrientation() error {
	return c.SendCommand(protocol.CmdEnableOrientation)
}

// RequestCubeType asks the cube to report its model.
func (c *Client) RequestCubeType() error {
	return c.SendCommand(protocol.CmdRequestCubeType)
}

// RequestOfflineStats asks for the moves and solves made while disconnected.
func (c *Client) RequestOfflineStats() error {
	return c.SendCommand(protocol.CmdRequestOfflineStats)
}

// FlashBacklight flashes the cube backlight three times.
func (c *Client) FlashBacklight() error {
	return c.SendCommand(protocol.CmdFlashBacklight)
}

// handleNotification handles incoming BLE notifications.
func (c *Client) handleNotification(data []byte) {
	msg, err := protocol.ParseMessage(data)
	if err != nil {
		c.log.WithError(err).WithField("bytes", len(data)).Debug("Dropping malformed notification")
		return
	}

	if msg.Type == protocol.MsgTypeBattery {
		if battery, err := protocol.DecodeBattery(msg.Payload); err == nil {
			c.mu.Lock()
			c.battery = battery.Level
			c.mu.Unlock()
		}
	}

	c.mu.RLock()
	cb := c.onMessage
	c.mu.RUnlock()

	if cb != nil {
		cb(msg)
	}
}
