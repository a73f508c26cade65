package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/twistycube/internal/ble"
)

var (
	scanTimeout time.Duration
	scanSave    bool
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan for GoCube devices",
	Long: `Scan for nearby GoCube smart cubes. With --save the first device found is
remembered in the settings file.`,
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().DurationVar(&scanTimeout, "timeout", 5*time.Second, "How long to scan")
	scanCmd.Flags().BoolVar(&scanSave, "save", false, "Remember the first device found")
}

func runScan(cmd *cobra.Command, args []string) error {
	file, settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	log, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	fmt.Println("Scanning for GoCube devices...")

	client, err := ble.NewClient(log)
	if err != nil {
		return fmt.Errorf("BLE not available: %w", err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), scanTimeout)
	defer cancel()

	results, err := client.Scan(ctx, scanTimeout)
	if err != nil {
		return err
	}

	if len(results) == 0 {
		fmt.Println("No GoCube devices found")
		fmt.Println()
		fmt.Println("Tips:")
		fmt.Println("  - Ensure your GoCube is powered on")
		fmt.Println("  - Move the cube to wake it up")
		fmt.Println("  - Make sure it's not connected to your phone")
		return nil
	}

	fmt.Printf("Found %d device(s):\n", len(results))
	for _, r := range results {
		marker := ""
		if r.UUID == settings.LastDeviceID {
			marker = " (last used)"
		}
		fmt.Printf("  - %s (UUID: %s, RSSI: %d)%s\n", r.Name, r.UUID, r.RSSI, marker)
	}

	if scanSave {
		if err := file.SetLastDevice(results[0].UUID, results[0].Name); err != nil {
			return err
		}
		fmt.Printf("Saved %s to %s\n", results[0].Name, file.Path())
	}
	return nil
}
