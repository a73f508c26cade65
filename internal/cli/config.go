package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var configSave bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective settings",
	Long: `Print the settings after applying command-line flags.

Examples:
  twistycube config
  twistycube config --turn-step 0.12 --snap components --save`,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().BoolVar(&configSave, "save", false, "Write the effective settings back to the settings file")
}

func runConfig(cmd *cobra.Command, args []string) error {
	file, settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	fmt.Printf("# %s\n%s\n", file.Path(), data)

	if configSave {
		file.Update(settings)
		if err := file.Save(); err != nil {
			return err
		}
		fmt.Println("Saved.")
	}
	return nil
}
