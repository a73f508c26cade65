package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/twistycube"
)

var applyInvert bool

var applyCmd = &cobra.Command{
	Use:   "apply <moves>",
	Short: "Apply a move sequence to a solved cube",
	Long: `Apply a sequence in standard notation to a solved cube and print the net.

Face turns (R L U D F B), slices (M E S), primes and doubles are accepted.

Examples:
  twistycube apply "R U R' U'"
  twistycube apply R U2 F --invert`,
	Args: cobra.MinimumNArgs(1),
	RunE: runApply,
}

func init() {
	rootCmd.AddCommand(applyCmd)
	applyCmd.Flags().BoolVar(&applyInvert, "invert", false, "Apply the inverse of the sequence")
}

func runApply(cmd *cobra.Command, args []string) error {
	_, settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	moves, err := twistycube.ParseMoves(strings.Join(args, " "))
	if err != nil {
		return err
	}
	if applyInvert {
		moves = twistycube.InvertSequence(moves)
	}

	geom, err := settings.Geometry()
	if err != nil {
		return err
	}
	mode, err := settings.Snap()
	if err != nil {
		return err
	}

	lattice := twistycube.NewLattice(geom)
	for _, m := range moves {
		lattice.ApplyWith(m, mode)
	}

	fmt.Printf("Moves: %s (%d quarter turns)\n\n", moveStyle.Render(twistycube.CompactMoves(moves)), len(moves))
	fmt.Print(renderNet(lattice.Facelets(), nil))
	if lattice.IsSolved() {
		fmt.Println(lockedStyle.Render("\nSolved"))
	}
	return nil
}
