package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/twistycube"
)

var (
	scrambleSeed  uint64
	scrambleSolve bool
)

var scrambleCmd = &cobra.Command{
	Use:   "scramble",
	Short: "Print a random scramble and the resulting net",
	Long: `Generate a scramble with the same generator the interactive cube uses,
run it to completion and print the sticker net.

Examples:
  twistycube scramble
  twistycube scramble --seed 42
  twistycube scramble --seed 42 --solve`,
	RunE: runScramble,
}

func init() {
	rootCmd.AddCommand(scrambleCmd)
	scrambleCmd.Flags().Uint64Var(&scrambleSeed, "seed", 0, "Seed for a reproducible scramble")
	scrambleCmd.Flags().BoolVar(&scrambleSolve, "solve", false, "Also solve the scramble and print the replay")
}

func runScramble(cmd *cobra.Command, args []string) error {
	_, settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	log, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	var extra []twistycube.Option
	if cmd.Flags().Changed("seed") {
		extra = append(extra, twistycube.WithSeed(scrambleSeed))
	}
	ctrl, err := newController(settings, log, extra...)
	if err != nil {
		return err
	}

	moves, err := ctrl.Scramble()
	if err != nil {
		return err
	}
	runToIdle(ctrl)

	fmt.Printf("Scramble: %s\n\n", moveStyle.Render(twistycube.CompactMoves(moves)))
	fmt.Print(renderNet(ctrl.Facelets(), nil))

	if !scrambleSolve {
		return nil
	}

	replay := twistycube.InvertSequence(ctrl.History())
	if err := ctrl.Solve(); err != nil {
		return err
	}
	runToIdle(ctrl)

	fmt.Printf("\nSolve: %s\n", moveStyle.Render(twistycube.CompactMoves(replay)))
	if ctrl.IsSolved() {
		fmt.Println(lockedStyle.Render("Solved"))
	} else {
		fmt.Println(errorStyle.Render("Not solved"))
	}
	return nil
}
