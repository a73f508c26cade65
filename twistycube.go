// Package twistycube is a rotation engine for a 3x3x3 twisty cube.
//
// # Features
//
//   - Lattice of 26 cubies with quarter turns that always land on the grid
//   - Screen-relative face keys mapped into the cube's own frame
//   - Free drag rotation that snaps back to the nearest 90 degree orientation
//   - Animated move queue with scramble, solve replay and reset
//
// # Quick Start
//
// Drive a controller from a UI loop:
//
//	ctrl, err := twistycube.New(twistycube.WithSeed(42))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ctrl.OnMove(func(ev twistycube.MoveEvent) {
//	    fmt.Println("Move:", ev.Move.Notation())
//	})
//
//	ctrl.Scramble()
//	for ctrl.State() == twistycube.Rotating {
//	    ctrl.Tick()
//	}
//
// # Standalone Lattice
//
// The Lattice type can be used without animation:
//
//	l := twistycube.NewLattice(twistycube.DefaultGeometry())
//	l.ApplyMoves(twistycube.SexyMove)
//	fmt.Print(l.Facelets())
//
// # Predefined Moves
//
//	twistycube.R      // Right clockwise
//	twistycube.RPrime // Right counter-clockwise
//	twistycube.M      // Middle slice, following L
//	// ... and similarly for L, U, D, F, B, E, S
package twistycube
