// twistycube - an animated Rubik's cube for the terminal.
package main

import (
	"github.com/SeamusWaldron/twistycube/internal/cli"
)

func main() {
	cli.Execute()
}
