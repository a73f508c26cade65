package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/SeamusWaldron/twistycube"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	lockedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("82"))

	unlockedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214"))

	moveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

var stickerColors = map[twistycube.Color]lipgloss.Color{
	twistycube.White:   lipgloss.Color("#FFFFFF"),
	twistycube.Yellow:  lipgloss.Color("#FFD500"),
	twistycube.Green:   lipgloss.Color("#009B48"),
	twistycube.Blue:    lipgloss.Color("#0046AD"),
	twistycube.Red:     lipgloss.Color("#B71234"),
	twistycube.Orange:  lipgloss.Color("#FF5800"),
	twistycube.Neutral: lipgloss.Color("#333333"),
}

// renderSticker draws one facelet as a two-cell block. Facelets of the
// turning layer are dimmed with a lighter shade.
func renderSticker(c twistycube.Color, moving bool) string {
	block := "██"
	if moving {
		block = "▓▓"
	}
	return lipgloss.NewStyle().Foreground(stickerColors[c]).Render(block)
}

// renderNet draws the unfolded sticker net in color. moving marks facelets
// on the layer that is currently animating, indexed like Facelets.Stickers.
func renderNet(f *twistycube.Facelets, moving *[6][9]bool) string {
	var b strings.Builder
	const indent = "         "

	writeRow := func(face twistycube.CubeFace, row int) {
		for col := 0; col < 3; col++ {
			i := row*3 + col
			b.WriteString(renderSticker(f.Stickers[face][i], moving != nil && moving[face][i]))
			b.WriteString(" ")
		}
	}

	for row := 0; row < 3; row++ {
		b.WriteString(indent)
		writeRow(twistycube.CubeFaceU, row)
		b.WriteString("\n")
	}
	for row := 0; row < 3; row++ {
		for _, face := range []twistycube.CubeFace{
			twistycube.CubeFaceL, twistycube.CubeFaceF, twistycube.CubeFaceR, twistycube.CubeFaceB,
		} {
			writeRow(face, row)
		}
		b.WriteString("\n")
	}
	for row := 0; row < 3; row++ {
		b.WriteString(indent)
		writeRow(twistycube.CubeFaceD, row)
		b.WriteString("\n")
	}
	return b.String()
}

// movingFacelets marks the facelets that belong to the in-flight layer.
// Facelets of a cubie are found by projecting the logical lattice, which
// still holds the pre-turn poses while a move animates.
func movingFacelets(ctrl *twistycube.Controller) *[6][9]bool {
	m, ok := ctrl.InFlight()
	if !ok {
		return nil
	}

	l := ctrl.Lattice()
	members := make(map[int]bool)
	for _, i := range l.SelectLayer(m.Axis, m.Layer) {
		members[i] = true
	}

	// Project the snapshot with only the moving cubies carrying stickers.
	var out [6][9]bool
	l.Mask(func(i int) bool { return members[i] })
	f := l.Facelets()
	for face := range f.Stickers {
		for i, c := range f.Stickers[face] {
			out[face][i] = c != twistycube.Neutral
		}
	}
	return &out
}

// progressBar renders a fixed-width bar for a 0..1 fraction.
func progressBar(frac float64, width int) string {
	filled := int(frac * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("=", filled) + strings.Repeat(" ", width-filled) + "]"
}

func lockBadge(ctrl *twistycube.Controller) string {
	if ctrl.Locked() {
		return lockedStyle.Render(ctrl.LockStatus())
	}
	return unlockedStyle.Render(ctrl.LockStatus())
}

// tail formats the last n moves of a sequence, merging repeated turns.
func tail(moves []twistycube.Move, n int) string {
	if len(moves) <= n {
		return twistycube.CompactMoves(moves)
	}
	return fmt.Sprintf("... %s", twistycube.CompactMoves(moves[len(moves)-n:]))
}
