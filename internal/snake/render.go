package snake

import (
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Layout constants for the terminal board.
const (
	cellWidth  = 2  // terminal columns per board cell, keeps cells roughly square
	panelWidth = 22 // stats and controls column
	panelGap   = 3
)

var controlHints = []string{
	"Controls:",
	"Up:    ↑ or W",
	"Down:  ↓ or S",
	"Left:  ← or A",
	"Right: → or D",
	"Pause: [Space]",
	"Start: [Space]",
	"Exit:  [Escape]",
}

// Painter draws an Engine into a core.Screen. Its only state is the
// cosmetic food blink.
type Painter struct {
	blink    *Blink
	lastFood core.Cell
	hadFood  bool
}

// NewPainter creates a painter whose food fades by blinkStep per blink tick.
func NewPainter(blinkStep int) *Painter {
	return &Painter{blink: NewBlink(blinkStep)}
}

// AdvanceBlink moves the food fade one step. Called by the blink timer.
func (p *Painter) AdvanceBlink() {
	p.blink.Advance()
}

// Alpha returns the current food opacity.
func (p *Painter) Alpha() int {
	return p.blink.Alpha()
}

// BoardSize returns the screen footprint of a rows×cols board including its border.
func BoardSize(rows, cols int) (w, h int) {
	return cols*cellWidth + 2, rows + 2
}

// Render draws the full game view: board, food, snake, stats and banners.
func (p *Painter) Render(dst *core.Screen, e *Engine) {
	dst.Clear()

	p.trackFood(e)

	boardW, boardH := BoardSize(e.Rows(), e.Cols())
	if dst.Width() < boardW || dst.Height() < boardH {
		DrawOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", boardW, boardH))
		return
	}

	board, panelX, panelY, showPanel := layout(dst, boardW, boardH)

	p.renderGrid(dst, board, e)
	p.renderFood(dst, board, e)
	p.renderSnake(dst, board, e)

	if showPanel {
		p.renderPanel(dst, panelX, panelY, e)
	}
}

// trackFood restarts the blink whenever a new food cell appears.
func (p *Painter) trackFood(e *Engine) {
	food, ok := e.Food()
	if ok && (!p.hadFood || food != p.lastFood) {
		p.blink.Reset()
	}
	p.lastFood = food
	p.hadFood = ok
}

// layout centers the board and places the panel to its right when it fits,
// or below it otherwise.
func layout(dst *core.Screen, boardW, boardH int) (board core.Rect, panelX, panelY int, showPanel bool) {
	panelH := len(controlHints) + 7

	switch {
	case dst.Width() >= boardW+panelGap+panelWidth:
		totalW := boardW + panelGap + panelWidth
		x := (dst.Width() - totalW) / 2
		y := (dst.Height() - boardH) / 2
		board = core.NewRect(x, y, boardW, boardH)
		return board, board.Right() + panelGap, y, true
	case dst.Height() >= boardH+1+panelH:
		x := (dst.Width() - boardW) / 2
		y := (dst.Height() - boardH - 1 - panelH) / 2
		board = core.NewRect(x, y, boardW, boardH)
		return board, x, board.Bottom() + 1, true
	default:
		x := (dst.Width() - boardW) / 2
		y := (dst.Height() - boardH) / 2
		return core.NewRect(x, y, boardW, boardH), 0, 0, false
	}
}

// cellPos converts a board cell to screen coordinates of its first column.
func cellPos(board core.Rect, c core.Cell) (x, y int) {
	return board.X + 1 + c.Col*cellWidth, board.Y + 1 + c.Row
}

func (p *Painter) renderGrid(dst *core.Screen, board core.Rect, e *Engine) {
	dst.DrawBox(board, core.ColorCyan)
	for row := 0; row < e.Rows(); row++ {
		for col := 0; col < e.Cols(); col++ {
			x, y := cellPos(board, core.Cell{Row: row, Col: col})
			dst.SetColored(x, y, '·', core.ColorDarkGray)
		}
	}
}

func (p *Painter) renderFood(dst *core.Screen, board core.Rect, e *Engine) {
	food, ok := e.Food()
	if !ok {
		return
	}
	x, y := cellPos(board, food)
	dst.SetColored(x, y, '●', core.ShadeForAlpha(p.blink.Alpha()))
}

func (p *Painter) renderSnake(dst *core.Screen, board core.Rect, e *Engine) {
	for i, seg := range e.Snake() {
		x, y := cellPos(board, seg)
		if i == 0 {
			left, right := headGlyphs(e.Direction())
			dst.SetColored(x, y, left, core.ColorYellow)
			dst.SetColored(x+1, y, right, core.ColorYellow)
			continue
		}
		color := core.ColorBrightGreen
		if i%2 == 1 {
			color = core.ColorDarkGreen
		}
		dst.SetColored(x, y, '█', color)
		dst.SetColored(x+1, y, '█', color)
	}
}

// headGlyphs returns the two runes drawn for the head; the eyes look where
// the snake is going.
func headGlyphs(d Direction) (rune, rune) {
	switch d {
	case DirLeft:
		return '<', ':'
	case DirRight:
		return ':', '>'
	case DirDown:
		return 'v', 'v'
	default:
		return '^', '^'
	}
}

func (p *Painter) renderPanel(dst *core.Screen, x, y int, e *Engine) {
	stats := e.Stats()
	dst.DrawTextColored(x, y, fmt.Sprintf("Length: %d", e.Len()), core.ColorBrightGreen)
	dst.DrawTextColored(x, y+1, fmt.Sprintf("Speed: %d", e.SpeedLevel()), core.ColorBrightGreen)
	dst.DrawTextColored(x, y+2, fmt.Sprintf("Points: %d", stats.Score), core.ColorGold)
	dst.DrawTextColored(x, y+3, fmt.Sprintf("Food eaten: %d", stats.FoodEaten), core.ColorCrimson)

	row := y + 5
	for _, hint := range controlHints {
		dst.DrawTextColored(x, row, hint, core.ColorWhite)
		row++
	}

	row++
	switch e.Status() {
	case StatusPaused:
		dst.DrawTextColored(x, row, "Game paused...", core.ColorYellow)
	case StatusEnded:
		if e.EndReason().Won() {
			dst.DrawTextColored(x, row, "Board cleared!", core.ColorBrightYellow)
		} else {
			dst.DrawTextColored(x, row, "Game over", core.ColorBrightRed)
		}
	}
}

// DrawOverlay draws a centered two-line message box over the screen.
func DrawOverlay(dst *core.Screen, line1, line2 string) {
	w := dst.Width()
	h := dst.Height()

	maxLen := max(utf8.RuneCountInString(line1), utf8.RuneCountInString(line2))
	boxW := maxLen + 4
	boxH := 5
	box := core.NewRect((w-boxW)/2, (h-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorWhite)
	dst.DrawTextCentered(box.Y+1, line1, core.ColorBrightWhite)
	dst.DrawTextCentered(box.Y+3, line2, core.ColorGray)
}
