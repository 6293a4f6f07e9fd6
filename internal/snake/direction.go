package snake

import (
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Direction represents the snake's movement direction.
type Direction int

const (
	DirLeft Direction = iota
	DirRight
	DirUp
	DirDown
)

// Valid reports whether d is one of the four known directions.
func (d Direction) Valid() bool {
	return d >= DirLeft && d <= DirDown
}

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	switch d {
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	default:
		return d
	}
}

// Delta returns the row and column offset of one step in this direction.
func (d Direction) Delta() (dRow, dCol int) {
	switch d {
	case DirLeft:
		return 0, -1
	case DirRight:
		return 0, 1
	case DirUp:
		return -1, 0
	case DirDown:
		return 1, 0
	default:
		return 0, 0
	}
}

// Step returns the cell one unit away from c in this direction.
func (d Direction) Step(c core.Cell) core.Cell {
	dRow, dCol := d.Delta()
	return c.Add(dRow, dCol)
}

func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	default:
		return "unknown"
	}
}

// MarshalText encodes the direction by name.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText decodes a direction name.
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, ok := ParseDirection(string(text))
	if !ok {
		return fmt.Errorf("snake: unknown direction %q", text)
	}
	*d = parsed
	return nil
}

// ParseDirection converts a direction name into a Direction.
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "left":
		return DirLeft, true
	case "right":
		return DirRight, true
	case "up":
		return DirUp, true
	case "down":
		return DirDown, true
	}
	return 0, false
}

// DirectionFor maps a directional action onto a Direction.
func DirectionFor(a core.Action) (Direction, bool) {
	switch a {
	case core.ActionLeft:
		return DirLeft, true
	case core.ActionRight:
		return DirRight, true
	case core.ActionUp:
		return DirUp, true
	case core.ActionDown:
		return DirDown, true
	}
	return 0, false
}
