package snake

import "github.com/vovakirdan/tui-snake/internal/core"

// Scoring holds the points awarded for food by its position on the board.
type Scoring struct {
	Corner   int // any of the four corners
	Edge     int // first/last row or column, not a corner
	Interior int // everything else
}

// DefaultScoring returns the classic 1000/500/250 table.
func DefaultScoring() Scoring {
	return Scoring{Corner: 1000, Edge: 500, Interior: 250}
}

// PointsFor returns the points for food eaten at c on a rows×cols board.
func (s Scoring) PointsFor(c core.Cell, rows, cols int) int {
	onRowEdge := c.Row == 0 || c.Row == rows-1
	onColEdge := c.Col == 0 || c.Col == cols-1

	switch {
	case onRowEdge && onColEdge:
		return s.Corner
	case onRowEdge || onColEdge:
		return s.Edge
	default:
		return s.Interior
	}
}
