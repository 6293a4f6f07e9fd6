package snake

import "github.com/vovakirdan/tui-snake/internal/core"

// Body is the snake's ordered cell sequence, head first.
// It is a ring buffer with an occupancy index, so pushing a head, popping
// the tail and membership checks are all O(1).
type Body struct {
	cells    []core.Cell
	head     int // index of the head in cells
	n        int
	occupied map[core.Cell]int
}

// NewBody creates a body consisting of a single cell.
func NewBody(start core.Cell) *Body {
	b := &Body{
		cells:    make([]core.Cell, 8),
		occupied: make(map[core.Cell]int),
	}
	b.PushFront(start)
	return b
}

// Len returns the number of segments.
func (b *Body) Len() int {
	return b.n
}

// Head returns the first segment.
func (b *Body) Head() core.Cell {
	return b.cells[b.head]
}

// At returns the i-th segment counted from the head.
func (b *Body) At(i int) core.Cell {
	return b.cells[b.index(i)]
}

// Contains reports whether any segment occupies c.
func (b *Body) Contains(c core.Cell) bool {
	return b.occupied[c] > 0
}

// PushFront adds a new head.
func (b *Body) PushFront(c core.Cell) {
	if b.n == len(b.cells) {
		b.grow()
	}
	b.head = (b.head - 1 + len(b.cells)) % len(b.cells)
	b.cells[b.head] = c
	b.n++
	b.occupied[c]++
}

// PopBack removes and returns the tail. The body never shrinks below one cell.
func (b *Body) PopBack() (core.Cell, bool) {
	if b.n <= 1 {
		return core.Cell{}, false
	}
	idx := b.index(b.n - 1)
	c := b.cells[idx]
	b.n--
	if b.occupied[c] <= 1 {
		delete(b.occupied, c)
	} else {
		b.occupied[c]--
	}
	return c, true
}

// Cells returns a copy of the segments, head first.
func (b *Body) Cells() []core.Cell {
	out := make([]core.Cell, b.n)
	for i := range out {
		out[i] = b.At(i)
	}
	return out
}

func (b *Body) index(i int) int {
	return (b.head + i) % len(b.cells)
}

// grow doubles the capacity and re-linearizes the ring.
func (b *Body) grow() {
	next := make([]core.Cell, len(b.cells)*2)
	for i := 0; i < b.n; i++ {
		next[i] = b.At(i)
	}
	b.cells = next
	b.head = 0
}
