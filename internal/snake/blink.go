package snake

// Blink is the cosmetic food fade. The alpha bounces between 0 and 255 in
// fixed steps, advanced by its own timer, independent of the game tick.
type Blink struct {
	alpha int
	inc   int
	step  int
}

// NewBlink creates a blink that moves by step per Advance.
func NewBlink(step int) *Blink {
	if step <= 0 {
		step = 25
	}
	b := &Blink{step: min(step, 255)}
	b.Reset()
	return b
}

// Reset makes the food fully visible and starts fading it out.
func (b *Blink) Reset() {
	b.alpha = 255
	b.inc = -b.step
}

// Advance moves the alpha one step, turning around at the bounds.
func (b *Blink) Advance() {
	if b.alpha+b.step > 255 {
		b.inc = -b.step
	} else if b.alpha-b.step < 0 {
		b.inc = b.step
	}
	b.alpha += b.inc
}

// Alpha returns the current opacity in [0, 255].
func (b *Blink) Alpha() int {
	return b.alpha
}
