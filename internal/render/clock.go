package render

// FrameClock counts frame callbacks since the surface was constructed.
type FrameClock struct {
	n uint64
}

// Advance moves the clock forward by one frame.
func (c *FrameClock) Advance() {
	c.n++
}

// Value returns the number of frames elapsed.
func (c FrameClock) Value() uint64 {
	return c.n
}

// Reset returns the clock to zero.
func (c *FrameClock) Reset() {
	c.n = 0
}

// Time converts the clock into shader time using step units per frame.
func (c FrameClock) Time(step float32) float32 {
	return float32(c.n) * step
}
