package engine

// ComboTracker counts consecutive correct answers.
type ComboTracker struct {
	value int
	max   int
}

// Value returns the current combo.
func (c *ComboTracker) Value() int { return c.value }

// Max returns the longest combo seen so far.
func (c *ComboTracker) Max() int { return c.max }

// OnCorrect extends the streak by one.
func (c *ComboTracker) OnCorrect() {
	c.value++
	if c.value > c.max {
		c.max = c.value
	}
}

// OnIncorrect breaks the streak.
func (c *ComboTracker) OnIncorrect() {
	c.value = 0
}
