package sim

import "fmt"

// Clock owns simulation time for the tick loop. The wave field itself is
// stateless in time; whoever drives it holds the clock, so tests can run
// the field at arbitrary times without one.
type Clock struct {
	step float32
	time float32
}

// NewClock creates a fixed-step clock.
func NewClock(step float32) (*Clock, error) {
	if step <= 0 {
		return nil, fmt.Errorf("clock step %g: must be positive", step)
	}
	return &Clock{step: step}, nil
}

// Advance adds one step and returns the new simulation time. Time only
// moves forward.
func (c *Clock) Advance() float32 {
	c.time += c.step
	return c.time
}

// Now returns the current simulation time.
func (c *Clock) Now() float32 {
	return c.time
}
