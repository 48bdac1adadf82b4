package session

// WorldClock is scaled game time. Scale 0 freezes the world, as on pause
// and after game over.
type WorldClock struct {
	now   float64
	scale float64
}

func (c *WorldClock) Now() float64   { return c.now }
func (c *WorldClock) Scale() float64 { return c.scale }

func (c *WorldClock) SetScale(scale float64) {
	if scale < 0 {
		scale = 0
	}
	c.scale = scale
}

// Advance moves the clock by dt scaled, and returns the scaled step.
func (c *WorldClock) Advance(dt float64) float64 {
	step := dt * c.scale
	c.now += step
	return step
}

func (c *WorldClock) reset() {
	c.now = 0
	c.scale = 1
}
