package core

// ClockState is the animation clock's run state.
type ClockState int

const (
	Stopped ClockState = iota
	Playing
)

// AnimationClock advances a normalized progress value once per render tick.
// Speed is the progress delta applied per Advance call.
type AnimationClock struct {
	progress float32
	speed    float32
	loop     bool
	state    ClockState
}

func NewAnimationClock(speed float32, loop bool) (*AnimationClock, error) {
	c := &AnimationClock{loop: loop}
	if err := c.SetSpeed(speed); err != nil {
		return nil, err
	}
	return c, nil
}

// Start begins playback. Progress is retained, so a paused animation resumes
// where it stopped.
func (c *AnimationClock) Start() { c.state = Playing }

// Stop pauses playback. Progress is retained.
func (c *AnimationClock) Stop() { c.state = Stopped }

// Reset stops playback and rewinds progress to zero. Speed and loop are
// left unchanged.
func (c *AnimationClock) Reset() {
	c.state = Stopped
	c.progress = 0
}

// Advance applies one tick of progress while playing. On reaching 1 the
// clock either wraps (loop) or saturates at 1 and stops.
//
// The wrap subtracts rather than zeroing so the overshoot fraction carries
// across the boundary and angular velocity stays constant.
func (c *AnimationClock) Advance() {
	if c.state != Playing {
		return
	}
	c.progress += c.speed
	if c.progress >= 1 {
		if c.loop {
			c.progress -= 1
		} else {
			c.progress = 1
			c.state = Stopped
		}
	}
}

func (c *AnimationClock) SetSpeed(v float32) error {
	if v <= 0 {
		return &ValidationError{Field: "speed", Reason: "must be positive"}
	}
	c.speed = v
	return nil
}

func (c *AnimationClock) SetLoop(loop bool) { c.loop = loop }

func (c *AnimationClock) Progress() float32 { return c.progress }
func (c *AnimationClock) Speed() float32    { return c.speed }
func (c *AnimationClock) Loop() bool        { return c.loop }
func (c *AnimationClock) State() ClockState { return c.state }

func (c *AnimationClock) IsPlaying() bool { return c.state == Playing }
