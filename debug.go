package thicket

import "time"

// frameStats accumulates loop timing between performance samples.
type frameStats struct {
	stepTime  time.Duration // wall time spent in simulation steps
	drawTime  time.Duration // wall time spent in DrawPass
	saturated int           // frames that hit MaxUpdatesPerFrame
	skipped   float64       // ms of simulation dropped by the frame-skip policy
	capped    float64       // ms of simulation dropped by the 5-step ceiling
}

func (s *frameStats) reset() {
	*s = frameStats{}
}

// logStats emits the accumulated stats at debug level and resets them.
func (e *Engine) logStats() {
	st := &e.stats
	e.logger.Debug("loop",
		"step", st.stepTime,
		"draw", st.drawTime,
		"saturated", st.saturated,
		"skippedMs", st.skipped,
		"cappedMs", st.capped)
	st.reset()
}
