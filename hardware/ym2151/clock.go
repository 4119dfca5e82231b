package ym2151

import (
	"github.com/jetsetilly/testym/hardware/clocks"
	"github.com/jetsetilly/testym/logger"
)

// countdown is a duration measured in YM2151 clocks, counting towards zero.
// it distinguishes between a countdown that has never been armed and one
// that has reached zero and is waiting to be rearmed. a countdown at zero
// does not fire again
type countdown struct {
	armed     bool
	remaining int
}

func (c *countdown) arm(ticks int) {
	c.armed = true
	c.remaining = ticks
}

func (c *countdown) disarm() {
	c.armed = false
	c.remaining = 0
}

// pending is true while the countdown is armed and has not yet reached zero
func (c *countdown) pending() bool {
	return c.armed && c.remaining > 0
}

// advance reduces the countdown by the given number of ticks. it returns
// true only on the call that takes the countdown to zero
func (c *countdown) advance(ticks int) bool {
	if !c.armed || c.remaining <= 0 {
		return false
	}
	c.remaining -= ticks
	if c.remaining <= 0 {
		c.remaining = 0
		return true
	}
	return false
}

// SetBusyEnd implements the Sync interface. the new busy period replaces any
// outstanding period, it is not additive
func (ym *YM2151) SetBusyEnd(ticks int) {
	ym.busy.arm(ticks)
}

// Busy implements the Sync interface
func (ym *YM2151) Busy() bool {
	return ym.busy.pending()
}

// SetTimer implements the Sync interface. the chip has exactly two timers so
// any other timer number is reported and ignored
func (ym *YM2151) SetTimer(tnum int, ticks int) {
	if tnum < 0 || tnum >= len(ym.timers) {
		logger.Logf(logger.Allow, "ym2151", "no timer %d to arm", tnum)
		return
	}
	if ticks < 0 {
		ym.timers[tnum].disarm()
		return
	}
	ym.timers[tnum].arm(ticks)
}

// TimerCounter returns the number of YM2151 clocks remaining before the
// numbered timer expires. a disarmed timer returns -1
func (ym *YM2151) TimerCounter(tnum int) int {
	if tnum < 0 || tnum >= len(ym.timers) {
		logger.Logf(logger.Allow, "ym2151", "no timer %d to read", tnum)
		return -1
	}
	if !ym.timers[tnum].armed {
		return -1
	}
	return ym.timers[tnum].remaining
}

// updateClocks accounts for the generation of the given number of native
// samples. the busy window decays and any timer that reaches zero notifies
// the engine, exactly once per arming
func (ym *YM2151) updateClocks(samples int) {
	ticks := samples * clocks.TicksPerSample

	ym.busy.advance(ticks)

	for i := range ym.timers {
		if ym.timers[i].advance(ticks) {
			ym.engine.TimerExpired(i)
		}
	}
}
