package ym2151

import (
	"github.com/jetsetilly/testym/hardware/clocks"
)

// BackbufferUsed returns the number of native samples generated but not yet
// consumed by the resampling pipeline
func (ym *YM2151) BackbufferUsed() int {
	return ym.used
}

// ClearBackbuffer discards any unconsumed native samples
func (ym *YM2151) ClearBackbuffer() {
	ym.used = 0
}

// produce generates up to n samples at the native rate and appends them to
// the backbuffer. if the backbuffer does not have room for n samples then
// production is capped at the remaining space. there is no blocking and no
// error, the expectation is that the consumer will catch up before the next
// call
//
// the chip can accept at most one queued write per generated sample, so the
// write queue is drained one entry before each sample until either the queue
// or the sample count is exhausted
func (ym *YM2151) produce(n int) {
	if ym.used+n > len(ym.backbuffer) {
		n = len(ym.backbuffer) - ym.used
	}

	for n > 0 && ym.applyPending() {
		ym.engine.Generate(ym.backbuffer[ym.used : ym.used+1])
		ym.updateClocks(1)
		ym.used++
		n--
	}

	if n > 0 {
		ym.engine.Generate(ym.backbuffer[ym.used : ym.used+n])
		ym.updateClocks(n)
		ym.used += n
	}
}

// Prerender converts a count of elapsed system clocks into backbuffer
// production. the fractional remainder of the conversion is carried over to
// the next call so that no drift accumulates. called once per step of the
// console loop
func (ym *YM2151) Prerender(clocksElapsed int) {
	ym.clocksElapsed += clocksElapsed

	n := ym.clocksElapsed / clocks.SystemClocksPerSample
	if n > 0 {
		ym.produce(n)
		ym.clocksElapsed -= n * clocks.SystemClocksPerSample
	}
}
