package ym2151

import (
	"github.com/jetsetilly/testym/hardware/clocks"
	"github.com/jetsetilly/testym/logger"
)

// the number of native samples requested from the backbuffer in addition to
// the estimated requirement. absorbs the variability in how many output
// samples the converter emits for a given number of inputs
const safetyMargin = 2

// resamplerChannel is the per-channel state of the resampling pipeline. both
// channels are fed the same native samples and so should never diverge, but
// each carries its own converter and leftover queue
type resamplerChannel struct {
	conv     converter
	leftover []int16
}

// converter changes the rate of a single channel of samples by linear
// interpolation. the position within the native stream is tracked in 32.32
// fixed point across calls so that the long-run output rate is exact
type converter struct {
	// the native-to-requested ratio in 32.32 fixed point
	ratio uint64

	// position within the interval between the previous sample and the
	// current one
	pos uint64

	// the previously processed native sample. the first sample processed
	// after initialisation has no predecessor to interpolate from
	prev   int16
	primed bool
}

const fixedOne = uint64(1) << 32

func newConverter(nativeRate int, requestedRate int) converter {
	return converter{
		ratio: (uint64(nativeRate) << 32) / uint64(requestedRate),
	}
}

func lerp(v0 int16, v1 int16, frac uint64) int16 {
	d := int64(v1) - int64(v0)
	return int16(int64(v0) + ((d * int64(frac>>16)) >> 16))
}

// process converts native-rate samples, appending requested-rate samples to
// out. the number of samples emitted varies call to call but averages
// len(in) divided by the conversion ratio
func (c *converter) process(in []int16, out []int16) []int16 {
	for _, s := range in {
		if !c.primed {
			c.prev = s
			c.primed = true
			continue
		}
		for c.pos < fixedOne {
			out = append(out, lerp(c.prev, s, c.pos))
			c.pos += c.ratio
		}
		c.pos -= fixedOne
		c.prev = s
	}
	return out
}

// Render fills buf with n stereo samples at the requested rate, consuming
// native samples from the backbuffer and generating more on demand. buf is
// interleaved left/right and must have room for n*2 values
//
// exactly n samples per channel are delivered on every call. any samples the
// converters emit beyond the request are kept for the next call
func (ym *YM2151) Render(buf []int16, n int, rate int) {
	// (re)initialise converters if the requested rate has changed. this
	// includes the first call
	if rate != ym.prevRate {
		for i := range ym.resampler {
			ym.resampler[i].conv = newConverter(clocks.NativeRate, rate)
			ym.resampler[i].leftover = ym.resampler[i].leftover[:0]
		}
		ym.prevRate = rate
	}

	// the number of samples delivered to each channel so far
	var done [2]int

	// use up any leftover samples from previous calls
	for i := range ym.resampler {
		l := ym.resampler[i].leftover
		ct := min(len(l), n)
		for j := range ct {
			buf[j*2+i] = l[j]
		}
		ym.resampler[i].leftover = l[:copy(l, l[ct:])]
		done[i] = ct
	}

	// both channels are driven from the same native stream so the leftover
	// queues should always be the same length. continue with each channel's
	// own count if they are not
	if done[0] != done[1] {
		logger.Logf(logger.Allow, "ym2151", "channels have diverged (leftover samples: %d and %d)", done[0], done[1])
	}

	for done[0] < n || done[1] < n {
		// estimate how many native samples are needed to cover the
		// remainder of the request
		remaining := max(n-done[0], n-done[1])
		needed := remaining*clocks.NativeRate/rate + safetyMargin

		if needed > ym.used {
			ym.produce(needed - ym.used)
		}

		// production is capped by backbuffer capacity
		if needed > ym.used {
			needed = ym.used
		}
		if needed == 0 {
			break
		}

		for i := range ym.resampler {
			// deinterleave the native frames for this channel
			ym.convIn = ym.convIn[:0]
			for _, f := range ym.backbuffer[:needed] {
				ym.convIn = append(ym.convIn, f[i])
			}

			ym.convOut = ym.resampler[i].conv.process(ym.convIn, ym.convOut[:0])

			// satisfy the request and push any excess onto the leftover
			// queue
			for _, v := range ym.convOut {
				if done[i] < n {
					buf[done[i]*2+i] = v
					done[i]++
				} else {
					ym.resampler[i].leftover = append(ym.resampler[i].leftover, v)
				}
			}
		}

		// remove consumed samples from the head of the backbuffer
		copy(ym.backbuffer, ym.backbuffer[needed:ym.used])
		ym.used -= needed
	}
}
