package opm

import (
	"math"

	"github.com/jetsetilly/testym/hardware/clocks"
	"github.com/jetsetilly/testym/hardware/ym2151"
)

// the resolution of the envelope level
const envMax = 1 << 14

// voice is a single sine oscillator with a linear attack/release envelope.
// it stands in for the four-operator FM voice of the real chip
type voice struct {
	phase uint32
	step  uint32

	// recompute step on the next sample. set when the KC or KF registers
	// are written
	retune bool

	gate bool
	env  int32
}

// sine quantised to 1024 steps
var sine [1024]int16

func init() {
	for i := range sine {
		sine[i] = int16(math.Sin(2*math.Pi*float64(i)/1024) * 4095)
	}
}

// the frequency of octave zero, semitone zero. chosen so that key code $4A
// (octave 4, note A) is 440Hz
const baseFrequency = 17.324

// phaseStep converts the KC and KF register values to a phase increment per
// native sample
func phaseStep(kc uint8, kf uint8) uint32 {
	octave := float64((kc >> 4) & 0x07)

	// the key code skips every fourth value. removing the gaps gives a
	// semitone number in the range 0 to 11
	note := int(kc & 0x0f)
	semi := note - note/4
	if semi > 11 {
		semi = 11
	}

	fraction := float64(kf>>2) / 64

	freq := baseFrequency * math.Exp2(octave+(float64(semi)+fraction)/12)
	return uint32(freq / clocks.NativeRate * (1 << 32))
}

// envelope rates are approximations. the attack rate and release rate
// registers scale a linear per-sample step
func attackStep(ar uint8) int32 {
	return int32(ar+1) * int32(ar+1) / 2
}

func releaseStep(rr uint8) int32 {
	return int32(rr+1) * int32(rr+1) / 2
}

// the operator used for voice-level settings. in the most common algorithm
// arrangements operator 4 (C2) is a carrier
const carrierOp = 3

// Generate implements the ym2151.ToneEngine interface
func (o *OPM) Generate(frames []ym2151.Frame) {
	for i := range frames {
		var l, r int32

		for v := range o.voices {
			vc := &o.voices[v]

			if vc.retune {
				vc.step = phaseStep(o.registers[ym2151.RegKC+v], o.registers[ym2151.RegKF+v])
				vc.retune = false
			}

			if vc.gate {
				vc.env = min(vc.env+attackStep(o.registers[ym2151.RegKSAR+carrierOp*8+v]&0x1f), envMax)
			} else {
				vc.env = max(vc.env-releaseStep(o.registers[ym2151.RegD1LRR+carrierOp*8+v]&0x0f), 0)
			}

			if vc.env <= 0 {
				continue
			}

			vc.phase += vc.step

			tl := int32(o.registers[ym2151.RegTL+carrierOp*8+v] & 0x7f)
			s := int32(sine[vc.phase>>22])
			s = s * vc.env / envMax
			s = s * (127 - tl) / 127

			rl := o.registers[ym2151.RegRLFBConn+v]
			if rl&0x40 == 0x40 {
				l += s
			}
			if rl&0x80 == 0x80 {
				r += s
			}
		}

		frames[i] = ym2151.Frame{clamp(l), clamp(r)}
	}
}

func clamp(v int32) int16 {
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	if v < math.MinInt16 {
		return math.MinInt16
	}
	return int16(v)
}
