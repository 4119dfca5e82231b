package opm_test

import (
	"testing"

	"github.com/jetsetilly/testym/hardware/ym2151"
	"github.com/jetsetilly/testym/hardware/ym2151/opm"
	"github.com/jetsetilly/testym/test"
)

// stubSync implements the ym2151.Sync interface and records what the engine
// asks of it
type stubSync struct {
	busy      bool
	busyTicks int
	timers    [2]int
	irq       bool
}

func (s *stubSync) SetBusyEnd(ticks int) {
	s.busyTicks = ticks
}

func (s *stubSync) SetTimer(tnum int, ticks int) {
	if tnum >= 0 && tnum < len(s.timers) {
		s.timers[tnum] = ticks
	}
}

func (s *stubSync) Busy() bool {
	return s.busy
}

func (s *stubSync) UpdateIRQ(asserted bool) {
	s.irq = asserted
}

func write(o *opm.OPM, addr uint8, data uint8) {
	o.WriteAddress(addr)
	o.WriteData(data, true)
}

func TestBusyWindow(t *testing.T) {
	sync := &stubSync{}
	o := opm.Create(sync)

	// a bus write starts the busy window
	o.WriteAddress(0x28)
	o.WriteData(0x4a, false)
	test.ExpectEquality(t, sync.busyTicks, 64)

	// a debug write does not
	sync.busyTicks = 0
	write(o, 0x28, 0x4a)
	test.ExpectEquality(t, sync.busyTicks, 0)

	// the busy flag appears in the status byte
	sync.busy = true
	test.ExpectEquality(t, o.ReadStatus()&0x80, 0x80)
	sync.busy = false
	test.ExpectEquality(t, o.ReadStatus()&0x80, 0x00)
}

func TestTimerPeriods(t *testing.T) {
	sync := &stubSync{}
	o := opm.Create(sync)

	// timer A period is 64*(1024-CLKA) chip clocks. CLKA is ten bits across
	// two registers
	write(o, ym2151.RegClockA1, 0xff)
	write(o, ym2151.RegClockA2, 0x03)
	write(o, ym2151.RegControl, 0x01)
	test.ExpectEquality(t, sync.timers[0], 64)

	write(o, ym2151.RegClockA1, 0x00)
	write(o, ym2151.RegClockA2, 0x00)
	write(o, ym2151.RegControl, 0x01)
	test.ExpectEquality(t, sync.timers[0], 64*1024)

	// timer B period is 1024*(256-CLKB) chip clocks
	write(o, ym2151.RegClockB, 0x00)
	write(o, ym2151.RegControl, 0x02)
	test.ExpectEquality(t, sync.timers[1], 1024*256)

	write(o, ym2151.RegClockB, 0xff)
	write(o, ym2151.RegControl, 0x02)
	test.ExpectEquality(t, sync.timers[1], 1024)

	// clearing the load bits disarms the timers
	write(o, ym2151.RegControl, 0x00)
	test.ExpectEquality(t, sync.timers[0], -1)
	test.ExpectEquality(t, sync.timers[1], -1)
}

func TestTimerOverflowFlags(t *testing.T) {
	sync := &stubSync{}
	o := opm.Create(sync)

	// load and enable timer A
	write(o, ym2151.RegControl, 0x05)

	o.TimerExpired(0)
	test.ExpectEquality(t, o.ReadStatus()&0x03, 0x01)
	test.ExpectSuccess(t, sync.irq)

	// a loaded timer reloads on expiry
	test.ExpectSuccess(t, sync.timers[0] > 0)

	// resetting the flag clears the interrupt
	write(o, ym2151.RegControl, 0x15)
	test.ExpectEquality(t, o.ReadStatus()&0x03, 0x00)
	test.ExpectFailure(t, sync.irq)
}

func TestTimerEnableGatesFlag(t *testing.T) {
	sync := &stubSync{}
	o := opm.Create(sync)

	// loaded but not enabled. expiry must not raise the overflow flag
	write(o, ym2151.RegControl, 0x01)

	o.TimerExpired(0)
	test.ExpectEquality(t, o.ReadStatus()&0x03, 0x00)
	test.ExpectFailure(t, sync.irq)
}

func TestRegisterData(t *testing.T) {
	sync := &stubSync{}
	o := opm.Create(sync)

	write(o, 0x60, 0x7f)
	test.ExpectEquality(t, o.RegisterData(0x60), 0x7f)
	test.ExpectEquality(t, o.RegisterData(0x61), 0x00)
}

// configure voice zero for audible output and open the gate
func keyOnVoice(o *opm.OPM) {
	// carrier operator settings: full attack rate, no attenuation
	write(o, ym2151.RegKSAR+3*8, 0x1f)
	write(o, ym2151.RegTL+3*8, 0x00)

	// both channels enabled
	write(o, ym2151.RegRLFBConn, 0xc0)

	// a note in the middle of the range
	write(o, ym2151.RegKC, 0x4a)

	// gate all four operators of voice zero
	write(o, ym2151.RegKeyOn, 0x78)
}

func TestGenerateAudible(t *testing.T) {
	sync := &stubSync{}
	o := opm.Create(sync)

	// silence before key-on
	frames := make([]ym2151.Frame, 256)
	o.Generate(frames)
	for _, f := range frames {
		if f != (ym2151.Frame{}) {
			t.Fatal("output before key-on")
		}
	}

	keyOnVoice(o)

	o.Generate(frames)
	var audible bool
	for _, f := range frames {
		if f[0] != 0 || f[1] != 0 {
			audible = true
			break
		}
	}
	test.ExpectSuccess(t, audible)
}

func TestReleaseDecaysToSilence(t *testing.T) {
	sync := &stubSync{}
	o := opm.Create(sync)

	keyOnVoice(o)

	// a fast release rate
	write(o, ym2151.RegD1LRR+3*8, 0x0f)

	frames := make([]ym2151.Frame, 512)
	o.Generate(frames)

	// close the gate and let the envelope decay
	write(o, ym2151.RegKeyOn, 0x00)
	o.Generate(frames)

	test.ExpectEquality(t, frames[len(frames)-1], ym2151.Frame{})
}

func TestPanning(t *testing.T) {
	sync := &stubSync{}
	o := opm.Create(sync)

	keyOnVoice(o)

	// left channel only
	write(o, ym2151.RegRLFBConn, 0x40)

	frames := make([]ym2151.Frame, 256)
	o.Generate(frames)

	var left bool
	for _, f := range frames {
		if f[1] != 0 {
			t.Fatal("output on disabled right channel")
		}
		if f[0] != 0 {
			left = true
		}
	}
	test.ExpectSuccess(t, left)
}

func TestEngineReset(t *testing.T) {
	sync := &stubSync{busy: false}
	o := opm.Create(sync)

	keyOnVoice(o)
	write(o, ym2151.RegControl, 0x05)
	o.TimerExpired(0)
	test.ExpectSuccess(t, sync.irq)

	o.Reset()
	test.ExpectEquality(t, o.ReadStatus(), 0x00)
	test.ExpectEquality(t, o.RegisterData(ym2151.RegKC), 0x00)
	test.ExpectFailure(t, sync.irq)
	test.ExpectEquality(t, sync.timers[0], -1)
	test.ExpectEquality(t, sync.timers[1], -1)

	// silent after reset
	frames := make([]ym2151.Frame, 64)
	o.Generate(frames)
	for _, f := range frames {
		if f != (ym2151.Frame{}) {
			t.Fatal("output after reset")
		}
	}
}
