package ym2151

import (
	"fmt"

	"github.com/jetsetilly/testym/hardware/clocks"
	"github.com/jetsetilly/testym/logger"
)

// Frame is a single stereo sample generated at the chip's native rate
type Frame [2]int16

// ToneEngine is the synthesis capability attached to the YM2151 type. The
// engine owns the register state that affects synthesis and produces raw
// stereo samples at the native rate. It knows nothing about real time: busy
// and timer durations are delegated to the Sync interface it was created
// with
type ToneEngine interface {
	// WriteAddress latches the register address for a subsequent WriteData
	WriteAddress(addr uint8)

	// WriteData applies data to the most recently latched register address.
	// writes made through the debugging path are indicated by the debug flag
	// and must not trigger the busy window
	WriteData(data uint8, debug bool)

	// Generate synthesises the next len(frames) samples at the native rate
	Generate(frames []Frame)

	// RegisterData returns the engine's own copy of the numbered register.
	// this is the authoritative register state, as opposed to the mirror
	// maintained by this package
	RegisterData(addr uint8) uint8

	// ReadStatus returns the chip status byte. bits 0 and 1 are the timer
	// overflow flags and bit 7 is the busy flag
	ReadStatus() uint8

	// TimerExpired is called when an armed timer counts down to zero
	TimerExpired(tnum int)

	// Reset returns the engine to its power-on state
	Reset()
}

// Sync is the interface through which a ToneEngine signals its timing
// requirements. durations are measured in YM2151 clocks
type Sync interface {
	// SetBusyEnd marks the chip as busy for the given number of clocks,
	// replacing any busy period still outstanding
	SetBusyEnd(ticks int)

	// SetTimer arms the numbered timer to expire after the given number of
	// clocks. a negative value disarms the timer
	SetTimer(tnum int, ticks int)

	// Busy is true if a previous SetBusyEnd() period has not yet elapsed
	Busy() bool

	// UpdateIRQ is called whenever a status change affects the chip's IRQ
	// line
	UpdateIRQ(asserted bool)
}

// YM2151 is the host-timing wrapper around a ToneEngine. It implements the
// Sync interface on the engine's behalf
type YM2151 struct {
	engine ToneEngine

	// mirror of the last value written to every register. see registers.go
	registers [256]uint8

	// the two-phase write port. writing to the address port latches the
	// register address for a subsequent write to the data port
	lastAddress uint8
	lastData    uint8

	// busy and timer countdowns, measured in YM2151 clocks. see clock.go
	busy   countdown
	timers [2]countdown

	// writes submitted while the chip is busy. drained one entry per
	// generated sample. see queue.go
	queue []pendingWrite

	// samples generated at the native rate but not yet consumed by the
	// resampling pipeline. see backbuffer.go
	backbuffer []Frame
	used       int

	// system clocks accumulated by Prerender() but not yet accounted for by
	// sample production
	clocksElapsed int

	// the resampling pipeline. see resample.go
	resampler [2]resamplerChannel
	prevRate  int
	convIn    []int16
	convOut   []int16

	// irqStatus is the engine's view of the IRQ line. the observable IRQ()
	// value is gated by irqEnabled, which belongs to the surrounding system
	irqStatus  bool
	irqEnabled bool

	// in strict mode a write submitted during the busy window is dropped
	// rather than queued, as happens on real hardware
	strict bool
}

// Create is the preferred method of initialisation for the YM2151 type. The
// engine function receives the Sync interface the new engine should signal
// its timing requirements to
func Create(engine func(Sync) ToneEngine) *YM2151 {
	ym := &YM2151{
		backbuffer: make([]Frame, clocks.NativeRate),
	}
	ym.engine = engine(ym)
	ym.Reset()
	return ym
}

func (ym *YM2151) String() string {
	return fmt.Sprintf("YM2151: status=%02x busy=%v timerA=%d timerB=%d queued=%d",
		ym.engine.ReadStatus(), ym.Busy(), ym.TimerCounter(0), ym.TimerCounter(1), len(ym.queue))
}

// Write is the chip's two-phase write port. When portIsData is false the data
// latches the register address to be used by a subsequent write to the data
// port. When portIsData is true the data is submitted to the latched
// register through the busy-gated write path
func (ym *YM2151) Write(portIsData bool, data uint8) {
	if !portIsData {
		ym.lastAddress = data
		return
	}

	ym.lastData = data

	// the mirror always reflects the most recent write, even if strict
	// timing causes the write to be dropped
	ym.registers[ym.lastAddress] = data

	ym.submit(ym.lastAddress, data)
}

// ReadStatus returns the chip status byte
func (ym *YM2151) ReadStatus() uint8 {
	return ym.engine.ReadStatus()
}

// DebugWrite applies the write immediately, bypassing the busy window, and
// updates the register mirror. Used by debugging tools so that edits always
// take effect
func (ym *YM2151) DebugWrite(addr uint8, data uint8) {
	ym.registers[addr] = data
	ym.engine.WriteAddress(addr)
	ym.engine.WriteData(data, true)
}

// DebugRead returns the engine's own copy of the numbered register. This is
// the authoritative register state. the mirrored value is available through
// Registers()
func (ym *YM2151) DebugRead(addr uint8) uint8 {
	return ym.engine.RegisterData(addr)
}

// LastAddress is the most recent value written to the address port
func (ym *YM2151) LastAddress() uint8 {
	return ym.lastAddress
}

// LastData is the most recent value written to the data port
func (ym *YM2151) LastData() uint8 {
	return ym.lastData
}

// IRQ returns the state of the chip's IRQ line as observed by the rest of
// the system. The line is gated by the enable flag
func (ym *YM2151) IRQ() bool {
	return ym.irqEnabled && ym.irqStatus
}

// SetIRQEnabled sets the gate on the observable IRQ line. The chip's own
// interrupt status is unaffected
func (ym *YM2151) SetIRQEnabled(enabled bool) {
	ym.irqEnabled = enabled
}

// IRQEnabled returns the state of the IRQ gate
func (ym *YM2151) IRQEnabled() bool {
	return ym.irqEnabled
}

// SetStrict enables or disables strict busy timing. In strict mode a write
// submitted during the busy window is dropped with a warning rather than
// queued
func (ym *YM2151) SetStrict(strict bool) {
	ym.strict = strict
}

// Strict returns whether strict busy timing is enabled
func (ym *YM2151) Strict() bool {
	return ym.strict
}

// UpdateIRQ implements the Sync interface
func (ym *YM2151) UpdateIRQ(asserted bool) {
	ym.irqStatus = asserted
}

// submit is the busy-gated write path. if the chip is not busy the write is
// applied immediately. otherwise it is queued, or dropped if strict timing
// is enabled
func (ym *YM2151) submit(addr uint8, data uint8) {
	if ym.Busy() {
		if ym.strict {
			logger.Logf(logger.Allow, "ym2151", "write to $%02x ($%02x) while busy", addr, data)
			return
		}
		ym.queue = append(ym.queue, pendingWrite{addr: addr, data: data})
		return
	}

	ym.engine.WriteAddress(addr)
	ym.engine.WriteData(data, false)
}
