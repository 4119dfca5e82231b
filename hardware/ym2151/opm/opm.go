package opm

import (
	"fmt"

	"github.com/jetsetilly/testym/hardware/ym2151"
)

// the number of chip clocks the chip is busy for after a write to the data
// port
const busyTicks = 64

// control register ($14) bit assignments
const (
	ctrlLoadA   = 0x01
	ctrlLoadB   = 0x02
	ctrlEnableA = 0x04
	ctrlEnableB = 0x08
	ctrlResetA  = 0x10
	ctrlResetB  = 0x20
	ctrlCSM     = 0x80
)

// status byte flags. the busy flag is owned by the host timing model and
// added by ReadStatus()
const (
	statusTimerA = 0x01
	statusTimerB = 0x02
	statusBusy   = 0x80
)

// OPM is a simple implementation of the ym2151.ToneEngine interface
type OPM struct {
	sync ym2151.Sync

	registers [256]uint8
	address   uint8

	// timer overflow flags, as visible in the status byte
	status uint8

	voices [ym2151.NumVoices]voice
}

// Create is the preferred method of initialisation for the OPM type
func Create(sync ym2151.Sync) *OPM {
	o := &OPM{
		sync: sync,
	}
	o.Reset()
	return o
}

func (o *OPM) String() string {
	return fmt.Sprintf("OPM: status=%02x ctrl=%02x", o.status, o.registers[ym2151.RegControl])
}

// Reset implements the ym2151.ToneEngine interface
func (o *OPM) Reset() {
	clear(o.registers[:])
	o.address = 0
	o.status = 0
	for i := range o.voices {
		o.voices[i] = voice{}
	}
	o.sync.SetTimer(0, -1)
	o.sync.SetTimer(1, -1)
	o.sync.UpdateIRQ(false)
}

// WriteAddress implements the ym2151.ToneEngine interface
func (o *OPM) WriteAddress(addr uint8) {
	o.address = addr
}

// WriteData implements the ym2151.ToneEngine interface
func (o *OPM) WriteData(data uint8, debug bool) {
	o.registers[o.address] = data

	switch {
	case o.address == ym2151.RegKeyOn:
		o.keyOn(data)
	case o.address == ym2151.RegControl:
		o.controlWrite(data)
	case o.address >= ym2151.RegKC && o.address < ym2151.RegKC+ym2151.NumVoices:
		o.voices[o.address-ym2151.RegKC].retune = true
	case o.address >= ym2151.RegKF && o.address < ym2151.RegKF+ym2151.NumVoices:
		o.voices[o.address-ym2151.RegKF].retune = true
	}

	// a write through the debugging path must not start a busy window
	if !debug {
		o.sync.SetBusyEnd(busyTicks)
	}
}

// RegisterData implements the ym2151.ToneEngine interface
func (o *OPM) RegisterData(addr uint8) uint8 {
	return o.registers[addr]
}

// ReadStatus implements the ym2151.ToneEngine interface
func (o *OPM) ReadStatus() uint8 {
	s := o.status
	if o.sync.Busy() {
		s |= statusBusy
	}
	return s
}

// timerAPeriod returns the period of timer A in chip clocks
func (o *OPM) timerAPeriod() int {
	clka := int(o.registers[ym2151.RegClockA1])<<2 | int(o.registers[ym2151.RegClockA2]&0x03)
	return 64 * (1024 - clka)
}

// timerBPeriod returns the period of timer B in chip clocks
func (o *OPM) timerBPeriod() int {
	return 1024 * (256 - int(o.registers[ym2151.RegClockB]))
}

// controlWrite handles a write to the timer control register ($14). the load
// bits arm or disarm the timers and the reset bits clear the overflow flags
func (o *OPM) controlWrite(data uint8) {
	if data&ctrlLoadA == ctrlLoadA {
		o.sync.SetTimer(0, o.timerAPeriod())
	} else {
		o.sync.SetTimer(0, -1)
	}

	if data&ctrlLoadB == ctrlLoadB {
		o.sync.SetTimer(1, o.timerBPeriod())
	} else {
		o.sync.SetTimer(1, -1)
	}

	if data&ctrlResetA == ctrlResetA {
		o.status &^= statusTimerA
	}
	if data&ctrlResetB == ctrlResetB {
		o.status &^= statusTimerB
	}

	o.checkInterrupts()
}

// TimerExpired implements the ym2151.ToneEngine interface. the overflow flag
// is only raised if the control register enables the timer's interrupt. a
// loaded timer reloads its period and keeps running
func (o *OPM) TimerExpired(tnum int) {
	ctrl := o.registers[ym2151.RegControl]

	switch tnum {
	case 0:
		if ctrl&ctrlEnableA == ctrlEnableA {
			o.status |= statusTimerA
		}
		if ctrl&ctrlLoadA == ctrlLoadA {
			o.sync.SetTimer(0, o.timerAPeriod())
		}
	case 1:
		if ctrl&ctrlEnableB == ctrlEnableB {
			o.status |= statusTimerB
		}
		if ctrl&ctrlLoadB == ctrlLoadB {
			o.sync.SetTimer(1, o.timerBPeriod())
		}
	}

	o.checkInterrupts()
}

func (o *OPM) checkInterrupts() {
	o.sync.UpdateIRQ(o.status&(statusTimerA|statusTimerB) != 0)
}

// keyOn handles a write to the key-on register ($08). the voice gate is
// opened if any of the four operator bits are set
func (o *OPM) keyOn(data uint8) {
	v := data & 0x07
	o.voices[v].gate = data&0x78 != 0
}
