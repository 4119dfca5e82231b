// Package opm is a deliberately simple tone engine for the YM2151 wrapper.
// It implements the parts of the chip that interact with host timing
// faithfully: register storage, the busy window trigger, the two interval
// timers with their control register, and the status and IRQ flags.
//
// The synthesis itself is not an FM model. Each voice is a single sine
// oscillator with a linear attack/release envelope, pitched from the KC/KF
// registers and attenuated by the carrier's total level. This is enough to
// hear register edits from the debugger and to exercise the render path end
// to end. A full synthesis core, such as a port of ymfm, can be substituted
// by implementing the ym2151.ToneEngine interface.
//
// Timer periods are taken from the YM2151 application manual. Timer A counts
// 64*(1024-CLKA) chip clocks and timer B counts 1024*(256-CLKB) chip clocks.
package opm
