package ym2151

// register addresses for the YM2151. global registers have a single address,
// per-voice registers are indexed by voice (0 to 7) and per-operator
// registers by operator*8+voice
const (
	RegTest     = 0x01
	RegKeyOn    = 0x08
	RegNoise    = 0x0f
	RegClockA1  = 0x10
	RegClockA2  = 0x11
	RegClockB   = 0x12
	RegControl  = 0x14
	RegLFOFreq  = 0x18
	RegPMDAMD   = 0x19
	RegCTWave   = 0x1b
	RegRLFBConn = 0x20
	RegKC       = 0x28
	RegKF       = 0x30
	RegPMSAMS   = 0x38
	RegDT1MUL   = 0x40
	RegTL       = 0x60
	RegKSAR     = 0x80
	RegAMSD1R   = 0xa0
	RegDT2D2R   = 0xc0
	RegD1LRR    = 0xe0
)

// NumVoices is the number of voices (or channels) in the YM2151
const NumVoices = 8

// NumOperators is the number of operators (or slots) for each voice
const NumOperators = 4

// Reset returns the engine and the register mirror to their power-on state.
// on power-on the left/right enable bits of the RL/FB/CONN registers are set
func (ym *YM2151) Reset() {
	ym.engine.Reset()

	clear(ym.registers[:])

	// the defaults go through the debug path so the engine sees them too
	for i := uint8(0); i < NumVoices; i++ {
		ym.DebugWrite(RegRLFBConn+i, 0xc0)
	}
}

// Registers returns a copy of the register mirror, the last value written to
// every register. serialisation of chip state for save-states is the
// responsibility of the caller
func (ym *YM2151) Registers() [256]uint8 {
	return ym.registers
}

// ModulationRegisters copies the registers affecting the LFO and noise
// generator into regs
func (ym *YM2151) ModulationRegisters(regs *[256]uint8) {
	regs[RegTest] = ym.registers[RegTest]
	regs[RegNoise] = ym.registers[RegNoise]
	regs[RegLFOFreq] = ym.registers[RegLFOFreq]
	regs[RegPMDAMD] = ym.registers[RegPMDAMD]
	regs[RegCTWave] = ym.registers[RegCTWave]
}

// VoiceRegisters copies the per-voice registers for the numbered voice into
// regs
func (ym *YM2151) VoiceRegisters(voice uint8, regs *[256]uint8) {
	if voice >= NumVoices {
		return
	}
	regs[RegRLFBConn+voice] = ym.registers[RegRLFBConn+voice]
	regs[RegKC+voice] = ym.registers[RegKC+voice]
	regs[RegKF+voice] = ym.registers[RegKF+voice]
	regs[RegPMSAMS+voice] = ym.registers[RegPMSAMS+voice]
}

// OperatorRegisters copies the per-operator registers for the numbered voice
// and operator into regs
func (ym *YM2151) OperatorRegisters(voice uint8, op uint8, regs *[256]uint8) {
	if voice >= NumVoices || op >= NumOperators {
		return
	}
	idx := op*8 + voice
	regs[RegDT1MUL+idx] = ym.registers[RegDT1MUL+idx]
	regs[RegTL+idx] = ym.registers[RegTL+idx]
	regs[RegKSAR+idx] = ym.registers[RegKSAR+idx]
	regs[RegAMSD1R+idx] = ym.registers[RegAMSD1R+idx]
	regs[RegDT2D2R+idx] = ym.registers[RegDT2D2R+idx]
	regs[RegD1LRR+idx] = ym.registers[RegD1LRR+idx]
}
