package ym2151

// getBitField extracts the bits of v from hi to lo inclusive, shifted down
// so the lo bit is bit zero
func getBitField(v uint8, hi int, lo int) uint8 {
	mask := uint8(1<<(hi-lo+1) - 1)
	return (v >> lo) & mask
}

// setBitField substitutes the bits of v from hi to lo inclusive with f,
// leaving the other bits of v untouched
func setBitField(v uint8, hi int, lo int, f uint8) uint8 {
	mask := uint8(1<<(hi-lo+1)-1) << lo
	return (v &^ mask) | ((f << lo) & mask)
}

// field reads a bit range of the register mirror
func (ym *YM2151) field(addr uint8, hi int, lo int) uint8 {
	return getBitField(ym.registers[addr], hi, lo)
}

// setField substitutes a bit range of the mirrored register value and
// applies the result through the debug path, so the edit takes effect
// regardless of the busy window
func (ym *YM2151) setField(addr uint8, hi int, lo int, f uint8) {
	ym.DebugWrite(addr, setBitField(ym.registers[addr], hi, lo, f))
}

// the field accessors below decompose and recompose the registers described
// in the YM2151 application manual. getters work entirely from the register
// mirror. setters go through DebugWrite(). out of range voice and operator
// numbers are harmless: getters return zero and setters do nothing

// KeyOn gates the operators of a voice. a true value for any of m1, c1, m2
// and c2 switches the corresponding operator on
func (ym *YM2151) KeyOn(voice uint8, m1 bool, c1 bool, m2 bool, c2 bool) {
	if voice >= NumVoices {
		return
	}
	v := voice
	if m1 {
		v |= 0x08
	}
	if c1 {
		v |= 0x10
	}
	if m2 {
		v |= 0x20
	}
	if c2 {
		v |= 0x40
	}
	ym.DebugWrite(RegKeyOn, v)
}

// LastKeyOn is the most recent value written to the key-on register ($08)
func (ym *YM2151) LastKeyOn() uint8 {
	return ym.registers[RegKeyOn]
}

// LFOFrequency is the LFO frequency register ($18)
func (ym *YM2151) LFOFrequency() uint8 {
	return ym.registers[RegLFOFreq]
}

func (ym *YM2151) SetLFOFrequency(freq uint8) {
	ym.DebugWrite(RegLFOFreq, freq)
}

// ModulationDepth is the depth value of the PMD/AMD register ($19)
func (ym *YM2151) ModulationDepth() uint8 {
	return ym.field(RegPMDAMD, 6, 0)
}

func (ym *YM2151) SetModulationDepth(depth uint8) {
	ym.setField(RegPMDAMD, 6, 0, depth)
}

// ModulationType selects between amplitude (0) and phase (1) modulation
// depth for writes to the PMD/AMD register ($19)
func (ym *YM2151) ModulationType() uint8 {
	return ym.field(RegPMDAMD, 7, 7)
}

func (ym *YM2151) SetModulationType(mtype uint8) {
	ym.setField(RegPMDAMD, 7, 7, mtype)
}

// Waveform is the LFO waveform select ($1B)
func (ym *YM2151) Waveform() uint8 {
	return ym.field(RegCTWave, 1, 0)
}

func (ym *YM2151) SetWaveform(wf uint8) {
	ym.setField(RegCTWave, 1, 0, wf)
}

// ControlOutput1 is the CT1 output bit ($1B)
func (ym *YM2151) ControlOutput1() uint8 {
	return ym.field(RegCTWave, 6, 6)
}

func (ym *YM2151) SetControlOutput1(enabled bool) {
	var v uint8
	if enabled {
		v = 1
	}
	ym.setField(RegCTWave, 6, 6, v)
}

// ControlOutput2 is the CT2 output bit ($1B)
func (ym *YM2151) ControlOutput2() uint8 {
	return ym.field(RegCTWave, 7, 7)
}

func (ym *YM2151) SetControlOutput2(enabled bool) {
	var v uint8
	if enabled {
		v = 1
	}
	ym.setField(RegCTWave, 7, 7, v)
}

// VoiceConnectionType is the algorithm select of the RL/FB/CONN register
func (ym *YM2151) VoiceConnectionType(voice uint8) uint8 {
	if voice >= NumVoices {
		return 0
	}
	return ym.field(RegRLFBConn+voice, 2, 0)
}

func (ym *YM2151) SetVoiceConnectionType(voice uint8, ctype uint8) {
	if voice >= NumVoices {
		return
	}
	ym.setField(RegRLFBConn+voice, 2, 0, ctype)
}

// VoiceSelfFeedbackLevel is the M1 feedback level of the RL/FB/CONN register
func (ym *YM2151) VoiceSelfFeedbackLevel(voice uint8) uint8 {
	if voice >= NumVoices {
		return 0
	}
	return ym.field(RegRLFBConn+voice, 5, 3)
}

func (ym *YM2151) SetVoiceSelfFeedbackLevel(voice uint8, fl uint8) {
	if voice >= NumVoices {
		return
	}
	ym.setField(RegRLFBConn+voice, 5, 3, fl)
}

// VoiceLeftEnable is the left output enable of the RL/FB/CONN register
func (ym *YM2151) VoiceLeftEnable(voice uint8) uint8 {
	if voice >= NumVoices {
		return 0
	}
	return ym.field(RegRLFBConn+voice, 6, 6)
}

func (ym *YM2151) SetVoiceLeftEnable(voice uint8, enable uint8) {
	if voice >= NumVoices {
		return
	}
	ym.setField(RegRLFBConn+voice, 6, 6, enable)
}

// VoiceRightEnable is the right output enable of the RL/FB/CONN register
func (ym *YM2151) VoiceRightEnable(voice uint8) uint8 {
	if voice >= NumVoices {
		return 0
	}
	return ym.field(RegRLFBConn+voice, 7, 7)
}

func (ym *YM2151) SetVoiceRightEnable(voice uint8, enable uint8) {
	if voice >= NumVoices {
		return
	}
	ym.setField(RegRLFBConn+voice, 7, 7, enable)
}

// VoiceNote is the note part of the key code register
func (ym *YM2151) VoiceNote(voice uint8) uint8 {
	if voice >= NumVoices {
		return 0
	}
	return ym.field(RegKC+voice, 3, 0)
}

func (ym *YM2151) SetVoiceNote(voice uint8, note uint8) {
	if voice >= NumVoices {
		return
	}
	ym.setField(RegKC+voice, 3, 0, note)
}

// VoiceOctave is the octave part of the key code register
func (ym *YM2151) VoiceOctave(voice uint8) uint8 {
	if voice >= NumVoices {
		return 0
	}
	return ym.field(RegKC+voice, 6, 4)
}

func (ym *YM2151) SetVoiceOctave(voice uint8, octave uint8) {
	if voice >= NumVoices {
		return
	}
	ym.setField(RegKC+voice, 6, 4, octave)
}

// VoiceKeyFraction is the key fraction register, 1/64th of a semitone
func (ym *YM2151) VoiceKeyFraction(voice uint8) uint8 {
	if voice >= NumVoices {
		return 0
	}
	return ym.field(RegKF+voice, 7, 2)
}

func (ym *YM2151) SetVoiceKeyFraction(voice uint8, fraction uint8) {
	if voice >= NumVoices {
		return
	}
	ym.setField(RegKF+voice, 7, 2, fraction)
}

// VoiceAMS is the amplitude modulation sensitivity of the PMS/AMS register
func (ym *YM2151) VoiceAMS(voice uint8) uint8 {
	if voice >= NumVoices {
		return 0
	}
	return ym.field(RegPMSAMS+voice, 1, 0)
}

func (ym *YM2151) SetVoiceAMS(voice uint8, ams uint8) {
	if voice >= NumVoices {
		return
	}
	ym.setField(RegPMSAMS+voice, 1, 0, ams)
}

// VoicePMS is the phase modulation sensitivity of the PMS/AMS register
func (ym *YM2151) VoicePMS(voice uint8) uint8 {
	if voice >= NumVoices {
		return 0
	}
	return ym.field(RegPMSAMS+voice, 6, 4)
}

func (ym *YM2151) SetVoicePMS(voice uint8, pms uint8) {
	if voice >= NumVoices {
		return
	}
	ym.setField(RegPMSAMS+voice, 6, 4, pms)
}

// opAddr returns the per-operator register address for the base register
// and the ok flag if the voice and operator numbers are in range
func opAddr(base uint8, voice uint8, op uint8) (uint8, bool) {
	if voice >= NumVoices || op >= NumOperators {
		return 0, false
	}
	return base + op*8 + voice, true
}

// OperatorPhaseMultiply is the MUL part of the DT1/MUL register
func (ym *YM2151) OperatorPhaseMultiply(voice uint8, op uint8) uint8 {
	if addr, ok := opAddr(RegDT1MUL, voice, op); ok {
		return ym.field(addr, 3, 0)
	}
	return 0
}

func (ym *YM2151) SetOperatorPhaseMultiply(voice uint8, op uint8, mul uint8) {
	if addr, ok := opAddr(RegDT1MUL, voice, op); ok {
		ym.setField(addr, 3, 0, mul)
	}
}

// OperatorDetune1 is the DT1 part of the DT1/MUL register
func (ym *YM2151) OperatorDetune1(voice uint8, op uint8) uint8 {
	if addr, ok := opAddr(RegDT1MUL, voice, op); ok {
		return ym.field(addr, 6, 4)
	}
	return 0
}

func (ym *YM2151) SetOperatorDetune1(voice uint8, op uint8, dt1 uint8) {
	if addr, ok := opAddr(RegDT1MUL, voice, op); ok {
		ym.setField(addr, 6, 4, dt1)
	}
}

// OperatorTotalLevel is the attenuation of the operator's output
func (ym *YM2151) OperatorTotalLevel(voice uint8, op uint8) uint8 {
	if addr, ok := opAddr(RegTL, voice, op); ok {
		return ym.field(addr, 6, 0)
	}
	return 0
}

func (ym *YM2151) SetOperatorTotalLevel(voice uint8, op uint8, tl uint8) {
	if addr, ok := opAddr(RegTL, voice, op); ok {
		ym.setField(addr, 6, 0, tl)
	}
}

// OperatorAttackRate is the AR part of the KS/AR register
func (ym *YM2151) OperatorAttackRate(voice uint8, op uint8) uint8 {
	if addr, ok := opAddr(RegKSAR, voice, op); ok {
		return ym.field(addr, 4, 0)
	}
	return 0
}

func (ym *YM2151) SetOperatorAttackRate(voice uint8, op uint8, ar uint8) {
	if addr, ok := opAddr(RegKSAR, voice, op); ok {
		ym.setField(addr, 4, 0, ar)
	}
}

// OperatorKeyScaling is the KS part of the KS/AR register
func (ym *YM2151) OperatorKeyScaling(voice uint8, op uint8) uint8 {
	if addr, ok := opAddr(RegKSAR, voice, op); ok {
		return ym.field(addr, 7, 6)
	}
	return 0
}

func (ym *YM2151) SetOperatorKeyScaling(voice uint8, op uint8, ks uint8) {
	if addr, ok := opAddr(RegKSAR, voice, op); ok {
		ym.setField(addr, 7, 6, ks)
	}
}

// OperatorDecayRate1 is the D1R part of the AMS-EN/D1R register
func (ym *YM2151) OperatorDecayRate1(voice uint8, op uint8) uint8 {
	if addr, ok := opAddr(RegAMSD1R, voice, op); ok {
		return ym.field(addr, 4, 0)
	}
	return 0
}

func (ym *YM2151) SetOperatorDecayRate1(voice uint8, op uint8, d1r uint8) {
	if addr, ok := opAddr(RegAMSD1R, voice, op); ok {
		ym.setField(addr, 4, 0, d1r)
	}
}

// OperatorAMSEnabled is the AMS-EN bit of the AMS-EN/D1R register
func (ym *YM2151) OperatorAMSEnabled(voice uint8, op uint8) uint8 {
	if addr, ok := opAddr(RegAMSD1R, voice, op); ok {
		return ym.field(addr, 7, 7)
	}
	return 0
}

func (ym *YM2151) SetOperatorAMSEnabled(voice uint8, op uint8, enable uint8) {
	if addr, ok := opAddr(RegAMSD1R, voice, op); ok {
		ym.setField(addr, 7, 7, enable)
	}
}

// OperatorDecayRate2 is the D2R part of the DT2/D2R register
func (ym *YM2151) OperatorDecayRate2(voice uint8, op uint8) uint8 {
	if addr, ok := opAddr(RegDT2D2R, voice, op); ok {
		return ym.field(addr, 4, 0)
	}
	return 0
}

func (ym *YM2151) SetOperatorDecayRate2(voice uint8, op uint8, d2r uint8) {
	if addr, ok := opAddr(RegDT2D2R, voice, op); ok {
		ym.setField(addr, 4, 0, d2r)
	}
}

// OperatorDetune2 is the DT2 part of the DT2/D2R register
func (ym *YM2151) OperatorDetune2(voice uint8, op uint8) uint8 {
	if addr, ok := opAddr(RegDT2D2R, voice, op); ok {
		return ym.field(addr, 7, 6)
	}
	return 0
}

func (ym *YM2151) SetOperatorDetune2(voice uint8, op uint8, dt2 uint8) {
	if addr, ok := opAddr(RegDT2D2R, voice, op); ok {
		ym.setField(addr, 7, 6, dt2)
	}
}

// OperatorReleaseRate is the RR part of the D1L/RR register
func (ym *YM2151) OperatorReleaseRate(voice uint8, op uint8) uint8 {
	if addr, ok := opAddr(RegD1LRR, voice, op); ok {
		return ym.field(addr, 3, 0)
	}
	return 0
}

func (ym *YM2151) SetOperatorReleaseRate(voice uint8, op uint8, rr uint8) {
	if addr, ok := opAddr(RegD1LRR, voice, op); ok {
		ym.setField(addr, 3, 0, rr)
	}
}

// OperatorDecay1Level is the D1L part of the D1L/RR register
func (ym *YM2151) OperatorDecay1Level(voice uint8, op uint8) uint8 {
	if addr, ok := opAddr(RegD1LRR, voice, op); ok {
		return ym.field(addr, 7, 4)
	}
	return 0
}

func (ym *YM2151) SetOperatorDecay1Level(voice uint8, op uint8, d1l uint8) {
	if addr, ok := opAddr(RegD1LRR, voice, op); ok {
		ym.setField(addr, 7, 4, d1l)
	}
}
