package debugger

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jetsetilly/testym/hardware/ym2151"
)

// how many position arguments a field requires before the value argument
type fieldKind int

const (
	fieldGlobal fieldKind = iota
	fieldVoice
	fieldOperator
)

type fieldSpec struct {
	kind fieldKind
	get  func(ym *ym2151.YM2151, voice uint8, op uint8) uint8
	set  func(ym *ym2151.YM2151, voice uint8, op uint8, val uint8)
}

// fields addressable by the SET and GET commands. the names follow the
// register descriptions in the YM2151 application manual
var fields = map[string]fieldSpec{
	"lfo": {kind: fieldGlobal,
		get: func(ym *ym2151.YM2151, _, _ uint8) uint8 { return ym.LFOFrequency() },
		set: func(ym *ym2151.YM2151, _, _ uint8, val uint8) { ym.SetLFOFrequency(val) },
	},
	"depth": {kind: fieldGlobal,
		get: func(ym *ym2151.YM2151, _, _ uint8) uint8 { return ym.ModulationDepth() },
		set: func(ym *ym2151.YM2151, _, _ uint8, val uint8) { ym.SetModulationDepth(val) },
	},
	"mtype": {kind: fieldGlobal,
		get: func(ym *ym2151.YM2151, _, _ uint8) uint8 { return ym.ModulationType() },
		set: func(ym *ym2151.YM2151, _, _ uint8, val uint8) { ym.SetModulationType(val) },
	},
	"wave": {kind: fieldGlobal,
		get: func(ym *ym2151.YM2151, _, _ uint8) uint8 { return ym.Waveform() },
		set: func(ym *ym2151.YM2151, _, _ uint8, val uint8) { ym.SetWaveform(val) },
	},
	"ct1": {kind: fieldGlobal,
		get: func(ym *ym2151.YM2151, _, _ uint8) uint8 { return ym.ControlOutput1() },
		set: func(ym *ym2151.YM2151, _, _ uint8, val uint8) { ym.SetControlOutput1(val != 0) },
	},
	"ct2": {kind: fieldGlobal,
		get: func(ym *ym2151.YM2151, _, _ uint8) uint8 { return ym.ControlOutput2() },
		set: func(ym *ym2151.YM2151, _, _ uint8, val uint8) { ym.SetControlOutput2(val != 0) },
	},

	"conn": {kind: fieldVoice,
		get: func(ym *ym2151.YM2151, voice, _ uint8) uint8 { return ym.VoiceConnectionType(voice) },
		set: func(ym *ym2151.YM2151, voice, _ uint8, val uint8) { ym.SetVoiceConnectionType(voice, val) },
	},
	"fb": {kind: fieldVoice,
		get: func(ym *ym2151.YM2151, voice, _ uint8) uint8 { return ym.VoiceSelfFeedbackLevel(voice) },
		set: func(ym *ym2151.YM2151, voice, _ uint8, val uint8) { ym.SetVoiceSelfFeedbackLevel(voice, val) },
	},
	"left": {kind: fieldVoice,
		get: func(ym *ym2151.YM2151, voice, _ uint8) uint8 { return ym.VoiceLeftEnable(voice) },
		set: func(ym *ym2151.YM2151, voice, _ uint8, val uint8) { ym.SetVoiceLeftEnable(voice, val) },
	},
	"right": {kind: fieldVoice,
		get: func(ym *ym2151.YM2151, voice, _ uint8) uint8 { return ym.VoiceRightEnable(voice) },
		set: func(ym *ym2151.YM2151, voice, _ uint8, val uint8) { ym.SetVoiceRightEnable(voice, val) },
	},
	"note": {kind: fieldVoice,
		get: func(ym *ym2151.YM2151, voice, _ uint8) uint8 { return ym.VoiceNote(voice) },
		set: func(ym *ym2151.YM2151, voice, _ uint8, val uint8) { ym.SetVoiceNote(voice, val) },
	},
	"oct": {kind: fieldVoice,
		get: func(ym *ym2151.YM2151, voice, _ uint8) uint8 { return ym.VoiceOctave(voice) },
		set: func(ym *ym2151.YM2151, voice, _ uint8, val uint8) { ym.SetVoiceOctave(voice, val) },
	},
	"kf": {kind: fieldVoice,
		get: func(ym *ym2151.YM2151, voice, _ uint8) uint8 { return ym.VoiceKeyFraction(voice) },
		set: func(ym *ym2151.YM2151, voice, _ uint8, val uint8) { ym.SetVoiceKeyFraction(voice, val) },
	},
	"ams": {kind: fieldVoice,
		get: func(ym *ym2151.YM2151, voice, _ uint8) uint8 { return ym.VoiceAMS(voice) },
		set: func(ym *ym2151.YM2151, voice, _ uint8, val uint8) { ym.SetVoiceAMS(voice, val) },
	},
	"pms": {kind: fieldVoice,
		get: func(ym *ym2151.YM2151, voice, _ uint8) uint8 { return ym.VoicePMS(voice) },
		set: func(ym *ym2151.YM2151, voice, _ uint8, val uint8) { ym.SetVoicePMS(voice, val) },
	},

	"mul": {kind: fieldOperator,
		get: func(ym *ym2151.YM2151, voice, op uint8) uint8 { return ym.OperatorPhaseMultiply(voice, op) },
		set: func(ym *ym2151.YM2151, voice, op uint8, val uint8) { ym.SetOperatorPhaseMultiply(voice, op, val) },
	},
	"dt1": {kind: fieldOperator,
		get: func(ym *ym2151.YM2151, voice, op uint8) uint8 { return ym.OperatorDetune1(voice, op) },
		set: func(ym *ym2151.YM2151, voice, op uint8, val uint8) { ym.SetOperatorDetune1(voice, op, val) },
	},
	"tl": {kind: fieldOperator,
		get: func(ym *ym2151.YM2151, voice, op uint8) uint8 { return ym.OperatorTotalLevel(voice, op) },
		set: func(ym *ym2151.YM2151, voice, op uint8, val uint8) { ym.SetOperatorTotalLevel(voice, op, val) },
	},
	"ar": {kind: fieldOperator,
		get: func(ym *ym2151.YM2151, voice, op uint8) uint8 { return ym.OperatorAttackRate(voice, op) },
		set: func(ym *ym2151.YM2151, voice, op uint8, val uint8) { ym.SetOperatorAttackRate(voice, op, val) },
	},
	"ks": {kind: fieldOperator,
		get: func(ym *ym2151.YM2151, voice, op uint8) uint8 { return ym.OperatorKeyScaling(voice, op) },
		set: func(ym *ym2151.YM2151, voice, op uint8, val uint8) { ym.SetOperatorKeyScaling(voice, op, val) },
	},
	"d1r": {kind: fieldOperator,
		get: func(ym *ym2151.YM2151, voice, op uint8) uint8 { return ym.OperatorDecayRate1(voice, op) },
		set: func(ym *ym2151.YM2151, voice, op uint8, val uint8) { ym.SetOperatorDecayRate1(voice, op, val) },
	},
	"amsen": {kind: fieldOperator,
		get: func(ym *ym2151.YM2151, voice, op uint8) uint8 { return ym.OperatorAMSEnabled(voice, op) },
		set: func(ym *ym2151.YM2151, voice, op uint8, val uint8) { ym.SetOperatorAMSEnabled(voice, op, val) },
	},
	"d2r": {kind: fieldOperator,
		get: func(ym *ym2151.YM2151, voice, op uint8) uint8 { return ym.OperatorDecayRate2(voice, op) },
		set: func(ym *ym2151.YM2151, voice, op uint8, val uint8) { ym.SetOperatorDecayRate2(voice, op, val) },
	},
	"dt2": {kind: fieldOperator,
		get: func(ym *ym2151.YM2151, voice, op uint8) uint8 { return ym.OperatorDetune2(voice, op) },
		set: func(ym *ym2151.YM2151, voice, op uint8, val uint8) { ym.SetOperatorDetune2(voice, op, val) },
	},
	"rr": {kind: fieldOperator,
		get: func(ym *ym2151.YM2151, voice, op uint8) uint8 { return ym.OperatorReleaseRate(voice, op) },
		set: func(ym *ym2151.YM2151, voice, op uint8, val uint8) { ym.SetOperatorReleaseRate(voice, op, val) },
	},
	"d1l": {kind: fieldOperator,
		get: func(ym *ym2151.YM2151, voice, op uint8) uint8 { return ym.OperatorDecay1Level(voice, op) },
		set: func(ym *ym2151.YM2151, voice, op uint8, val uint8) { ym.SetOperatorDecay1Level(voice, op, val) },
	},
}

func fieldNames() string {
	n := make([]string, 0, len(fields))
	for k := range fields {
		n = append(n, k)
	}
	sort.Strings(n)
	return strings.Join(n, " ")
}

// parseFieldArgs resolves the name and position arguments of a SET or GET
// command. the number of position arguments depends on the field kind:
// global fields take none, voice fields take a voice number and operator
// fields take a voice and an operator number. the remaining arguments are
// returned
func parseFieldArgs(cmd []string) (fieldSpec, uint8, uint8, []string, error) {
	var f fieldSpec
	var voice, op uint8

	f, ok := fields[strings.ToLower(cmd[0])]
	if !ok {
		return f, 0, 0, nil, fmt.Errorf("unrecognised field: %s", cmd[0])
	}

	rem := cmd[1:]

	if f.kind == fieldVoice || f.kind == fieldOperator {
		if len(rem) < 1 {
			return f, 0, 0, nil, fmt.Errorf("%s requires a voice number", cmd[0])
		}
		v, err := parseValue(rem[0])
		if err != nil || v >= ym2151.NumVoices {
			return f, 0, 0, nil, fmt.Errorf("bad voice number: %s", rem[0])
		}
		voice = v
		rem = rem[1:]
	}

	if f.kind == fieldOperator {
		if len(rem) < 1 {
			return f, 0, 0, nil, fmt.Errorf("%s requires an operator number", cmd[0])
		}
		o, err := parseValue(rem[0])
		if err != nil || o >= ym2151.NumOperators {
			return f, 0, 0, nil, fmt.Errorf("bad operator number: %s", rem[0])
		}
		op = o
		rem = rem[1:]
	}

	return f, voice, op, rem, nil
}
