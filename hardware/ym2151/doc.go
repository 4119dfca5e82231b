// Package ym2151 implements the host-timing side of the YM2151 sound chip.
// It is responsible for everything about the chip except the synthesis
// mathematics: the busy window, the two interval timers, the queue of writes
// made while the chip is busy, the backbuffer of samples generated at the
// chip's native rate, and the conversion of that backbuffer to whatever
// sample rate the host audio device asks for.
//
// The synthesis itself is delegated to an implementation of the ToneEngine
// interface. The engine communicates its timing requirements back to this
// package through the Sync interface. The separation mirrors the way the ymfm
// library divides the chip model from its host:
//
// https://github.com/aaronsgiles/ymfm
//
// Information about the YM2151 register map is taken from the Yamaha
// YM2151 application manual. References in comments to register addresses
// use the $ prefix notation of that document.
//
// The package also maintains a mirror of the last value written to every
// register. The mirror is what the debugger reads and what the field
// accessors in fields.go decompose. It is kept independently of the tone
// engine's own register storage so that debugging tools do not need to
// reach inside the engine.
//
// All of the package is single-threaded and non-blocking. The two call
// sites, the console loop (via Prerender) and the audio device (via Render),
// must be serialised by the caller. The hardware package does this with a
// mutex around the audio buffer.
package ym2151
