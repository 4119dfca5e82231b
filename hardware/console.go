package hardware

import (
	"github.com/jetsetilly/testym/hardware/clocks"
	"github.com/jetsetilly/testym/hardware/ym2151"
	"github.com/jetsetilly/testym/hardware/ym2151/opm"
	"github.com/jetsetilly/testym/ui"
)

// the console is stepped in frame sized units. sixty frames per second is not
// tied to any display, it is just a convenient cadence for keeping the
// backbuffer ahead of the audio device
const framesPerSecond = 60

// ClocksPerStep is the number of system clocks in one call to Step()
const ClocksPerStep = clocks.System / framesPerSecond

// HostSampleRate is the default sample rate requested from the audio device
const HostSampleRate = 48000

type Console struct {
	YM *ym2151.YM2151

	buf     *audioBuffer
	limiter *limiter
}

// Create is the preferred method of initialisation for the Console type. the
// audio output of the console is registered with the UI so that an audio
// device can consume it
func Create(u *ui.UI, hostRate int) *Console {
	con := &Console{
		limiter: newLimiter(framesPerSecond),
	}
	con.YM = ym2151.Create(func(sync ym2151.Sync) ym2151.ToneEngine {
		return opm.Create(sync)
	})

	con.buf = &audioBuffer{
		ym:    con.YM,
		rate:  hostRate,
		nudge: con.limiter.Nudge,
	}

	select {
	case u.RegisterAudio <- ui.Audio{Reader: con.buf, Rate: hostRate}:
	default:
	}

	return con
}

// WithChip calls f with the console's YM2151, serialised against the audio
// device. all chip access from outside the console must go through this
// function
func (con *Console) WithChip(f func(ym *ym2151.YM2151)) {
	con.buf.crit.Lock()
	defer con.buf.crit.Unlock()
	f(con.YM)
}

// Reset returns the console to its power-on state
func (con *Console) Reset() {
	con.WithChip(func(ym *ym2151.YM2151) {
		ym.Reset()
		ym.ClearBackbuffer()
	})
}

// Step advances the emulation by one frame of system clocks
func (con *Console) Step() error {
	con.WithChip(func(ym *ym2151.YM2151) {
		ym.Prerender(ClocksPerStep)
	})
	return nil
}

// Run steps the console continuously, at approximately the correct speed,
// until the stop channel is signalled or the hook function returns an error.
// the hook is called after every step
func (con *Console) Run(stop chan bool, hook func() error) error {
	for {
		select {
		case <-stop:
			return nil
		default:
		}

		err := con.Step()
		if err != nil {
			return err
		}

		con.limiter.Wait()

		err = hook()
		if err != nil {
			return err
		}
	}
}
