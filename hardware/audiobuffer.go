package hardware

import (
	"sync"

	"github.com/jetsetilly/testym/hardware/ym2151"
)

// audioBuffer is an io.Reader implementation that forwards YM2151 audio to
// something that can play it back (or store it, etc.)
type audioBuffer struct {
	ym   *ym2151.YM2151
	rate int
	crit sync.Mutex

	// called on every read. lets the console pacing know the audio device
	// has started draining
	nudge func()

	// scratch space for the resampled frames before conversion to bytes
	samples []int16
}

// bytes per stereo frame in the sample format given to the audio device
// (2 channel, 16bit little-endian)
const bytesPerFrame = 4

func (b *audioBuffer) Read(buf []uint8) (int, error) {
	if b.nudge != nil {
		b.nudge()
	}

	b.crit.Lock()
	defer b.crit.Unlock()

	frames := len(buf) / bytesPerFrame
	if frames == 0 {
		return 0, nil
	}

	if len(b.samples) < frames*2 {
		b.samples = make([]int16, frames*2)
	}
	b.ym.Render(b.samples, frames, b.rate)

	for i := range frames * 2 {
		s := b.samples[i]
		buf[i*2] = uint8(s)
		buf[i*2+1] = uint8(s >> 8)
	}

	// the number of bytes returned needs to be a multiple of four because of
	// the sample format. returning zero bytes is fine for the oto player, it
	// will simply try again
	return frames * bytesPerFrame, nil
}
