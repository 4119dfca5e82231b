// Package audio connects the console's audio stream to the host audio device.
package audio

import (
	"io"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/jetsetilly/testym/ui"
)

type player struct {
	p *oto.Player
	r io.Reader
}

func (s *player) Read(buf []uint8) (int, error) {
	return s.r.Read(buf)
}

func create(reg ui.Audio) (*player, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   reg.Rate,
		ChannelCount: 2,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return nil, err
	}

	<-ready

	s := &player{
		r: reg.Reader,
	}
	s.p = ctx.NewPlayer(s)

	// a small buffer keeps latency down when registers are being prodded
	// interactively
	s.p.SetBufferSize(reg.Rate / 10 * 4)

	s.p.Play()

	return s, nil
}

// Launch starts the audio device and plays the stream registered with the UI
// until the endAudio channel is signalled
func Launch(endAudio chan bool, u *ui.UI) error {
	// the registration won't arrive at all if the debugger fails to start
	var reg ui.Audio
	select {
	case reg = <-u.RegisterAudio:
	case <-endAudio:
		return nil
	}

	s, err := create(reg)
	if err != nil {
		return err
	}

	<-endAudio

	s.p.Pause()

	// give the device time to drain before returning
	time.Sleep(50 * time.Millisecond)

	return nil
}
