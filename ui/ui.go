package ui

import (
	"io"
)

// Audio describes an audio stream and the sample rate it should be played at.
// the stream is stereo 16bit little-endian
type Audio struct {
	Reader io.Reader
	Rate   int
}

type UI struct {
	RegisterAudio chan Audio
}

func NewUI() *UI {
	return &UI{
		RegisterAudio: make(chan Audio, 1),
	}
}
