package main

import (
	"fmt"
	"os"

	"github.com/jetsetilly/testym/audio"
	"github.com/jetsetilly/testym/debugger"
	"github.com/jetsetilly/testym/ui"
)

func main() {
	var endAudio chan bool
	var endDebugger chan bool
	var resultAudio chan error
	var resultDebugger chan error

	// buffered channels. this means we don't have to worry about the audio
	// closing before the debugger and vice versa
	endAudio = make(chan bool, 1)
	endDebugger = make(chan bool, 1)

	// similarly, the result channels are buffered because we don't know the
	// order in which the audio and debugger will end
	resultAudio = make(chan error, 1)
	resultDebugger = make(chan error, 1)

	u := ui.NewUI()

	go func() {
		resultAudio <- audio.Launch(endAudio, u)
		endDebugger <- true
	}()

	go func() {
		resultDebugger <- debugger.Launch(endDebugger, u, os.Args[1:])
		endAudio <- true
	}()

	if err := <-resultAudio; err != nil {
		fmt.Printf("*** %s\n", err)
	}
	if err := <-resultDebugger; err != nil {
		fmt.Printf("*** %s\n", err)
	}
}
