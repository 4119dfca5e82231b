package ym2151

// pendingWrite is a register write submitted while the chip was busy. it is
// applied exactly once, in submission order, by the production step in
// backbuffer.go
type pendingWrite struct {
	addr uint8
	data uint8
}

// QueuedWrites returns the number of writes waiting for the busy window to
// pass
func (ym *YM2151) QueuedWrites() int {
	return len(ym.queue)
}

// applyPending pops the front of the write queue and applies it to the
// engine. returns false if the queue is empty
func (ym *YM2151) applyPending() bool {
	if len(ym.queue) == 0 {
		return false
	}

	w := ym.queue[0]
	ym.queue = ym.queue[1:]

	ym.engine.WriteAddress(w.addr)
	ym.engine.WriteData(w.data, false)

	return true
}
