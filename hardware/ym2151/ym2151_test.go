package ym2151_test

import (
	"testing"

	"github.com/jetsetilly/testym/hardware/clocks"
	"github.com/jetsetilly/testym/hardware/ym2151"
	"github.com/jetsetilly/testym/test"
)

// mockEngine implements the ym2151.ToneEngine interface with a deterministic
// sample ramp. the busy duration started by a bus write is configurable
type mockEngine struct {
	sync ym2151.Sync

	registers [256]uint8
	address   uint8

	// writes applied to the engine, in order of application
	writes [][2]uint8

	// the busy window started by every write through the bus. zero means
	// writes are free
	busyTicks int

	// number of TimerExpired() notifications per timer
	expired [2]int

	// increments on every generated frame
	counter int16
}

func createMock(busyTicks int) (*ym2151.YM2151, *mockEngine) {
	var mock *mockEngine
	ym := ym2151.Create(func(sync ym2151.Sync) ym2151.ToneEngine {
		mock = &mockEngine{sync: sync, busyTicks: busyTicks}
		return mock
	})

	// forget the writes made by the power-on reset
	mock.writes = mock.writes[:0]

	return ym, mock
}

func (m *mockEngine) WriteAddress(addr uint8) {
	m.address = addr
}

func (m *mockEngine) WriteData(data uint8, debug bool) {
	m.registers[m.address] = data
	m.writes = append(m.writes, [2]uint8{m.address, data})
	if !debug && m.busyTicks > 0 {
		m.sync.SetBusyEnd(m.busyTicks)
	}
}

func (m *mockEngine) Generate(frames []ym2151.Frame) {
	for i := range frames {
		frames[i] = ym2151.Frame{m.counter, -m.counter}
		m.counter++
	}
}

func (m *mockEngine) RegisterData(addr uint8) uint8 {
	return m.registers[addr]
}

func (m *mockEngine) ReadStatus() uint8 {
	return 0
}

func (m *mockEngine) TimerExpired(tnum int) {
	m.expired[tnum]++
}

func (m *mockEngine) Reset() {
	clear(m.registers[:])
	m.counter = 0
}

// write through the two-phase bus interface
func busWrite(ym *ym2151.YM2151, addr uint8, data uint8) {
	ym.Write(false, addr)
	ym.Write(true, data)
}

func TestWritePortLatch(t *testing.T) {
	ym, mock := createMock(0)

	busWrite(ym, 0x28, 0x4a)
	test.ExpectEquality(t, ym.LastAddress(), 0x28)
	test.ExpectEquality(t, ym.LastData(), 0x4a)

	// the mirror and the engine agree when the chip is not busy
	test.ExpectEquality(t, ym.Registers()[0x28], 0x4a)
	test.ExpectEquality(t, ym.DebugRead(0x28), 0x4a)

	// address port writes do not touch the engine
	ym.Write(false, 0x30)
	test.ExpectEquality(t, ym.LastAddress(), 0x30)
	test.ExpectEquality(t, len(mock.writes), 1)

	// debug writes update both mirror and engine but not the data latch
	ym.DebugWrite(0x19, 0x7f)
	test.ExpectEquality(t, ym.Registers()[0x19], 0x7f)
	test.ExpectEquality(t, ym.DebugRead(0x19), 0x7f)
	test.ExpectEquality(t, ym.LastData(), 0x4a)
}

func TestBusyQueueFIFO(t *testing.T) {
	// ten samples worth of busy per write
	ym, mock := createMock(640)

	// the first write is applied immediately and starts the busy window
	busWrite(ym, 0x20, 0xc7)
	test.ExpectSuccess(t, ym.Busy())
	test.ExpectEquality(t, ym.QueuedWrites(), 0)

	// writes during the busy window are queued, not applied
	busWrite(ym, 0x08, 0x01)
	busWrite(ym, 0x18, 0x02)
	busWrite(ym, 0x1b, 0x03)
	test.ExpectEquality(t, ym.QueuedWrites(), 3)
	test.ExpectEquality(t, ym.DebugRead(0x08), 0x00)

	// the mirror always reflects the most recent write
	test.ExpectEquality(t, ym.Registers()[0x08], 0x01)
	test.ExpectEquality(t, ym.Registers()[0x18], 0x02)
	test.ExpectEquality(t, ym.Registers()[0x1b], 0x03)

	// produce ten samples. the queue drains one write per sample, in
	// submission order
	ym.Prerender(10 * clocks.SystemClocksPerSample)
	test.ExpectEquality(t, ym.BackbufferUsed(), 10)
	test.ExpectEquality(t, ym.QueuedWrites(), 0)

	test.ExpectEquality(t, len(mock.writes), 4)
	test.ExpectEquality(t, mock.writes[1], [2]uint8{0x08, 0x01})
	test.ExpectEquality(t, mock.writes[2], [2]uint8{0x18, 0x02})
	test.ExpectEquality(t, mock.writes[3], [2]uint8{0x1b, 0x03})

	// each applied write started a fresh busy window. produce enough samples
	// for the last of them to decay
	ym.Prerender(10 * clocks.SystemClocksPerSample)
	test.ExpectFailure(t, ym.Busy())

	// subsequent writes are applied immediately again
	busWrite(ym, 0x0f, 0xaa)
	test.ExpectEquality(t, ym.DebugRead(0x0f), 0xaa)
}

func TestStrictModeDropsBusyWrites(t *testing.T) {
	ym, _ := createMock(640)
	ym.SetStrict(true)

	busWrite(ym, 0x20, 0xc7)
	test.ExpectSuccess(t, ym.Busy())

	busWrite(ym, 0x08, 0x01)
	test.ExpectEquality(t, ym.QueuedWrites(), 0)
	test.ExpectEquality(t, ym.DebugRead(0x08), 0x00)

	// the mirror reflects the write even though it was dropped
	test.ExpectEquality(t, ym.Registers()[0x08], 0x01)
}

func TestResetIdempotence(t *testing.T) {
	ym, _ := createMock(0)

	busWrite(ym, 0x28, 0x4a)
	busWrite(ym, 0x60, 0x7f)

	ym.Reset()
	once := ym.Registers()

	ym.Reset()
	twice := ym.Registers()

	test.ExpectEquality(t, once, twice)

	// power-on defaults are present after reset
	for i := range uint8(ym2151.NumVoices) {
		test.ExpectEquality(t, once[ym2151.RegRLFBConn+i], 0xc0)
		test.ExpectEquality(t, ym.DebugRead(ym2151.RegRLFBConn+i), 0xc0)
	}
	test.ExpectEquality(t, once[0x28], 0x00)
}

func TestTimerNotification(t *testing.T) {
	ym, mock := createMock(0)

	// 100 chip clocks is less than two samples worth
	ym.SetTimer(0, 100)
	test.ExpectEquality(t, ym.TimerCounter(0), 100)

	// one sample elapses 64 ticks. not enough
	ym.Prerender(clocks.SystemClocksPerSample)
	test.ExpectEquality(t, mock.expired[0], 0)
	test.ExpectEquality(t, ym.TimerCounter(0), 36)

	// the second sample crosses zero. expiration fires exactly once
	ym.Prerender(clocks.SystemClocksPerSample)
	test.ExpectEquality(t, mock.expired[0], 1)
	test.ExpectEquality(t, ym.TimerCounter(0), 0)

	// an expired timer does not fire again until rearmed
	ym.Prerender(clocks.SystemClocksPerSample)
	test.ExpectEquality(t, mock.expired[0], 1)

	// disarming
	ym.SetTimer(0, -1)
	test.ExpectEquality(t, ym.TimerCounter(0), -1)

	// out of range timer numbers are ignored
	ym.SetTimer(5, 100)
	test.ExpectEquality(t, ym.TimerCounter(5), -1)

	// the second timer is independent
	test.ExpectEquality(t, mock.expired[1], 0)
}

func TestProductionBatching(t *testing.T) {
	split, _ := createMock(0)
	whole, _ := createMock(0)

	// the same number of samples produced in different sized steps
	for range 3 {
		split.Prerender(100 * clocks.SystemClocksPerSample)
	}
	whole.Prerender(300 * clocks.SystemClocksPerSample)

	test.ExpectEquality(t, split.BackbufferUsed(), 300)
	test.ExpectEquality(t, whole.BackbufferUsed(), 300)

	// draining at the native rate must give the same samples in the same
	// order
	const n = 200
	a := make([]int16, n*2)
	b := make([]int16, n*2)
	split.Render(a, n, clocks.NativeRate)
	whole.Render(b, n, clocks.NativeRate)

	for i := range a {
		if !test.ExpectEquality(t, a[i], b[i]) {
			break
		}
	}
}

func TestFractionalClockCarry(t *testing.T) {
	ym, _ := createMock(0)

	// a single clock is far short of a sample
	ym.Prerender(1)
	test.ExpectEquality(t, ym.BackbufferUsed(), 0)

	// fractions accumulate without drift
	for range clocks.SystemClocksPerSample - 1 {
		ym.Prerender(1)
	}
	test.ExpectEquality(t, ym.BackbufferUsed(), 1)
}

func TestBackbufferCapacity(t *testing.T) {
	ym, _ := createMock(0)

	// one second of system clocks fills the backbuffer exactly
	ym.Prerender(clocks.NativeRate * clocks.SystemClocksPerSample)
	test.ExpectEquality(t, ym.BackbufferUsed(), clocks.NativeRate)

	// production against a full backbuffer is refused. the buffer neither
	// grows nor wraps
	ym.Prerender(100 * clocks.SystemClocksPerSample)
	test.ExpectEquality(t, ym.BackbufferUsed(), clocks.NativeRate)

	// consumption makes room for production again
	const consume = 1000
	buf := make([]int16, consume*2)
	ym.Render(buf, consume, clocks.NativeRate)

	used := ym.BackbufferUsed()
	test.ExpectSuccess(t, used < clocks.NativeRate)

	ym.Prerender(100 * clocks.SystemClocksPerSample)
	test.ExpectEquality(t, ym.BackbufferUsed(), used+100)
}

func TestRenderExactDelivery(t *testing.T) {
	ym, mock := createMock(0)

	// native rate 62500Hz resampled to 44100Hz, over two calls
	const n = 1000
	const rate = 44100

	buf := make([]int16, n*2)
	var out []int16

	ym.Render(buf, n, rate)
	out = append(out, buf...)
	ym.Render(buf, n, rate)
	out = append(out, buf...)

	// the mock generates an incrementing ramp on the left channel so the
	// resampled output must be non-decreasing across both calls
	prev := out[0]
	for i := 2; i < len(out); i += 2 {
		if out[i] < prev {
			t.Fatalf("left channel not monotonic at sample %d: %d < %d", i/2, out[i], prev)
		}
		prev = out[i]
	}

	// the right channel is the negated ramp
	for i := 1; i < len(out); i += 2 {
		if out[i] > 0 {
			t.Fatalf("right channel positive at sample %d: %d", i/2, out[i])
		}
	}

	// native samples consumed must be within the resampling ratio of the
	// samples delivered, plus the safety margin
	expected := 2 * n * clocks.NativeRate / rate
	consumed := int(mock.counter)
	test.ExpectSuccess(t, consumed >= expected-2)
	test.ExpectSuccess(t, consumed <= expected+16)

	// whatever was generated but not delivered is waiting in the backbuffer
	// or the leftover queues, not lost
	test.ExpectSuccess(t, ym.BackbufferUsed() <= 16)
}

func TestRenderRateChange(t *testing.T) {
	ym, _ := createMock(0)

	const n = 500
	buf := make([]int16, n*2)

	ym.Render(buf, n, 44100)
	ym.Render(buf, n, 48000)

	// after a rate change the pipeline still delivers the full request with
	// the monotonic ramp property intact
	prev := buf[0]
	for i := 2; i < len(buf); i += 2 {
		if buf[i] < prev {
			t.Fatalf("left channel not monotonic at sample %d after rate change", i/2)
		}
		prev = buf[i]
	}
}

func TestIRQGate(t *testing.T) {
	ym, mock := createMock(0)

	// the engine asserts the line but the gate is closed by default
	mock.sync.UpdateIRQ(true)
	test.ExpectFailure(t, ym.IRQ())

	ym.SetIRQEnabled(true)
	test.ExpectSuccess(t, ym.IRQ())
	test.ExpectSuccess(t, ym.IRQEnabled())

	mock.sync.UpdateIRQ(false)
	test.ExpectFailure(t, ym.IRQ())
}
