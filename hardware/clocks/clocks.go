package clocks

const Mhz = 1000000

// the main system clock and the clock supplied to the YM2151. the ratio
// between the two is fixed at 2:1
const (
	System = 8 * Mhz
	YM2151 = 4 * Mhz
)

const (
	// the YM2151 generates one sample for every 64 clocks it receives. busy
	// and timer durations are measured against the same clock
	TicksPerSample = 64

	// the rate at which the YM2151 generates samples. 62500Hz with the
	// clocks defined above
	NativeRate = YM2151 / TicksPerSample

	// the number of system clocks that elapse for every native sample
	SystemClocksPerSample = System / NativeRate
)
