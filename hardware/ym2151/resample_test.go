package ym2151

import (
	"testing"

	"github.com/jetsetilly/testym/test"
)

func TestLerp(t *testing.T) {
	test.ExpectEquality(t, lerp(0, 100, 0), 0)
	test.ExpectEquality(t, lerp(0, 100, fixedOne/2), 50)
	test.ExpectEquality(t, lerp(10, 10, fixedOne/4), 10)
	test.ExpectEquality(t, lerp(-100, 100, fixedOne/2), 0)
}

func TestConverterLongRunRate(t *testing.T) {
	c := newConverter(62500, 44100)

	// feed one second of native samples in uneven chunks. the output count
	// must match the requested rate to within a sample
	in := make([]int16, 625)
	var out []int16
	var total int

	chunks := []int{625, 1, 624, 313, 312, 625}
	var fed, i int
	for fed < 62500 {
		n := min(chunks[i%len(chunks)], 62500-fed)
		out = c.process(in[:n], out[:0])
		total += len(out)
		fed += n
		i++
	}

	test.ExpectSuccess(t, total >= 44098)
	test.ExpectSuccess(t, total <= 44101)
}

func TestConverterPriming(t *testing.T) {
	c := newConverter(62500, 62500)

	// the first sample primes the converter and emits nothing
	out := c.process([]int16{5}, nil)
	test.ExpectEquality(t, len(out), 0)

	// at a 1:1 ratio each subsequent sample emits exactly one value, which
	// is the previous sample
	out = c.process([]int16{7}, out[:0])
	test.ExpectEquality(t, len(out), 1)
	test.ExpectEquality(t, out[0], 5)

	out = c.process([]int16{9}, out[:0])
	test.ExpectEquality(t, len(out), 1)
	test.ExpectEquality(t, out[0], 7)
}

func TestConverterUpsample(t *testing.T) {
	c := newConverter(62500, 125000)

	// doubling the rate emits two values per input interval
	_ = c.process([]int16{0}, nil)
	out := c.process([]int16{100}, nil)
	test.ExpectEquality(t, len(out), 2)
	test.ExpectEquality(t, out[0], 0)
	test.ExpectEquality(t, out[1], 50)
}
