package random

import (
	"runtime"
	"sync/atomic"
	"time"
)

const golden = 0x9e3779b97f4a7c15

// lane is one independent SplitMix64 stream. Lanes are padded to a cache line
// so producers on different cores do not contend on the same state word.
type lane struct {
	state atomic.Uint64
	_     [56]byte
}

var (
	lanes []lane
	mask  uint32
	next  atomic.Uint32 // lane selector
)

func init() { Seed(0) }

// Seed rebuilds n lanes (rounded up to a power of two) seeded from the clock.
// n <= 0 means GOMAXPROCS*4. Not safe to call concurrently with generators.
func Seed(n int) {
	if n <= 0 {
		n = max(runtime.GOMAXPROCS(0)*4, 1)
	}
	size := 1
	for size < n {
		size <<= 1
	}

	lanes = make([]lane, size)
	mask = uint32(size - 1)

	s := mix(uint64(time.Now().UnixNano()) + golden)
	for i := range lanes {
		s += golden
		lanes[i].state.Store(mix(s) | 1)
	}
	next.Store(0)
}

// Uint64 returns 64 uniformly distributed bits.
func Uint64() uint64 {
	l := &lanes[next.Add(1)&mask]
	return mix(l.state.Add(golden))
}

// Intn returns a uniform int in [0,n). It returns 0 when n <= 0.
func Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(Uint64() % uint64(n))
}

// Fill overwrites b with random bytes.
func Fill(b []byte) {
	for len(b) >= 8 {
		x := Uint64()
		b[0], b[1], b[2], b[3] = byte(x), byte(x>>8), byte(x>>16), byte(x>>24)
		b[4], b[5], b[6], b[7] = byte(x>>32), byte(x>>40), byte(x>>48), byte(x>>56)
		b = b[8:]
	}
	if len(b) > 0 {
		x := Uint64()
		for i := range b {
			b[i] = byte(x >> (8 * i))
		}
	}
}

// mix is the SplitMix64 finalizer.
func mix(z uint64) uint64 {
	z ^= z >> 30
	z *= 0xbf58476d1ce4e5b9
	z ^= z >> 27
	z *= 0x94d049bb133111eb
	z ^= z >> 31
	return z
}
