package workloads

import (
	crand "crypto/rand"
	"math/rand/v2"
	"runtime"
	"slices"
)

// Null does nothing. Its score is the overhead of the harness itself; any
// other workload scoring close to it deserves suspicion.
func Null() {}

// point mirrors a small particle record: five 32-bit floats.
type point struct {
	x, y, z    float32
	confidence float32
	radius     float32
}

const heapThrashPoints = 1_000_000

// HeapThrash allocates about 20 MB of points and drops it immediately, which
// mostly measures the allocator and the garbage collector.
func HeapThrash() {
	points := make([]point, heapThrashPoints)
	runtime.KeepAlive(points)
}

// CryptoRandom draws one 256-bit key from the operating system's
// cryptographically secure generator.
func CryptoRandom() {
	var key [256 / 8]byte
	if _, err := crand.Read(key[:]); err != nil {
		panic(err)
	}
	runtime.KeepAlive(key)
}

const cacheMissCount = 10 << 20

// ForceCacheMiss generates and sorts 10Mi random 32-bit numbers per call.
// 40 MB per lane does not fit in any current cache, so most of the time is
// spent waiting on memory.
func ForceCacheMiss() {
	r := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	numbers := make([]uint32, cacheMissCount)
	for i := range numbers {
		numbers[i] = r.Uint32()
	}
	slices.Sort(numbers)
	runtime.KeepAlive(numbers)
}
