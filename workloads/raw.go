package workloads

import (
	"runtime"
	"sync/atomic"
)

// RawBatch is the number of integer operations between two polls of the
// running flag in the counted workloads.
const RawBatch = 16

// AddThroughput performs dependent 64-bit additions until running is cleared
// and returns how many it performed. Each operation depends on the previous
// one, so the count approximates one add per cycle.
func AddThroughput(running *atomic.Bool) uint64 {
	var count uint64
	a, b := uint64(1), uint64(3)
	for running.Load() {
		a += b
		b += a
		a += b
		b += a
		a += b
		b += a
		a += b
		b += a
		a += b
		b += a
		a += b
		b += a
		a += b
		b += a
		a += b
		b += a
		count += RawBatch
	}
	runtime.KeepAlive(a)
	runtime.KeepAlive(b)
	return count
}

// SubThroughput is AddThroughput with subtraction.
func SubThroughput(running *atomic.Bool) uint64 {
	var count uint64
	a, b := uint64(0x9e3779b97f4a7c15), uint64(7)
	for running.Load() {
		a -= b
		b -= a
		a -= b
		b -= a
		a -= b
		b -= a
		a -= b
		b -= a
		a -= b
		b -= a
		a -= b
		b -= a
		a -= b
		b -= a
		a -= b
		b -= a
		count += RawBatch
	}
	runtime.KeepAlive(a)
	runtime.KeepAlive(b)
	return count
}
