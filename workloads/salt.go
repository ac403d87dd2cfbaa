package workloads

import (
	"math/rand/v2"
	"runtime"
)

// GCD returns the greatest common divisor of a and b. GCD(0, 0) is 0.
func GCD(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// Seven 4 KiB pages keep the working set inside a typical L1 data cache
// with room left for the stack.
const (
	pageSize    = 0x1000
	saltPages   = 7
	saltNumbers = saltPages * pageSize / 4
)

// MinMaxGCD returns the gcd of the smallest and largest value in numbers.
func MinMaxGCD(numbers []uint32) int64 {
	if len(numbers) == 0 {
		return 0
	}
	lo, hi := numbers[0], numbers[0]
	for _, n := range numbers[1:] {
		if n < lo {
			lo = n
		}
		if n > hi {
			hi = n
		}
	}
	return GCD(int64(lo), int64(hi))
}

// Salt fills seven pages with random numbers and takes the gcd of their
// extremes.
func Salt() {
	r := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	var numbers [saltNumbers]uint32
	for i := range numbers {
		numbers[i] = r.Uint32()
	}
	runtime.KeepAlive(MinMaxGCD(numbers[:]))
}
