package workloads

import (
	"math"
	"math/bits"
)

// bitArray is a packed set of flags, initially all true.
type bitArray struct {
	words []uint32
	size  int
}

func newBitArray(size int) *bitArray {
	n := size >> 5
	if size&31 > 0 {
		n++
	}
	words := make([]uint32, n)
	for i := range words {
		words[i] = ^uint32(0)
	}
	return &bitArray{words: words, size: size}
}

func (b *bitArray) get(n int) bool {
	return b.words[n>>5]&(1<<(n%32)) != 0
}

// clearEvery clears n, n+skip, n+2*skip... using a mask that is rotated
// instead of rebuilt for every step.
func (b *bitArray) clearEvery(n, skip int) {
	mask := ^(uint32(1) << (n % 32))
	roll := skip % 32
	for n < b.size {
		b.words[n>>5] &= mask
		n += skip
		mask = bits.RotateLeft32(mask, roll)
	}
}

// primeCounts holds the number of primes below powers of ten.
var primeCounts = map[int64]int{
	10:          4,
	100:         25,
	1000:        168,
	10000:       1229,
	100000:      9592,
	1000000:     78498,
	10000000:    664579,
	100000000:   5761455,
	1000000000:  50845734,
	10000000000: 455052511,
}

// PrimeSieve is an odd-only sieve of Eratosthenes over [0, size).
type PrimeSieve struct {
	size int
	bits *bitArray
}

// NewPrimeSieve creates a sieve for numbers below size.
func NewPrimeSieve(size int) *PrimeSieve {
	return &PrimeSieve{size: size, bits: newBitArray(size)}
}

// Run marks every odd composite below the sieve size.
func (s *PrimeSieve) Run() {
	factor := 3
	q := int(math.Sqrt(float64(s.size)))
	for factor <= q {
		for num := factor; num < s.size; num += 2 {
			if s.bits.get(num) {
				factor = num
				break
			}
		}
		s.bits.clearEvery(factor*factor, factor<<1)
		factor += 2
	}
}

// CountPrimes counts the primes found by Run.
func (s *PrimeSieve) CountPrimes() int {
	count := 0
	if s.size >= 2 {
		count = 1
	}
	for i := 3; i < s.size; i += 2 {
		if s.bits.get(i) {
			count++
		}
	}
	return count
}

// Validate reports whether the count matches the known value for this size.
// Sizes that are not a power of ten cannot be validated.
func (s *PrimeSieve) Validate() bool {
	want, ok := primeCounts[int64(s.size)]
	return ok && want == s.CountPrimes()
}

const sieveSize = 1_000_000

// PrimesSieve runs one sieve pass up to one million.
func PrimesSieve() {
	s := NewPrimeSieve(sieveSize)
	s.Run()
}
