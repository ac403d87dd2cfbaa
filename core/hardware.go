package core

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
	"runtime"
)

// HardwareConcurrency returns the number of logical CPUs usable by the process.
func HardwareConcurrency() int {
	n := runtime.NumCPU()
	if n < 1 {
		return 1
	}
	return n
}

// ResolveThreads maps a requested lane count onto [1, hw]. Zero or negative
// requests mean every hardware thread.
func ResolveThreads(requested, hw int) int {
	if hw < 1 {
		hw = 1
	}
	if requested <= 0 || requested > hw {
		return hw
	}
	return requested
}

// NewEntropyRand returns a ChaCha8 generator seeded from the operating
// system's entropy source, so reruns see a different suite order.
func NewEntropyRand() *rand.Rand {
	var seed [32]byte
	if _, err := crand.Read(seed[:]); err != nil {
		// crypto/rand only fails on a broken platform.
		for i := 0; i < len(seed); i += 8 {
			binary.LittleEndian.PutUint64(seed[i:], rand.Uint64())
		}
	}
	return rand.New(rand.NewChaCha8(seed))
}
