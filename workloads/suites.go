package workloads

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/Swind/markbench/core"
)

// Workload ids. They are stable across releases because message resources
// and saved output refer to them.
const (
	IDNull          = "test.null"
	IDHeapThrash    = "test.heap_thrash"
	IDCryptoRandom  = "test.crypto_safe_random"
	IDForceCache    = "test.force_cache_miss"
	IDPrimesSieve   = "test.davidpl_primes_sieve"
	IDSalt          = "test.joshuas_salt"
	IDNaiveISqrt    = "test.naiive_isqrt"
	IDMatrixTriple  = "test.matrix_rref_triple"
	IDMatrixDouble  = "test.matrix_rref_double"
	IDMatrixSingle  = "test.matrix_rref_single"
	IDAddThroughput = "test.add_throughput"
	IDSubThroughput = "test.sub_throughput"
)

// ErrUnknownSuite is returned by Lookup for names that are not registered.
var ErrUnknownSuite = errors.New("unknown suite")

// DefaultSuite is the suite name used when none is given.
const DefaultSuite = "now"

var (
	nullEntry          = core.Entry{ID: IDNull, Run: Null}
	heapThrashEntry    = core.Entry{ID: IDHeapThrash, Run: HeapThrash}
	cryptoRandomEntry  = core.Entry{ID: IDCryptoRandom, Run: CryptoRandom}
	forceCacheEntry    = core.Entry{ID: IDForceCache, Run: ForceCacheMiss}
	primesSieveEntry   = core.Entry{ID: IDPrimesSieve, Run: PrimesSieve}
	saltEntry          = core.Entry{ID: IDSalt, Run: Salt}
	naiveISqrtEntry    = core.Entry{ID: IDNaiveISqrt, Run: NaiveISqrt}
	matrixTripleEntry  = core.Entry{ID: IDMatrixTriple, Run: MatrixTriple}
	matrixDoubleEntry  = core.Entry{ID: IDMatrixDouble, Run: MatrixDouble}
	matrixSingleEntry  = core.Entry{ID: IDMatrixSingle, Run: MatrixSingle}
	addThroughputEntry = core.Entry{ID: IDAddThroughput, Counted: AddThroughput}
	subThroughputEntry = core.Entry{ID: IDSubThroughput, Counted: SubThroughput}
)

// Version000 is the first released suite: four workloads.
func Version000() core.Suite {
	return core.Suite{
		nullEntry,
		heapThrashEntry,
		cryptoRandomEntry,
		forceCacheEntry,
	}
}

// Version001 adds integer, vector and matrix workloads to Version000.
func Version001() core.Suite {
	return append(Version000(),
		primesSieveEntry,
		saltEntry,
		naiveISqrtEntry,
		matrixTripleEntry,
		matrixDoubleEntry,
		matrixSingleEntry,
	)
}

// VersionNow is the current suite.
func VersionNow() core.Suite {
	return Version001()
}

// Raw holds the counted instruction-throughput workloads.
func Raw() core.Suite {
	return core.Suite{addThroughputEntry, subThroughputEntry}
}

var suites = map[string]func() core.Suite{
	"000": Version000,
	"001": Version001,
	"now": VersionNow,
	"raw": Raw,
}

// Names returns the registered suite names, sorted.
func Names() []string {
	names := make([]string, 0, len(suites))
	for name := range suites {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Lookup returns the suite registered under name. A "version_" prefix is
// accepted, so "version_001" and "001" are the same suite.
func Lookup(name string) (core.Suite, error) {
	key := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(name)), "version_")
	if key == "" {
		key = DefaultSuite
	}
	build, ok := suites[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %s)", ErrUnknownSuite, name, strings.Join(Names(), ", "))
	}
	return build(), nil
}

// All returns a registry of every bundled workload, built once.
var All = sync.OnceValue(func() *core.Registry {
	return core.NewRegistry().MustRegister(append(VersionNow(), Raw()...)...)
})
