// Package workloads holds the bundled benchmark workloads and the named suite
// versions built from them.
//
// Every workload is safe to call from many lanes at once: scratch state lives
// on the call's stack or in a per-call allocation, and results are kept alive
// with runtime.KeepAlive so the compiler cannot drop the work.
package workloads
