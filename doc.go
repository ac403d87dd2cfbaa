// Package markbench measures the raw computational throughput of a machine
// and reports it as "rhedstones".
//
// A suite of small workloads is run twice per workload: once on a single
// lane and once on every hardware thread. Each run lasts a fixed wall-clock
// window. Lanes are goroutines locked to their own OS thread, and every lane
// counts how many times it completed the workload. The per-second rates are
// summed over the suite into a single-thread score and an all-thread score.
//
// # Quick Start
//
// Initialize the global engine at application startup:
//
//	markbench.InitGlobalEngine(markbench.EngineOptions{})
//	defer markbench.ShutdownGlobalEngine()
//
// Run the default suite and print the scores:
//
//	report, err := markbench.RunSuite(ctx, markbench.DefaultSuite, nil, markbench.RunnerOptions{})
//	if err != nil {
//		return err
//	}
//	fmt.Println(report.Scores.SingleThread, report.Scores.AllThread)
//
// # Key Concepts
//
// Engine: runs one workload on N lanes for a fixed window behind an arrival
// barrier and an exit barrier, so no lane starts early or is counted late.
//
// TestRunner: shuffles a suite and runs each workload at one thread and at
// all threads, folding results into Accumulators.
//
// Reporter: receives progress and the final Scores. The messages package
// provides locale-aware text reporters.
//
// # Measurement Notes
//
// Lanes busy-spin while they wait for the window to open. The process should
// have at least one more P than there are lanes so the controlling goroutine
// can keep time; the markbench command sets GOMAXPROCS to NumCPU()+1.
package markbench
