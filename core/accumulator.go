package core

import (
	"fmt"
	"slices"
)

// Accumulator folds RunResults into running throughput totals.
//
// A single-thread accumulator has one slot. A lane accumulator has one slot
// per lane plus a final grand-total slot. Every value added is iterations per
// second of the measured window, never a raw count.
type Accumulator struct {
	perLane bool
	slots   []float64
}

// NewSingleAccumulator creates the one-slot accumulator used for the
// single-thread pass.
func NewSingleAccumulator() *Accumulator {
	return &Accumulator{slots: make([]float64, 1)}
}

// NewLaneAccumulator creates an accumulator for runs of up to lanes lanes.
func NewLaneAccumulator(lanes int) *Accumulator {
	if lanes < 1 {
		panic("Accumulator: lanes must be at least 1")
	}
	return &Accumulator{perLane: true, slots: make([]float64, lanes+1)}
}

// Add folds r into the totals. r.Elapsed must be positive, and a lane
// accumulator must have at least r.Threads() lane slots.
func (a *Accumulator) Add(r *RunResult) {
	if r.Elapsed <= 0 {
		panic(fmt.Sprintf("Accumulator: non-positive elapsed %v for %s", r.Elapsed, r.WorkloadID))
	}
	if len(r.Counts) == 0 {
		panic(fmt.Sprintf("Accumulator: result for %s has no lanes", r.WorkloadID))
	}

	if !a.perLane {
		a.slots[0] += r.Throughput(0)
		return
	}

	lanes := len(a.slots) - 1
	if r.Threads() > lanes {
		panic(fmt.Sprintf("Accumulator: result has %d lanes, accumulator holds %d", r.Threads(), lanes))
	}

	var grandTotal float64
	for i := range r.Counts {
		v := r.Throughput(i)
		a.slots[i] += v
		grandTotal += v
	}
	a.slots[lanes] += grandTotal
}

// Total returns the single-thread slot or the grand-total slot.
func (a *Accumulator) Total() float64 {
	return a.slots[len(a.slots)-1]
}

// Lanes returns the number of lane slots, excluding the grand total.
func (a *Accumulator) Lanes() int {
	if !a.perLane {
		return 1
	}
	return len(a.slots) - 1
}

// Slot returns slot i. For a lane accumulator, Slot(Lanes()) is the grand total.
func (a *Accumulator) Slot(i int) float64 {
	return a.slots[i]
}

// Slots returns a copy of every slot.
func (a *Accumulator) Slots() []float64 {
	return slices.Clone(a.slots)
}

// Scores is the final outcome of a suite run.
type Scores struct {
	// SingleThread is the summed single-lane throughput over every workload.
	SingleThread float64

	// AllThread is the summed all-lane throughput over every workload.
	AllThread float64

	// PerLane holds the all-thread totals for each lane.
	PerLane []float64
}

// ScoresFrom builds Scores from the two accumulators of a suite run.
func ScoresFrom(single, all *Accumulator) Scores {
	perLane := all.Slots()
	return Scores{
		SingleThread: single.Total(),
		AllThread:    all.Total(),
		PerLane:      perLane[:len(perLane)-1],
	}
}
