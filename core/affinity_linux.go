//go:build linux

package core

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// pinCurrentThread binds the calling OS thread to the lane-th CPU of the
// process affinity mask, wrapping around when there are more lanes than CPUs.
// The caller must already hold runtime.LockOSThread.
func pinCurrentThread(lane int) error {
	var allowed unix.CPUSet
	if err := unix.SchedGetaffinity(0, &allowed); err != nil {
		return fmt.Errorf("read affinity: %w", err)
	}
	n := allowed.Count()
	if n == 0 {
		return errors.New("empty affinity mask")
	}

	want := lane % n
	for cpuID, seen := 0, 0; cpuID < len(allowed)*64; cpuID++ {
		if !allowed.IsSet(cpuID) {
			continue
		}
		if seen == want {
			var set unix.CPUSet
			set.Zero()
			set.Set(cpuID)
			return unix.SchedSetaffinity(0, &set)
		}
		seen++
	}
	return fmt.Errorf("cpu for lane %d not found", lane)
}
