// Package proc answers whether an operating-system process currently exists.
//
// The answer is a point-in-time snapshot. PIDs are reused by the kernel, so
// a true result says nothing about which program owns the id.
package proc

import (
	"fmt"
	"strconv"
)

// PID identifies an OS process. Valid values are positive.
type PID int

func (p PID) String() string { return strconv.Itoa(int(p)) }

// Oracle reports whether a process is running.
type Oracle func(PID) bool

// ParsePID parses a positive process id.
func ParsePID(s string) (PID, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid PID %q", s)
	}
	if n <= 0 {
		return 0, fmt.Errorf("invalid PID %q: must be positive", s)
	}
	return PID(n), nil
}

// IsRunning reports whether pid identifies a live process. Ids that
// cannot name a single process (zero, negative) are never running.
func IsRunning(pid PID) bool {
	if pid <= 0 {
		return false
	}
	return probe(pid)
}
