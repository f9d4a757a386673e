//go:build !unix

package proc

import "os"

// probe relies on os.FindProcess, which opens a handle to the process on
// platforms without signals and fails when it does not exist.
func probe(pid PID) bool {
	p, err := os.FindProcess(int(pid))
	if err != nil {
		return false
	}
	_ = p.Release()
	return true
}
