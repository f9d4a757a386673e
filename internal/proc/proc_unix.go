//go:build unix

package proc

import "golang.org/x/sys/unix"

// probe sends signal 0, which performs the kernel's existence and
// permission checks without delivering anything. EPERM means the process
// exists but belongs to someone else.
func probe(pid PID) bool {
	err := unix.Kill(int(pid), 0)
	return err == nil || err == unix.EPERM
}
