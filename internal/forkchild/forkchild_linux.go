//go:build linux

// Package forkchild spawns and reaps forked children that inherit the
// parent's mappings without exec'ing a new image. Bare fork is the point:
// exec would discard the copy-on-write versus shared inheritance the probe
// measures.
package forkchild

import (
	"fmt"
	"syscall"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Child identifies one forked worker until it is reaped.
type Child struct {
	PID int
}

// SpawnSleeper forks the current process via clone(SIGCHLD). The child
// inherits every mapping under the sharing semantics fixed at mmap time,
// sleeps for d and exits 0.
//
// The child is a single-threaded copy of a multi-threaded runtime, so it
// must not re-enter Go: everything on the child path below is a raw
// syscall, the same restriction syscall.forkExec observes between fork and
// exec.
func SpawnSleeper(d time.Duration) (Child, error) {
	ts := unix.NsecToTimespec(d.Nanoseconds())

	syscall.ForkLock.Lock()
	pid, _, errno := unix.RawSyscall(unix.SYS_CLONE, uintptr(unix.SIGCHLD), 0, 0)
	if errno != 0 {
		syscall.ForkLock.Unlock()
		return Child{}, fmt.Errorf("clone: %w", errno)
	}
	if pid == 0 {
		sleepAndExit(ts)
	}
	syscall.ForkLock.Unlock()
	return Child{PID: int(pid)}, nil
}

// sleepAndExit runs only in the forked child and never returns.
func sleepAndExit(ts unix.Timespec) {
	req := ts
	var rem unix.Timespec
	for {
		_, _, errno := unix.RawSyscall(unix.SYS_NANOSLEEP,
			uintptr(unsafe.Pointer(&req)), uintptr(unsafe.Pointer(&rem)), 0)
		if errno != unix.EINTR {
			break
		}
		req = rem
	}
	unix.RawSyscall(unix.SYS_EXIT_GROUP, 0, 0, 0)
	panic("unreachable")
}

// Reap blocks until the child exits and consumes its status. Exactly one
// Reap per spawned child; a wait error means the child vanished and is
// surfaced to the caller as fatal.
func (c Child) Reap() (int, error) {
	var status unix.WaitStatus
	for {
		_, err := unix.Wait4(c.PID, &status, 0, nil)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return 0, fmt.Errorf("wait4 pid %d: %w", c.PID, err)
		}
		return status.ExitStatus(), nil
	}
}
