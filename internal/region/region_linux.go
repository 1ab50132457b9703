//go:build linux

package region

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Map allocates a zero-filled anonymous mapping of size bytes, read-write.
// A refused mapping is the condition the probe exists to surface, so the
// caller treats any error here as fatal rather than degrading.
func Map(size int, mode Mode) (*Region, error) {
	flags := unix.MAP_ANONYMOUS
	if mode == Shared {
		flags |= unix.MAP_SHARED
	} else {
		flags |= unix.MAP_PRIVATE
	}
	data, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, flags)
	if err != nil {
		return nil, fmt.Errorf("mmap: %w", err)
	}
	return &Region{data: data, mode: mode}, nil
}

// SetReadOnly downgrades the mapping to PROT_READ. After this no writer
// exists, which is what makes handing the region to forked children safe
// without synchronization.
func (r *Region) SetReadOnly() error {
	if err := unix.Mprotect(r.data, unix.PROT_READ); err != nil {
		return fmt.Errorf("mprotect: %w", err)
	}
	r.readOnly = true
	return nil
}

// Unmap releases the mapping. The handle must not be reused afterwards.
func (r *Region) Unmap() error {
	data := r.data
	r.data = nil
	if err := unix.Munmap(data); err != nil {
		return fmt.Errorf("munmap: %w", err)
	}
	return nil
}
