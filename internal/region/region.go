// Package region manages the anonymous memory mapping whose commit
// accounting the probe measures.
package region

import (
	"encoding/binary"
	"unsafe"
)

// Mode selects how child processes see the mapping after fork.
type Mode int

const (
	// Private gives every forked child its own copy-on-write view; the
	// kernel accounts commit once per logical copy.
	Private Mode = iota
	// Shared keeps a single kernel instance visible to all children; the
	// kernel accounts commit once, regardless of fan-out.
	Shared
)

func (m Mode) String() string {
	if m == Shared {
		return "shared"
	}
	return "private"
}

const wordSize = 8

// Region is a handle on one contiguous anonymous mapping. Its length and
// sharing mode are fixed at Map time; only the protection flags and, during
// Touch, the contents change.
type Region struct {
	data     []byte
	mode     Mode
	readOnly bool
}

// Len reports the mapping length in bytes.
func (r *Region) Len() int { return len(r.data) }

// Sharing reports the mode fixed at Map time.
func (r *Region) Sharing() Mode { return r.mode }

// ReadOnly reports whether SetReadOnly has been applied.
func (r *Region) ReadOnly() bool { return r.readOnly }

// Bytes exposes the mapped memory.
func (r *Region) Bytes() []byte { return r.data }

// Addr reports the base address of the mapping.
func (r *Region) Addr() uintptr {
	if len(r.data) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&r.data[0]))
}

// Touch writes the ascending word index into every word-aligned slot, in
// ascending address order. Mapping only reserves address space; commit
// accounting for anonymous memory follows the pages these stores
// materialize, so skipping this step would hide the effect being measured.
func (r *Region) Touch() {
	for off := 0; off+wordSize <= len(r.data); off += wordSize {
		binary.LittleEndian.PutUint64(r.data[off:], uint64(off/wordSize))
	}
}
