// Package probe drives the committed-memory measurement sequence: banner,
// then seven /proc/meminfo checkpoints around allocate, touch, protect,
// fork, reap and unmap.
package probe

import (
	"errors"
	"time"

	"github.com/srediag/commitprobe/internal/region"
)

// Reproduction constants. They are fixed at build time so every run
// measures the same scenario; tests shrink them through Config.
const (
	DefaultAllocBytes = 64 << 20
	DefaultChildren   = 16
	DefaultChildSleep = 3 * time.Second
)

// ErrUsage reports a bad command line. The caller prints it to stderr and
// exits non-zero without touching memory or forking.
var ErrUsage = errors.New("usage: commitprobe [ shared | private ]")

// Config fixes one probe scenario.
type Config struct {
	Mode       region.Mode
	AllocBytes int
	Children   int
	ChildSleep time.Duration
}

// DefaultConfig is the reproduction scenario: a 64 MiB region and 16
// children each holding the fork fan-out open for 3 seconds.
func DefaultConfig(mode region.Mode) Config {
	return Config{
		Mode:       mode,
		AllocBytes: DefaultAllocBytes,
		Children:   DefaultChildren,
		ChildSleep: DefaultChildSleep,
	}
}

// ParseMode maps the command line to a sharing mode. Exactly one argument
// is accepted, one of the two mode tokens.
func ParseMode(args []string) (region.Mode, error) {
	if len(args) != 1 {
		return 0, ErrUsage
	}
	switch args[0] {
	case "shared":
		return region.Shared, nil
	case "private":
		return region.Private, nil
	}
	return 0, ErrUsage
}
