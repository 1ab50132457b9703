package meminfo

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v3/mem"
)

const overcommitPath = "/proc/sys/vm/overcommit_memory"

// Snapshot is a coarse view of system memory for the startup banner. All
// sizes are in bytes.
type Snapshot struct {
	Total       uint64
	Available   uint64
	CommitLimit uint64
	CommittedAS uint64

	// OvercommitPolicy mirrors /proc/sys/vm/overcommit_memory, or -1 when
	// it cannot be read. The banner is advisory, so that is not an error.
	OvercommitPolicy int
}

// ReadSnapshot collects the banner figures.
func ReadSnapshot() (Snapshot, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return Snapshot{}, fmt.Errorf("virtual memory: %w", err)
	}
	return Snapshot{
		Total:            vm.Total,
		Available:        vm.Available,
		CommitLimit:      vm.CommitLimit,
		CommittedAS:      vm.CommittedAS,
		OvercommitPolicy: readOvercommitPolicy(),
	}, nil
}

// PolicyName names the overcommit policy in force.
func (s Snapshot) PolicyName() string {
	switch s.OvercommitPolicy {
	case 0:
		return "heuristic"
	case 1:
		return "always"
	case 2:
		return "strict"
	}
	return "unknown"
}

func readOvercommitPolicy() int {
	b, err := os.ReadFile(overcommitPath)
	if err != nil {
		return -1
	}
	n, err := strconv.Atoi(strings.TrimSpace(string(b)))
	if err != nil {
		return -1
	}
	return n
}
