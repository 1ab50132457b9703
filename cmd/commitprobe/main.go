// Command commitprobe reproduces the committed-memory growth seen on Linux
// when a process holding a large private anonymous mapping forks children,
// and contrasts it with the single accounting of a shared anonymous
// mapping. It samples Committed_AS from /proc/meminfo at seven fixed
// checkpoints around allocate, touch, protect, fork, reap and unmap.
package main

import (
	"fmt"
	"os"

	"github.com/srediag/commitprobe/internal/probe"
)

func main() {
	mode, err := probe.ParseMode(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := probe.Run(probe.DefaultConfig(mode), os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "commitprobe:", err)
		os.Exit(1)
	}
}
