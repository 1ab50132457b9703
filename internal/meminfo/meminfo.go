// Package meminfo reads the kernel's committed-memory accounting.
package meminfo

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

const (
	// Path is the line-oriented memory report owned by the kernel.
	Path = "/proc/meminfo"

	// CommittedKey prefixes the metric the probe tracks: the kernel's
	// estimate of total memory promised to all processes, which the
	// overcommit policy checks before granting new mappings.
	CommittedKey = "Committed_AS:"
)

// CommittedLine returns the Committed_AS line from /proc/meminfo verbatim,
// unit suffix included.
func CommittedLine() (string, error) {
	f, err := os.Open(Path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", Path, err)
	}
	defer f.Close()
	return committedLine(f)
}

func committedLine(r io.Reader) (string, error) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := sc.Text(); strings.HasPrefix(line, CommittedKey) {
			return line, nil
		}
	}
	if err := sc.Err(); err != nil {
		return "", fmt.Errorf("scan meminfo: %w", err)
	}
	return "", fmt.Errorf("%s not found in %s", CommittedKey, Path)
}

// ValueKB extracts the numeric kB value from a meminfo line.
func ValueKB(line string) (uint64, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return 0, fmt.Errorf("malformed meminfo line %q", line)
	}
	v, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse meminfo value %q: %w", fields[1], err)
	}
	return v, nil
}

// CommittedKB reads and parses the current Committed_AS value.
func CommittedKB() (uint64, error) {
	line, err := CommittedLine()
	if err != nil {
		return 0, err
	}
	return ValueKB(line)
}
