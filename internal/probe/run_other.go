//go:build !linux

package probe

import (
	"errors"
	"io"
)

// The accounting the probe measures is Linux overcommit semantics; there is
// no cross-platform rendition.
func Run(cfg Config, out io.Writer) error {
	return errors.New("commitprobe requires linux")
}
