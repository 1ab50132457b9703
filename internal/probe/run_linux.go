//go:build linux

package probe

import (
	"fmt"
	"io"

	"github.com/srediag/commitprobe/internal/forkchild"
	"github.com/srediag/commitprobe/internal/meminfo"
	"github.com/srediag/commitprobe/internal/region"
	"github.com/srediag/commitprobe/internal/report"
)

// Run executes the fixed sequence. There is no retry and no partial
// cleanup beyond the deferred unmap: every OS failure is the condition the
// probe exists to surface and aborts the run.
func Run(cfg Config, out io.Writer) error {
	rep := report.New(out)

	snap, err := meminfo.ReadSnapshot()
	if err != nil {
		return err
	}
	if err := rep.Banner(cfg.Mode.String(), cfg.AllocBytes, cfg.Children, cfg.ChildSleep, snap); err != nil {
		return err
	}
	if uint64(cfg.AllocBytes) > snap.Available {
		internalLogger.warnf("requested %d MiB with only %d MiB available; a private run may be refused at fork time",
			cfg.AllocBytes>>20, snap.Available>>20)
	}

	if err := checkpoint(rep, report.LabelInitial); err != nil {
		return err
	}

	reg, err := region.Map(cfg.AllocBytes, cfg.Mode)
	if err != nil {
		return err
	}
	released := false
	defer func() {
		if !released {
			_ = reg.Unmap()
		}
	}()
	internalLogger.debugf("mapped %d bytes %s at %#x", reg.Len(), reg.Sharing(), reg.Addr())
	if err := checkpoint(rep, report.LabelAllocated); err != nil {
		return err
	}

	reg.Touch()
	if err := checkpoint(rep, report.LabelTouched); err != nil {
		return err
	}

	if err := reg.SetReadOnly(); err != nil {
		return err
	}
	if err := checkpoint(rep, report.LabelReadOnly); err != nil {
		return err
	}

	children := make([]forkchild.Child, 0, cfg.Children)
	for i := 0; i < cfg.Children; i++ {
		c, err := forkchild.SpawnSleeper(cfg.ChildSleep)
		if err != nil {
			return fmt.Errorf("fork child %d: %w", i, err)
		}
		internalLogger.debugf("forked child %d pid %d", i, c.PID)
		children = append(children, c)
	}
	if err := checkpoint(rep, report.LabelForked); err != nil {
		return err
	}

	for _, c := range children {
		status, err := c.Reap()
		if err != nil {
			return err
		}
		if status != 0 {
			internalLogger.warnf("child pid %d exited with status %d", c.PID, status)
		}
	}
	if err := checkpoint(rep, report.LabelReaped); err != nil {
		return err
	}

	released = true
	if err := reg.Unmap(); err != nil {
		return err
	}
	if err := checkpoint(rep, report.LabelUnmapped); err != nil {
		return err
	}

	return rep.Summary(cfg.Children)
}

func checkpoint(rep *report.Reporter, label string) error {
	line, err := meminfo.CommittedLine()
	if err != nil {
		return err
	}
	return rep.Checkpoint(line, label)
}
