// Package report renders the probe's human-readable output stream.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/valyala/bytebufferpool"

	"github.com/srediag/commitprobe/internal/meminfo"
)

// Checkpoint labels, in the fixed order the probe emits them.
const (
	LabelInitial   = "initial state"
	LabelAllocated = "parent mem allocated"
	LabelTouched   = "parent mem initialized"
	LabelReadOnly  = "parent mem set-readonly"
	LabelForked    = "parent forked children"
	LabelReaped    = "parent reaped children"
	LabelUnmapped  = "parent mem unmapped"
)

// Labels lists every checkpoint in emission order.
var Labels = []string{
	LabelInitial,
	LabelAllocated,
	LabelTouched,
	LabelReadOnly,
	LabelForked,
	LabelReaped,
	LabelUnmapped,
}

// Sample is one recorded checkpoint.
type Sample struct {
	Label string
	KB    uint64
}

// Reporter writes banner and checkpoint lines and remembers each sample so
// the closing summary can show the two deltas the probe exists to contrast.
// It is not safe for concurrent use; the probe is single-threaded.
type Reporter struct {
	w       io.Writer
	samples []Sample
}

func New(w io.Writer) *Reporter { return &Reporter{w: w} }

// Banner states the mode and fixed constants in effect, then the system
// snapshot. Output here is advisory; only the checkpoint lines carry the
// measurement.
func (r *Reporter) Banner(mode string, allocBytes, children int, sleep time.Duration, snap meminfo.Snapshot) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	fmt.Fprintf(buf, "commitprobe: allocating %d MiB %s anonymous, forking %d children (%s sleep)\n",
		allocBytes>>20, mode, children, sleep)
	fmt.Fprintf(buf, "system: total %d MiB, available %d MiB, commit limit %d MiB, committed %d MiB, overcommit %s\n",
		snap.Total>>20, snap.Available>>20, snap.CommitLimit>>20, snap.CommittedAS>>20, snap.PolicyName())
	_, err := r.w.Write(buf.B)
	return err
}

// Checkpoint emits one sample in the fixed form: the verbatim meminfo line,
// then the checkpoint label.
func (r *Reporter) Checkpoint(line, label string) error {
	kb, err := meminfo.ValueKB(line)
	if err != nil {
		return err
	}
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	_, _ = buf.WriteString(line)
	_, _ = buf.WriteString("    (")
	_, _ = buf.WriteString(label)
	_, _ = buf.WriteString(")\n")
	if _, err := r.w.Write(buf.B); err != nil {
		return err
	}
	r.samples = append(r.samples, Sample{Label: label, KB: kb})
	return nil
}

// Samples returns the checkpoints recorded so far, in emission order.
func (r *Reporter) Samples() []Sample { return r.samples }

// Summary reports committed growth across the allocate+touch step and
// across the fork step, the two numbers that separate shared from private
// accounting. The fork delta also includes the parent's other private
// mappings re-accounted once per child, so the per-child figure is printed
// alongside to let the region's contribution be read against that
// baseline. It is a no-op if either pair of checkpoints is missing.
func (r *Reporter) Summary(children int) error {
	allocDelta, okAlloc := r.delta(LabelInitial, LabelTouched)
	forkDelta, okFork := r.delta(LabelReadOnly, LabelForked)
	if !okAlloc || !okFork {
		return nil
	}
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	fmt.Fprintf(buf, "summary: commit grew %+d kB over allocate+touch, %+d kB over fork",
		allocDelta, forkDelta)
	if children > 0 {
		fmt.Fprintf(buf, " (%+d kB per child)", forkDelta/int64(children))
	}
	_, _ = buf.WriteString("\n")
	_, err := r.w.Write(buf.B)
	return err
}

func (r *Reporter) delta(from, to string) (int64, bool) {
	a, okA := r.sample(from)
	b, okB := r.sample(to)
	if !okA || !okB {
		return 0, false
	}
	return int64(b) - int64(a), true
}

func (r *Reporter) sample(label string) (uint64, bool) {
	for _, s := range r.samples {
		if s.Label == label {
			return s.KB, true
		}
	}
	return 0, false
}
